// Package textutil normalizes arbitrary request input into clean scorable text.
package textutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/spacesedan/reviewlens/internal/apperr"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// Clean collapses newlines, carriage returns and whitespace runs into single
// spaces and trims the result. An empty result is valid and means "no signal".
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Decode turns uploaded bytes into a string. Valid UTF-8 passes through;
// anything else falls back to the byte-preserving ISO-8859-1 decoding.
func Decode(b []byte) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", apperr.Wrap(apperr.KindDecoding, "file encoding error", err)
	}
	return string(decoded), nil
}

// RemoveLinks strips markdown links (keeping their text) and bare URLs.
func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// FlattenDocument reduces an uploaded document to plain scorable text:
// markdown structure is dropped in favor of its text content, links and bare
// URLs are removed, and whitespace is collapsed.
func FlattenDocument(input string) string {
	md := blackfriday.New(blackfriday.WithNoExtensions())
	root := md.Parse([]byte(input))

	var buf bytes.Buffer
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering {
			switch node.Type {
			case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
				buf.Write(node.Literal)
				buf.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	return Clean(RemoveLinks(buf.String()))
}
