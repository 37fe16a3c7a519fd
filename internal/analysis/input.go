package analysis

import (
	"path/filepath"
	"strings"

	"github.com/spacesedan/reviewlens/internal/apperr"
)

// Kind is the closed set of input shapes, resolved once per request and
// matched exhaustively afterwards.
type Kind int

const (
	KindText Kind = iota
	KindTxtFile
	KindCsvFile
)

// Input is a resolved analysis request: either raw text or file bytes.
type Input struct {
	Kind     Kind
	Text     string
	Filename string
	Data     []byte
}

// FileUpload carries an uploaded file's name and content. A nil FileUpload
// means the form had no file field.
type FileUpload struct {
	Filename string
	Data     []byte
}

// ResolveDocument validates sentiment-analysis input: raw text, or a .txt
// or .csv upload. The file wins when both are present, as in the form UI.
func ResolveDocument(textInput string, file *FileUpload) (Input, error) {
	if file == nil && textInput == "" {
		return Input{}, apperr.New(apperr.KindClientInput, "No input provided.")
	}

	if file != nil {
		if len(file.Data) == 0 {
			return Input{}, apperr.New(apperr.KindClientInput, "File is empty.")
		}
		switch strings.ToLower(filepath.Ext(file.Filename)) {
		case ".txt":
			return Input{Kind: KindTxtFile, Filename: file.Filename, Data: file.Data}, nil
		case ".csv":
			return Input{Kind: KindCsvFile, Filename: file.Filename, Data: file.Data}, nil
		default:
			return Input{}, apperr.New(apperr.KindClientInput, "Unsupported file type. Use .txt or .csv.")
		}
	}

	return Input{Kind: KindText, Text: textInput}, nil
}

// ResolveText validates keyword-only input: raw text or any decodable file,
// with no extension restriction.
func ResolveText(textInput string, file *FileUpload) (Input, error) {
	if file == nil && textInput == "" {
		return Input{}, apperr.New(apperr.KindClientInput, "No input provided.")
	}

	if file != nil {
		if len(file.Data) == 0 {
			return Input{}, apperr.New(apperr.KindClientInput, "File is empty.")
		}
		return Input{Kind: KindTxtFile, Filename: file.Filename, Data: file.Data}, nil
	}

	return Input{Kind: KindText, Text: textInput}, nil
}
