package tabular

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spacesedan/reviewlens/internal/apperr"
)

func readAll(t *testing.T, it *RowIter) []string {
	t.Helper()
	var cells []string
	for {
		cell, err := it.Next()
		if errors.Is(err, io.EOF) {
			return cells
		}
		if err != nil {
			t.Fatal(err)
		}
		cells = append(cells, cell)
	}
}

func TestParseResolvesColumnCaseInsensitively(t *testing.T) {
	doc, err := Parse([]byte("id,ReviewText\n1,great product\n2,terrible\n"))
	if err != nil {
		t.Fatal(err)
	}

	cells := readAll(t, doc.Rows())
	if len(cells) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(cells))
	}
	if cells[0] != "great product" || cells[1] != "terrible" {
		t.Errorf("unexpected cells: %v", cells)
	}
}

func TestParseColumnPriority(t *testing.T) {
	// "review" outranks "text" in the priority list regardless of position.
	doc, err := Parse([]byte("Text,Review\nfrom text,from review\n"))
	if err != nil {
		t.Fatal(err)
	}
	cells := readAll(t, doc.Rows())
	if len(cells) != 1 || cells[0] != "from review" {
		t.Errorf("expected the Review column to win, got %v", cells)
	}
}

func TestParseMissingColumn(t *testing.T) {
	_, err := Parse([]byte("id,name\n1,foo\n"))
	if err == nil {
		t.Fatal("expected an error for a missing review column")
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindClientInput {
		t.Fatalf("expected a client-input error, got %v", err)
	}
	if !strings.Contains(appErr.Detail, "id") || !strings.Contains(appErr.Detail, "name") {
		t.Errorf("error should name the observed header, got %q", appErr.Detail)
	}
}

func TestParseEmptyFile(t *testing.T) {
	for _, content := range []string{"", "\n"} {
		_, err := Parse([]byte(content))
		var appErr *apperr.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperr.KindClientInput {
			t.Errorf("Parse(%q): expected a client-input error, got %v", content, err)
		}
	}
}

func TestRowIterShortRow(t *testing.T) {
	doc, err := Parse([]byte("id,review\n1,good\n2\n3,bad\n"))
	if err != nil {
		t.Fatal(err)
	}
	cells := readAll(t, doc.Rows())
	if len(cells) != 3 {
		t.Fatalf("expected 3 rows, got %v", cells)
	}
	if cells[1] != "" {
		t.Errorf("short row should yield an empty cell, got %q", cells[1])
	}
}

func TestBuildPreviewBounds(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,review\n")
	for i := 0; i < 20; i++ {
		b.WriteString("1,some review\n")
	}

	preview := BuildPreview([]byte(b.String()))
	if len(preview) != 6 {
		t.Fatalf("preview must be header + 5 rows, got %d rows", len(preview))
	}
	if preview[0][0] != "id" {
		t.Errorf("first preview row should be the header, got %v", preview[0])
	}
}

func TestBuildPreviewTruncatesCells(t *testing.T) {
	long := strings.Repeat("x", 150)
	preview := BuildPreview([]byte("review\n" + long + "\n"))
	cell := preview[1][0]
	if len([]rune(cell)) != 103 {
		t.Errorf("expected 100 runes plus marker, got %d", len([]rune(cell)))
	}
	if !strings.HasSuffix(cell, "...") {
		t.Errorf("truncated cell must carry the marker, got %q", cell)
	}
}

func TestBuildPreviewEmptyFile(t *testing.T) {
	preview := BuildPreview([]byte(""))
	if len(preview) != 1 || preview[0][0] != "File empty" {
		t.Errorf("unexpected empty-file preview: %v", preview)
	}
}
