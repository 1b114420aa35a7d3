package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// pdfText concatenates the text of every page in page order, each page
// followed by a newline, and trims the final result.
func pdfText(doc types.Document) (text string, err error) {
	// The pdf library panics on some malformed inputs; treat those as
	// extraction failures like any other parse error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{FileName: doc.Name, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", &ExtractionError{FileName: doc.Name, Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{FileName: doc.Name, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), nil
}
