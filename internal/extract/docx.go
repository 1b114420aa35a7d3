package extract

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// docxText extracts the full body text of a Word document as a single
// string, one line per paragraph or table block.
func docxText(doc types.Document) (string, error) {
	parsed, err := docx.Parse(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", &ExtractionError{FileName: doc.Name, Err: err}
	}

	var sb strings.Builder
	for _, item := range parsed.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			sb.WriteString(block.String())
			sb.WriteString("\n")
		case *docx.Table:
			sb.WriteString(block.String())
			sb.WriteString("\n")
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
