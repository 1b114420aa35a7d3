// Package extract pulls plain text out of uploaded CV documents.
package extract

import (
	"fmt"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// ExtractionError indicates a document that could not be parsed (corrupt
// file, unsupported internal structure, password protection).
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError indicates a declared media type that is neither PDF
// nor DOCX. Callers exclude such documents from the batch with a warning
// instead of failing.
type UnsupportedTypeError struct {
	MediaType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported media type: %q", e.MediaType)
}

// Text extracts the plain text of a document based on its declared media
// type. It is a pure mapping from bytes to text with no side effects.
func Text(doc types.Document) (string, error) {
	switch doc.MediaType {
	case types.MediaTypePDF:
		return pdfText(doc)
	case types.MediaTypeDOCX:
		return docxText(doc)
	default:
		return "", &UnsupportedTypeError{MediaType: doc.MediaType}
	}
}
