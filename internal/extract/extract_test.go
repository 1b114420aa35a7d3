package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-analyzer/internal/types"
)

func TestText_UnsupportedMediaType(t *testing.T) {
	cases := []struct {
		name      string
		mediaType string
	}{
		{"plain text", "text/plain"},
		{"legacy word", "application/msword"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Text(types.Document{
				Name:      "cv.txt",
				MediaType: tc.mediaType,
				Data:      []byte("some content"),
			})
			require.Error(t, err)

			var unsupported *UnsupportedTypeError
			assert.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tc.mediaType, unsupported.MediaType)
		})
	}
}

func TestText_CorruptPDF(t *testing.T) {
	_, err := Text(types.Document{
		Name:      "broken.pdf",
		MediaType: types.MediaTypePDF,
		Data:      []byte("this is not a PDF"),
	})
	require.Error(t, err)

	var extraction *ExtractionError
	assert.ErrorAs(t, err, &extraction)
	assert.Equal(t, "broken.pdf", extraction.FileName)
}

func TestText_CorruptDOCX(t *testing.T) {
	_, err := Text(types.Document{
		Name:      "broken.docx",
		MediaType: types.MediaTypeDOCX,
		Data:      []byte("this is not a zip archive"),
	})
	require.Error(t, err)

	var extraction *ExtractionError
	assert.ErrorAs(t, err, &extraction)
	assert.Equal(t, "broken.docx", extraction.FileName)
}

func TestText_EmptyDocumentBytes(t *testing.T) {
	for _, mediaType := range []string{types.MediaTypePDF, types.MediaTypeDOCX} {
		_, err := Text(types.Document{Name: "empty", MediaType: mediaType})
		assert.Error(t, err)
	}
}
