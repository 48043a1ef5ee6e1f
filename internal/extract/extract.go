// Package extract pulls plain text out of uploaded candidate materials.
// Supported formats: PDF, DOCX, and plain text. Extraction is pure and
// stateless; all errors are recoverable prompts to pick another file.
package extract

import (
	"errors"
	"path/filepath"
	"strings"
)

// Extract returns the cleaned plain text of a document. The format is
// chosen by the filename extension, not by content sniffing.
func Extract(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt", ".md", ".text":
		text, err = extractText(data)
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		return "", err
	}

	text = clean(text)
	if text == "" {
		return "", &ExtractionError{Format: strings.TrimPrefix(ext, "."), Err: errors.New("no extractable text")}
	}
	return text, nil
}
