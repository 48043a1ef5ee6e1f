package extract

import "fmt"

// UnsupportedFormatError signals a file extension the extractor does not
// handle. Recoverable: the caller should ask for a different file.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "file has no extension (supported: .pdf, .docx, .txt, .md)"
	}
	return fmt.Sprintf("unsupported file type %s (supported: .pdf, .docx, .txt, .md)", e.Ext)
}

// ExtractionError signals content that could not be parsed or yielded no
// text. Recoverable: the caller should ask for a different file.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
