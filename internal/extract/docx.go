package extract

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"
)

// extractDOCX collects body paragraphs, then table cell text, one block
// per line. Matches how word processors linearize a resume.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Err: err}
	}

	var blocks []string
	for _, item := range doc.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			if text := strings.TrimSpace(block.String()); text != "" {
				blocks = append(blocks, text)
			}
		case *docx.Table:
			for _, row := range block.TableRows {
				for _, cell := range row.TableCells {
					for _, para := range cell.Paragraphs {
						if text := strings.TrimSpace(para.String()); text != "" {
							blocks = append(blocks, text)
						}
					}
				}
			}
		}
	}
	return strings.Join(blocks, "\n"), nil
}
