package pipeline

import (
	"fmt"

	"github.com/lu4p/cat"
)

// ExtractPlainText reads a .txt, .docx, .rtf or .odt file and returns its
// content as a single unit.
func ExtractPlainText(path string) (TextExtraction, error) {
	text, err := cat.File(path)
	if err != nil {
		return TextExtraction{}, fmt.Errorf("failed to extract document text: %w", err)
	}
	return TextExtraction{Text: text}, nil
}
