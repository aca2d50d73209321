package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

var pdfLogger = logger_i.NewLogger("PDF Extractor")

// ExtractPDF pulls the embedded text layer page by page. Pages yielding no
// text are logged and skipped, they are not an error - a document where
// every page comes back empty is flagged likely-scanned downstream instead
// of failing here.
func ExtractPDF(path string) (PdfExtraction, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return PdfExtraction{}, fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := doc.NumPage()
	var pages []studyModel.Unit
	for i := 1; i <= numPages; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			pdfLogger.Debug("skipping null page", "page", i)
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			pdfLogger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}

		text := strings.TrimSpace(whitespaceRun.ReplaceAllString(content, " "))
		if text == "" {
			pdfLogger.Debug("page has no extractable text, likely image-based", "page", i)
			continue
		}

		pages = append(pages, studyModel.Unit{Index: i, Text: text})
	}

	return PdfExtraction{Pages: pages, TotalPages: numPages}, nil
}

// protectExtract guards against the text-layer reader hanging on malformed
// content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		pdfLogger.Error("pageExtract", "timeout", true)
		return "", errors.New("timeout")
	}
}
