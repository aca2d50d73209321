package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

// VisionExtractor is the slice of the vision client the fallback needs.
type VisionExtractor interface {
	ExtractFromImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

var fallbackLogger = logger_i.NewLogger("Scanned Fallback")

// pageSource is the document the fallback walks, one raster image per page.
type pageSource interface {
	PageCount() int
	PageImage(pageNr int) ([]byte, string, error)
}

// ScannedFallback reinterprets a PDF with no usable text layer by feeding
// each page's raster image through the vision client, in strict page order.
// A scanned page is its embedded image, so the page scans are pulled
// straight out of the document rather than re-rendered.
//
// A per-page failure is downgraded to an inline placeholder - partial
// results beat total failure on this path. progress is invoked after every
// page, this is the only mid-pipeline progress source.
func ScannedFallback(ctx context.Context, path string, vision VisionExtractor, progress func(done int, total int)) (VisionExtraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return VisionExtraction{}, fmt.Errorf("failed to open pdf for fallback: %w", err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return VisionExtraction{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	return analyzePages(ctx, pdfPages{pdfCtx}, vision, progress)
}

func analyzePages(ctx context.Context, pages pageSource, vision VisionExtractor, progress func(done int, total int)) (VisionExtraction, error) {
	total := pages.PageCount()
	var blocks []studyModel.Unit
	for pageNr := 1; pageNr <= total; pageNr++ {
		text := analyzePage(ctx, pages, pageNr, vision)
		blocks = append(blocks, studyModel.Unit{
			Index: pageNr,
			Text:  fmt.Sprintf("[Page %d]\n%s", pageNr, text),
		})
		if progress != nil {
			progress(pageNr, total)
		}
	}
	return VisionExtraction{Blocks: blocks}, nil
}

func analyzePage(ctx context.Context, pages pageSource, pageNr int, vision VisionExtractor) string {
	data, mimeType, err := pages.PageImage(pageNr)
	if err != nil {
		fallbackLogger.Error("no usable page image", "page", pageNr, "error", err)
		return "(Analysis Failed)"
	}

	text, err := vision.ExtractFromImage(ctx, data, mimeType)
	if err != nil {
		fallbackLogger.Error("vision analysis failed", "page", pageNr, "error", err)
		return "(Analysis Failed)"
	}
	return text
}

type pdfPages struct {
	ctx *model.Context
}

func (p pdfPages) PageCount() int {
	return p.ctx.PageCount
}

// PageImage returns the largest image embedded on the page, which for a
// scanned document is the page scan itself.
func (p pdfPages) PageImage(pageNr int) ([]byte, string, error) {
	images, err := pdfcpu.ExtractPageImages(p.ctx, pageNr, false)
	if err != nil {
		return nil, "", err
	}
	if len(images) == 0 {
		return nil, "", fmt.Errorf("page %d has no embedded images", pageNr)
	}

	objNrs := make([]int, 0, len(images))
	for objNr := range images {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	var best []byte
	var bestType string
	for _, objNr := range objNrs {
		img := images[objNr]
		data, err := io.ReadAll(img)
		if err != nil {
			continue
		}
		if len(data) > len(best) {
			best = data
			bestType = imageMimeType(img.FileType)
		}
	}
	if len(best) == 0 {
		return nil, "", fmt.Errorf("page %d images were unreadable", pageNr)
	}
	return best, bestType, nil
}

func imageMimeType(fileType string) string {
	switch fileType {
	case "png":
		return "image/png"
	case "tif", "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
