package pipeline

import (
	"fmt"
	"strings"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

// Tagged extraction variants, one per extractor. Each is a fixed record
// converted to the canonical ExtractionResult at the orchestrator boundary.

type PdfExtraction struct {
	Pages      []studyModel.Unit
	TotalPages int
}

type PptxExtraction struct {
	Slides      []studyModel.Unit
	TotalSlides int
}

type MediaTranscription struct {
	Text     string
	Duration float64
	Segments int
}

type VisionExtraction struct {
	Blocks []studyModel.Unit
}

type TextExtraction struct {
	Text string
}

func (e PdfExtraction) Canonical() studyModel.ExtractionResult {
	fullText := joinUnits(e.Pages, "Page")
	return studyModel.ExtractionResult{
		FullText:   fullText,
		Units:      e.Pages,
		TotalUnits: e.TotalPages,
		// Heuristic: almost no text despite the document having pages.
		// Can misfire on a legitimately near-empty document.
		IsLikelyScanned: len(fullText) < config.MinExtractedTextLength && e.TotalPages > 0,
	}
}

func (e PptxExtraction) Canonical() studyModel.ExtractionResult {
	return studyModel.ExtractionResult{
		FullText:   joinUnits(e.Slides, "Slide"),
		Units:      e.Slides,
		TotalUnits: e.TotalSlides,
	}
}

func (e MediaTranscription) Canonical() studyModel.ExtractionResult {
	var units []studyModel.Unit
	if e.Text != "" {
		units = []studyModel.Unit{{Index: 1, Text: e.Text}}
	}
	return studyModel.ExtractionResult{
		FullText:   e.Text,
		Units:      units,
		TotalUnits: 1,
	}
}

func (e VisionExtraction) Canonical() studyModel.ExtractionResult {
	var blocks []string
	for _, b := range e.Blocks {
		blocks = append(blocks, b.Text)
	}
	return studyModel.ExtractionResult{
		FullText:   strings.Join(blocks, "\n\n"),
		Units:      e.Blocks,
		TotalUnits: len(e.Blocks),
	}
}

func (e TextExtraction) Canonical() studyModel.ExtractionResult {
	var units []studyModel.Unit
	if e.Text != "" {
		units = []studyModel.Unit{{Index: 1, Text: e.Text}}
	}
	return studyModel.ExtractionResult{
		FullText:   e.Text,
		Units:      units,
		TotalUnits: 1,
	}
}

func joinUnits(units []studyModel.Unit, marker string) string {
	blocks := make([]string, 0, len(units))
	for _, u := range units {
		blocks = append(blocks, fmt.Sprintf("[%s %d]\n%s", marker, u.Index, u.Text))
	}
	return strings.Join(blocks, "\n\n")
}
