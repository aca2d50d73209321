package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/internal/pipeline/media"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

// TranscriberClient is the slice of the Whisper client the orchestrator needs.
type TranscriberClient interface {
	Transcribe(ctx context.Context, path string) (media.Transcript, error)
}

// ImageAnalyzer covers single-image and batch extraction on the vision client.
type ImageAnalyzer interface {
	VisionExtractor
	ExtractFromFiles(ctx context.Context, paths []string) ([]studyModel.Unit, error)
}

// Summarizer turns extracted text into a study packet.
type Summarizer interface {
	GenerateSummary(ctx context.Context, text string) (studyModel.SummaryPacket, error)
}

// Run is one ingestion request. Exactly one of Artifact, RawText or
// ImagePaths is populated.
type Run struct {
	Id         string
	UserId     string
	Artifact   studyModel.UploadArtifact
	RawText    string
	ImagePaths []string
}

// Outcome is what a completed run hands back to the caller.
type Outcome struct {
	Packet     studyModel.SummaryPacket
	Extraction studyModel.ExtractionResult
}

// Progress reports the stage the run just entered. done/total are only
// meaningful during the scanned fallback, zero otherwise.
type Progress func(stage jobModel.PipelineStage, done int, total int)

var (
	extractPDF      = ExtractPDF
	scannedFallback = ScannedFallback
)

// Orchestrator drives a run through the fixed stage sequence: classify,
// extract, validate, optionally the scanned fallback, then summarize.
// Stages never run out of order and never re-enter.
type Orchestrator struct {
	transcriber TranscriberClient
	vision      ImageAnalyzer
	summarizer  Summarizer
	logger      *logger_i.Logger
}

func NewOrchestrator(transcriber TranscriberClient, vision ImageAnalyzer, summarizer Summarizer) *Orchestrator {
	return &Orchestrator{
		transcriber: transcriber,
		vision:      vision,
		summarizer:  summarizer,
		logger:      logger_i.NewLogger("Orchestrator"),
	}
}

func (o *Orchestrator) Process(ctx context.Context, run Run, progress Progress) (Outcome, error) {
	report := func(stage jobModel.PipelineStage, done, total int) {
		if progress != nil {
			progress(stage, done, total)
		}
	}

	report(jobModel.StageClassifying, 0, 0)
	kind, err := o.classify(run)
	if err != nil {
		return Outcome{}, err
	}
	o.logger.Info("artifact classified", "run", run.Id, "kind", kind)

	report(jobModel.StageExtracting, 0, 0)
	result, err := o.extract(ctx, run, kind)
	if err != nil {
		return Outcome{}, err
	}

	if result.IsLikelyScanned {
		report(jobModel.StageScannedFallback, 0, 0)
		o.logger.Info("text layer too thin, switching to page image analysis",
			"run", run.Id, "chars", len(result.FullText), "pages", result.TotalUnits)
		extraction, err := scannedFallback(ctx, run.Artifact.Path, o.vision, func(done, total int) {
			report(jobModel.StageScannedFallback, done, total)
		})
		if err != nil {
			return Outcome{}, err
		}
		result = extraction.Canonical()
	}

	report(jobModel.StageValidating, 0, 0)
	if len(strings.TrimSpace(result.FullText)) < config.MinExtractedTextLength {
		return Outcome{}, fmt.Errorf("%w: extracted only %d characters from %q",
			studyModel.ErrInsufficientText, len(result.FullText), run.Artifact.Name)
	}

	report(jobModel.StageSummarizing, 0, 0)
	packet, err := o.summarizer.GenerateSummary(ctx, result.FullText)
	if err != nil {
		return Outcome{}, err
	}
	if packet.Topic == "" {
		packet.Topic = topicFromRun(run)
	}

	report(jobModel.StageDone, 0, 0)
	return Outcome{Packet: packet, Extraction: result}, nil
}

func (o *Orchestrator) classify(run Run) (studyModel.ArtifactKind, error) {
	switch {
	case run.RawText != "":
		return studyModel.KindText, nil
	case len(run.ImagePaths) > 0:
		return studyModel.KindImage, nil
	default:
		return Classify(run.Artifact.Name, run.Artifact.DeclaredMIME)
	}
}

func (o *Orchestrator) extract(ctx context.Context, run Run, kind studyModel.ArtifactKind) (studyModel.ExtractionResult, error) {
	switch kind {
	case studyModel.KindPDF:
		extraction, err := extractPDF(run.Artifact.Path)
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return extraction.Canonical(), nil

	case studyModel.KindPPTX:
		extraction, err := ExtractPPTX(run.Artifact.Path)
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return extraction.Canonical(), nil

	case studyModel.KindText:
		if run.RawText != "" {
			return TextExtraction{Text: run.RawText}.Canonical(), nil
		}
		extraction, err := ExtractPlainText(run.Artifact.Path)
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return extraction.Canonical(), nil

	case studyModel.KindAudio, studyModel.KindVideo:
		transcript, err := o.transcriber.Transcribe(ctx, run.Artifact.Path)
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return MediaTranscription{
			Text:     transcript.Text,
			Duration: transcript.Duration,
			Segments: len(transcript.Segments),
		}.Canonical(), nil

	case studyModel.KindImage:
		return o.extractImages(ctx, run)

	default:
		return studyModel.ExtractionResult{}, fmt.Errorf("%w: %q", studyModel.ErrUnsupportedType, kind)
	}
}

func (o *Orchestrator) extractImages(ctx context.Context, run Run) (studyModel.ExtractionResult, error) {
	paths := run.ImagePaths
	if len(paths) == 0 {
		paths = []string{run.Artifact.Path}
	}

	if len(paths) == 1 {
		// A single image yields plain text without block markers.
		data, err := os.ReadFile(paths[0])
		if err != nil {
			return studyModel.ExtractionResult{}, fmt.Errorf("failed to read image: %w", err)
		}
		text, err := o.vision.ExtractFromImage(ctx, data, media.MimeTypeForImage(paths[0]))
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return TextExtraction{Text: text}.Canonical(), nil
	}

	units, err := o.vision.ExtractFromFiles(ctx, paths)
	if err != nil {
		return studyModel.ExtractionResult{}, err
	}
	return VisionExtraction{Blocks: units}.Canonical(), nil
}

func topicFromRun(run Run) string {
	if run.Artifact.Name != "" {
		name := run.Artifact.Name
		if dot := strings.LastIndex(name, "."); dot > 0 {
			name = name[:dot]
		}
		return name
	}
	if len(run.ImagePaths) > 0 {
		return "Lecture Images"
	}
	return "Pasted Notes"
}
