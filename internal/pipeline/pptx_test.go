package pipeline

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

func writeTestArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("writing entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return path
}

func slideXML(paragraphs ...string) string {
	xml := "<p:sld><p:txBody>"
	for _, p := range paragraphs {
		xml += "<a:p><a:t>" + p + "</a:t></a:p>"
	}
	return xml + "</p:txBody></p:sld>"
}

func TestExtractPPTX_NumericSlideOrder(t *testing.T) {
	// slide10 must come after slide2, not after slide1.
	path := writeTestArchive(t, map[string]string{
		"ppt/slides/slide2.xml":  slideXML("second"),
		"ppt/slides/slide10.xml": slideXML("tenth"),
		"ppt/slides/slide1.xml":  slideXML("first"),
		"ppt/media/image1.png":   "binary junk",
	})

	extraction, err := ExtractPPTX(path)
	if err != nil {
		t.Fatalf("ExtractPPTX failed: %v", err)
	}
	if extraction.TotalSlides != 3 {
		t.Errorf("expected 3 slides, got %d", extraction.TotalSlides)
	}

	wantOrder := []int{1, 2, 10}
	wantText := []string{"first", "second", "tenth"}
	if len(extraction.Slides) != 3 {
		t.Fatalf("expected 3 units, got %d", len(extraction.Slides))
	}
	for i, slide := range extraction.Slides {
		if slide.Index != wantOrder[i] {
			t.Errorf("slide %d: index = %d, want %d", i, slide.Index, wantOrder[i])
		}
		if slide.Text != wantText[i] {
			t.Errorf("slide %d: text = %q, want %q", i, slide.Text, wantText[i])
		}
	}
}

func TestExtractPPTX_EmptyArchive(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"ppt/media/image1.png": "not a slide",
	})

	_, err := ExtractPPTX(path)
	if !errors.Is(err, studyModel.ErrEmptyArchive) {
		t.Errorf("expected ErrEmptyArchive, got %v", err)
	}
}

func TestExtractPPTX_SkipsEmptySlides(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"ppt/slides/slide1.xml": slideXML("A"),
		"ppt/slides/slide2.xml": "<p:sld><p:txBody></p:txBody></p:sld>",
		"ppt/slides/slide3.xml": slideXML("B"),
	})

	extraction, err := ExtractPPTX(path)
	if err != nil {
		t.Fatalf("ExtractPPTX failed: %v", err)
	}
	// The empty slide counts toward the total but yields no unit.
	if extraction.TotalSlides != 3 {
		t.Errorf("expected total 3, got %d", extraction.TotalSlides)
	}
	if len(extraction.Slides) != 2 {
		t.Fatalf("expected 2 units, got %d", len(extraction.Slides))
	}

	full := extraction.Canonical().FullText
	want := "[Slide 1]\nA\n\n[Slide 3]\nB"
	if full != want {
		t.Errorf("full text = %q, want %q", full, want)
	}
}

func TestExtractPPTX_ParagraphsAndEntities(t *testing.T) {
	// Runs in one paragraph join with no separator, paragraphs with newlines,
	// and the standard XML entities are unescaped.
	xml := "<p:sld><a:p><a:t>Euler</a:t><a:t> &amp; </a:t><a:t>Gauss</a:t></a:p>" +
		"<a:p><a:t>x &lt; y</a:t></a:p></p:sld>"
	path := writeTestArchive(t, map[string]string{
		"ppt/slides/slide1.xml": xml,
	})

	extraction, err := ExtractPPTX(path)
	if err != nil {
		t.Fatalf("ExtractPPTX failed: %v", err)
	}
	want := "Euler & Gauss\nx < y"
	if extraction.Slides[0].Text != want {
		t.Errorf("slide text = %q, want %q", extraction.Slides[0].Text, want)
	}
}

func TestExtractPPTX_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pptx")
	if err := os.WriteFile(path, []byte("plain text, no zip magic"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractPPTX(path); err == nil {
		t.Error("expected an error for a non-zip file")
	}
}
