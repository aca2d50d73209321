package pipeline

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

var (
	slideEntryPattern = regexp.MustCompile(`(?i)^ppt/slides/slide(\d+)\.xml$`)
	textRunPattern    = regexp.MustCompile(`(?s)<a:t[^>]*>(.*?)</a:t>`)
	paragraphEnd      = regexp.MustCompile(`</a:p>`)
)

var xmlEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

type slideEntry struct {
	number int
	file   *zip.File
}

// ExtractPPTX treats the upload as a zip archive and pulls text from every
// slide entry. Slides are ordered by numeric index - slide10 sorts after
// slide9, not after slide1. Slides with no text are dropped from the unit
// list without failing the extraction.
func ExtractPPTX(path string) (PptxExtraction, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return PptxExtraction{}, fmt.Errorf("failed to open presentation archive: %w", err)
	}
	defer archive.Close()

	var entries []slideEntry
	for _, f := range archive.File {
		m := slideEntryPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entries = append(entries, slideEntry{number: n, file: f})
	}

	if len(entries) == 0 {
		return PptxExtraction{}, studyModel.ErrEmptyArchive
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].number < entries[j].number })

	var slides []studyModel.Unit
	for _, entry := range entries {
		content, err := readZipEntry(entry.file)
		if err != nil {
			return PptxExtraction{}, fmt.Errorf("failed reading slide %d: %w", entry.number, err)
		}

		text := strings.TrimSpace(extractSlideText(content))
		if text == "" {
			continue
		}
		slides = append(slides, studyModel.Unit{Index: entry.number, Text: text})
	}

	return PptxExtraction{Slides: slides, TotalSlides: len(entries)}, nil
}

// extractSlideText pulls every <a:t> run, grouped by the </a:p> paragraph
// delimiter: runs within a paragraph join with no separator, paragraphs
// join with newlines. The five standard XML entities are unescaped.
func extractSlideText(xml string) string {
	var paragraphs []string
	for _, para := range paragraphEnd.Split(xml, -1) {
		var runs []string
		for _, m := range textRunPattern.FindAllStringSubmatch(para, -1) {
			runs = append(runs, xmlEntityReplacer.Replace(m[1]))
		}
		if len(runs) > 0 {
			paragraphs = append(paragraphs, strings.Join(runs, ""))
		}
	}
	return strings.Join(paragraphs, "\n")
}

func readZipEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
