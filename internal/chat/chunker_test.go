package chat

import (
	"strings"
	"testing"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

func TestSplitTextIntoChunks_ShortTextIsOneChunk(t *testing.T) {
	chunks := splitTextIntoChunks("short text", maxChunkSize, chunkOverlap)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestSplitTextIntoChunks_RespectsLimit(t *testing.T) {
	text := strings.Repeat("The second law of thermodynamics governs entropy. ", 60)
	chunks := splitTextIntoChunks(text, maxChunkSize, chunkOverlap)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for %d chars, got %d", len(text), len(chunks))
	}
	for i, c := range chunks {
		// Overlap can push a chunk slightly past the limit, never wildly.
		if len(c) > maxChunkSize+chunkOverlap {
			t.Errorf("chunk %d is %d chars", i, len(c))
		}
	}
}

func TestSplitTextIntoChunks_OverlapCarriesContext(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta epsilon. ", 60)
	chunks := splitTextIntoChunks(text, maxChunkSize, chunkOverlap)
	if len(chunks) < 2 {
		t.Skip("input did not split")
	}

	// The head of every later chunk repeats the tail of its predecessor.
	tail := chunks[0][len(chunks[0])-20:]
	if !strings.Contains(chunks[1], tail[:10]) {
		t.Errorf("chunk 2 does not overlap chunk 1: %q vs %q", tail, chunks[1][:50])
	}
}

func TestSplitTextIntoChunks_NoSeparatorHardCut(t *testing.T) {
	text := strings.Repeat("x", 3000)
	chunks := splitTextIntoChunks(text, maxChunkSize, chunkOverlap)
	if len(chunks) != 1 {
		t.Fatalf("expected one hard-cut chunk, got %d", len(chunks))
	}
	if len(chunks[0]) != maxChunkSize {
		t.Errorf("hard cut length = %d, want %d", len(chunks[0]), maxChunkSize)
	}
}

func TestPrepareChunks_TagsEveryChunk(t *testing.T) {
	record := studyModel.StudyRecord{Id: "rec-1", SourceName: "Lecture 7"}
	units := []studyModel.Unit{
		{Index: 3, Text: strings.Repeat("page three content. ", 80)},
		{Index: 4, Text: "page four"},
	}

	chunks := PrepareChunks(record, units)
	if len(chunks) < 3 {
		t.Fatalf("expected unit 3 to split plus unit 4, got %d chunks", len(chunks))
	}

	ids := make(map[string]bool)
	for _, c := range chunks {
		if c.ChunkId == "" || ids[c.ChunkId] {
			t.Errorf("chunk id missing or duplicated: %+v", c)
		}
		ids[c.ChunkId] = true
		if c.RecordId != "rec-1" || c.LectureName != "Lecture 7" {
			t.Errorf("chunk missing record tags: %+v", c)
		}
	}

	last := chunks[len(chunks)-1]
	if last.UnitNum != 4 || last.Order != 0 {
		t.Errorf("unit 4 chunk = %+v", last)
	}
}
