package chat

import (
	"strings"

	"github.com/lecturelens/lecturelens/internal/adapter/utils"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

// Limits for the splitter
const maxChunkSize = 1000 // characters
const chunkOverlap = 150  // generous overlap helps semantic continuity

func splitTextIntoChunks(text string, limit int, overlap int) []string {
	var chunks []string

	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from "best" to "worst" for semantic meaning
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	found := false
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		// Hard cut if no separator found (rare)
		return []string{text[:limit]}
	}

	parts := strings.Split(text, splitChar)
	var currentChunk strings.Builder

	for _, part := range parts {
		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			// Overlap: start the next chunk with the tail of the previous one
			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

// PrepareChunks splits each extracted unit of a record into embedding-sized
// chunks tagged with the record they belong to.
func PrepareChunks(record studyModel.StudyRecord, units []studyModel.Unit) []studyModel.LectureChunk {
	var allChunks []studyModel.LectureChunk

	for _, unit := range units {
		stringChunks := splitTextIntoChunks(unit.Text, maxChunkSize, chunkOverlap)

		for i, text := range stringChunks {
			allChunks = append(allChunks, studyModel.LectureChunk{
				ChunkId:     utils.GetNewUUID(),
				RecordId:    record.Id,
				LectureName: record.SourceName,
				Text:        text,
				UnitNum:     unit.Index,
				Order:       i,
			})
		}
	}

	return allChunks
}
