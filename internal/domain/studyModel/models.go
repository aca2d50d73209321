package studyModel

import (
	"context"
	"time"
)

// ArtifactKind is the pipeline variant an upload is routed through.
type ArtifactKind string

const (
	KindPDF   ArtifactKind = "pdf"
	KindPPTX  ArtifactKind = "pptx"
	KindText  ArtifactKind = "text"
	KindImage ArtifactKind = "image"
	KindAudio ArtifactKind = "audio"
	KindVideo ArtifactKind = "video"
)

// UploadArtifact is a user-supplied file plus its detected kind.
// Immutable once built, discarded after extraction.
type UploadArtifact struct {
	Name         string       `json:"name"`
	Path         string       `json:"path"`
	DeclaredMIME string       `json:"declared_mime"`
	SizeBytes    int64        `json:"size_bytes"`
	Kind         ArtifactKind `json:"kind"`
}

// Unit is one page (PDF), slide (PPTX) or discrete media item of an artifact.
type Unit struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ExtractionResult is the canonical output of exactly one extractor per
// artifact, consumed once by the pipeline. Not persisted.
type ExtractionResult struct {
	FullText        string `json:"full_text"`
	Units           []Unit `json:"units"`
	TotalUnits      int    `json:"total_units"`
	IsLikelyScanned bool   `json:"is_likely_scanned"`
}

// Note is one topic block of generated study material.
type Note struct {
	Topic        string   `json:"topic"`
	Content      string   `json:"content"`
	Analogies    []string `json:"analogies,omitempty"`
	Definitions  []string `json:"definitions,omitempty"`
	Formulas     []string `json:"formulas,omitempty"`
	BulletPoints []string `json:"bulletPoints,omitempty"`
	Examples     []string `json:"examples,omitempty"`
}

type QuizItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type Summary struct {
	Overview          string   `json:"overview"`
	Highlights        []string `json:"highlights"`
	ImportantConcepts []string `json:"importantConcepts,omitempty"`
	KeyFormulas       []string `json:"keyFormulas,omitempty"`
	ExamTip           string   `json:"examTip,omitempty"`
	KeyTakeaway       string   `json:"keyTakeaway"`
}

// SummaryPacket is produced once per successful pipeline run and never
// mutated afterwards - regeneration replaces it wholesale.
type SummaryPacket struct {
	Topic   string     `json:"topic,omitempty"`
	Summary Summary    `json:"summary"`
	Notes   []Note     `json:"notes"`
	Quiz    []QuizItem `json:"quiz,omitempty"`
}

// StudyRecord is one persisted library entry: a packet plus the user that
// owns it and the extracted text the chat feature answers from.
type StudyRecord struct {
	Id         string        `json:"id"`
	UserId     string        `json:"user_id"`
	SourceName string        `json:"source_name"`
	Packet     SummaryPacket `json:"packet"`
	SourceText string        `json:"source_text,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// LectureChunk is one retrievable slice of a record's source text, sized
// for embedding. Chunks only exist inside the vector store.
type LectureChunk struct {
	ChunkId     string `json:"chunk_id"`
	RecordId    string `json:"record_id"`
	LectureName string `json:"lecture_name"`
	Text        string `json:"content"`
	UnitNum     int    `json:"unit_num"`
	Order       int    `json:"chunk_order"`
}

type LibraryStore interface {
	SaveRecord(ctx context.Context, record StudyRecord) error
	GetRecord(ctx context.Context, recordId string) (StudyRecord, bool)
	// ListRecords returns the user's records ordered by creation time descending.
	ListRecords(ctx context.Context, userId string) ([]StudyRecord, error)
	DeleteRecord(ctx context.Context, recordId string) error
}
