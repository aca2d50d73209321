package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type PipelineStage string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	//ingestion pipeline stages, terminal ones last
	StageIdle            PipelineStage = "Idle"
	StageClassifying     PipelineStage = "Classifying"
	StageExtracting      PipelineStage = "Extracting"
	StageValidating      PipelineStage = "Validating"
	StageScannedFallback PipelineStage = "ScannedFallback"
	StageSummarizing     PipelineStage = "Summarizing"
	StageDone            PipelineStage = "Done"
	StageFailed          PipelineStage = "Failed"

	//lecture chat stages
	ChatInit         PipelineStage = "ChatInit"
	ChatCacheCall    PipelineStage = "ChatCacheCall"
	ChatRetrieval    PipelineStage = "ChatRetrieval"
	ChatLLMCall      PipelineStage = "ChatLLM"
	ChatEmbeddingAPI PipelineStage = "ChatEmbeddingAPI"

	JobTypeSummarize JobType = "Summarize"
	JobTypeChat      JobType = "Chat"
)

type Job struct {
	Id          string        `json:"id"`
	ChatId      string        `json:"chat_id,omitempty"`
	TraceId     string        `json:"trace_id"`
	JobType     JobType       `json:"job_type"`
	JobPayload  JobPayload    `json:"job_payload"`
	Error       JobError      `json:"error,omitempty"`
	CreatedTime time.Time     `json:"created_time"`
	EndTime     time.Time     `json:"end_time,omitempty"`
	Status      JobStatus     `json:"status"`
	CurrentStep PipelineStage `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	//summarize jobs
	ArtifactName string `json:"artifact_name,omitempty"`
	ArtifactPath string `json:"artifact_path,omitempty"`
	DeclaredMIME string `json:"declared_mime,omitempty"`
	RawText      string `json:"raw_text,omitempty"`
	// multi-image uploads carry every staged path, ArtifactPath holds the first
	ImagePaths []string `json:"image_paths,omitempty"`
	UserId     string   `json:"user_id,omitempty"`
	RecordId   string   `json:"record_id,omitempty"`

	//fallback progress, updated after every analyzed page
	PagesDone  int `json:"pages_done,omitempty"`
	PagesTotal int `json:"pages_total,omitempty"`

	//chat jobs
	LectureId string   `json:"lecture_id,omitempty"`
	Question  string   `json:"question,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	Sources   []string `json:"sources,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

type MessageStore interface {
	ValidateChatId(ctx context.Context, id string) bool
	TrySaveChat(ctx context.Context, id string, JobPayload JobPayload) error
	InitNewChat(ctx context.Context, id string) error
	GetMessageHistory(ctx context.Context, chatId string) (error, []string)
}
