package api

import (
	"time"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id,omitempty" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type ChatAnswer struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources,omitempty"`
}

// Progress is only populated while the scanned-document fallback runs.
type Progress struct {
	PagesDone  int `json:"pages_done"`
	PagesTotal int `json:"pages_total"`
}

type Result struct {
	Status       string      `json:"status"`
	Stage        string      `json:"stage,omitempty"`
	Progress     *Progress   `json:"progress,omitempty"`
	RecordId     string      `json:"record_id,omitempty"`
	ChatResponse *ChatAnswer `json:"chat_response,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type SummarizeTextRequest struct {
	LectureName string `json:"lecture_name,omitempty"`
	Text        string `json:"text" validate:"required"`
}

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	LectureID string `json:"lectureID" validate:"required"`
	ChatID    string `json:"chatID,omitempty"`
}

type LibraryEntry struct {
	Id         string    `json:"id"`
	SourceName string    `json:"source_name"`
	Topic      string    `json:"topic,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecordResponse struct {
	Id         string                  `json:"id"`
	SourceName string                  `json:"source_name"`
	Packet     studyModel.SummaryPacket `json:"packet"`
	CreatedAt  time.Time               `json:"created_at"`
}
