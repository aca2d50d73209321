package adapter

import (
	"fmt"
	"time"

	"github.com/lecturelens/lecturelens/internal/api"
	"github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		Stage:        string(job.CurrentStep),
		Progress:     toProgress(job.JobPayload),
		ChatResponse: ToChatAnswer(job.JobPayload),
	}
	if job.Status == jobModel.JobStatusComplete && job.JobType == jobModel.JobTypeSummarize {
		result.RecordId = job.JobPayload.RecordId
	}

	return api.JobResponse{
		Id:        job.Id,
		ChatId:    job.ChatId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func toProgress(payload jobModel.JobPayload) *api.Progress {
	if payload.PagesTotal == 0 {
		return nil
	}
	return &api.Progress{
		PagesDone:  payload.PagesDone,
		PagesTotal: payload.PagesTotal,
	}
}

func ToChatAnswer(payload jobModel.JobPayload) *api.ChatAnswer {
	if payload.Answer == "" && len(payload.Sources) == 0 {
		return nil
	}

	return &api.ChatAnswer{
		Question: payload.Question,
		Answer:   payload.Answer,
		Sources:  payload.Sources,
	}
}

func ToLibraryEntries(records []studyModel.StudyRecord) []api.LibraryEntry {
	entries := make([]api.LibraryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, api.LibraryEntry{
			Id:         record.Id,
			SourceName: record.SourceName,
			Topic:      record.Packet.Topic,
			CreatedAt:  record.CreatedAt,
		})
	}
	return entries
}

func ToRecordResponse(record studyModel.StudyRecord) api.RecordResponse {
	return api.RecordResponse{
		Id:         record.Id,
		SourceName: record.SourceName,
		Packet:     record.Packet,
		CreatedAt:  record.CreatedAt,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		ChatId:    "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
