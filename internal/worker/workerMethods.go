package worker

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/lecturelens/lecturelens/internal/config"
	jobmodel "github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/internal/metrics"
	"github.com/lecturelens/lecturelens/internal/pipeline"
	"github.com/lecturelens/lecturelens/internal/summarize/groq"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, jobTimeout(job))
	defer cancel()
	log := logger.With("traceId", job.TraceId)
	log.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	if job.JobType == jobmodel.JobTypeSummarize {
		job = processSummarize(ctx, job, log)
	} else {
		job = processChat(ctx, job, log)
		if job.Status != jobmodel.JobStatusError {
			if err := _jobService.MessageStore.TrySaveChat(ctx, job.ChatId, job.JobPayload); err != nil {
				log.Error("Failed to save chat history", "err", err)
			}
		}
	}

	job.EndTime = time.Now()
	if job.Status != jobmodel.JobStatusError {
		job.Status = jobmodel.JobStatusComplete
	}
	saveJobState(ctx, job, job.Status)
}

func jobTimeout(job jobmodel.Job) time.Duration {
	// Scanned fallbacks make one vision call per page, summarize runs get a
	// wide budget while chat turns stay tight.
	if job.JobType == jobmodel.JobTypeSummarize {
		return 10 * time.Minute
	}
	return config.RemoteCallTimeout
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

// processSummarize drives the ingestion pipeline. Stage changes are written
// back to the job store as they happen so status polling sees live progress.
func processSummarize(ctx context.Context, job jobmodel.Job, logger *logger_i.Logger) jobmodel.Job {
	run := pipeline.Run{
		Id:     job.Id,
		UserId: job.JobPayload.UserId,
		Artifact: studyModel.UploadArtifact{
			Name:         job.JobPayload.ArtifactName,
			Path:         job.JobPayload.ArtifactPath,
			DeclaredMIME: job.JobPayload.DeclaredMIME,
		},
		RawText:    job.JobPayload.RawText,
		ImagePaths: job.JobPayload.ImagePaths,
	}
	_runTracker.Begin(run.UserId, run.Id)
	defer cleanupArtifacts(job)

	stageStart := time.Now()
	lastStage := jobmodel.StageIdle
	outcome, err := _orchestrator.Process(ctx, run, func(stage jobmodel.PipelineStage, done int, total int) {
		if stage != lastStage {
			if lastStage != jobmodel.StageIdle {
				metrics.CaptureStageMetrics(string(lastStage), time.Since(stageStart))
			}
			stageStart = time.Now()
			lastStage = stage
		}
		job.CurrentStep = stage
		job.JobPayload.PagesDone = done
		job.JobPayload.PagesTotal = total
		saveJobState(ctx, job, jobmodel.JobStatusRunning)
	})
	if err != nil {
		job.CurrentStep = jobmodel.StageFailed
		return failSummarizeJob(job, err)
	}

	// A newer upload from the same user supersedes this run, its results
	// are discarded instead of overwriting the newer record.
	if !_runTracker.IsCurrent(run.UserId, run.Id) {
		logger.Info("Run superseded, discarding results", "job Id", job.Id)
		job.CurrentStep = jobmodel.StageDone
		return job
	}
	_runTracker.Finish(run.UserId, run.Id)

	record := studyModel.StudyRecord{
		Id:         job.JobPayload.RecordId,
		UserId:     run.UserId,
		SourceName: job.JobPayload.ArtifactName,
		Packet:     outcome.Packet,
		SourceText: outcome.Extraction.FullText,
		CreatedAt:  time.Now(),
	}
	if err := _jobService.LibraryStore.SaveRecord(ctx, record); err != nil {
		job.CurrentStep = jobmodel.StageFailed
		return failSummarizeJob(job, err)
	}

	// Retrieval indexing is best effort, the record is already saved and
	// chat degrades to full-text context without it.
	if _chatService != nil {
		if err := _chatService.IndexLecture(ctx, record, outcome.Extraction.Units); err != nil {
			logger.Error("Failed to index lecture for chat", "err", err)
		}
	}

	job.CurrentStep = jobmodel.StageDone
	return job
}

func processChat(ctx context.Context, job jobmodel.Job, logger *logger_i.Logger) jobmodel.Job {
	if _chatService == nil {
		job.Status = jobmodel.JobStatusError
		job.Error = jobmodel.JobError{
			Code:    http.StatusServiceUnavailable,
			Message: "Lecture chat is unavailable",
			Retry:   false,
		}
		return job
	}
	err, messageHistory := _jobService.MessageStore.GetMessageHistory(ctx, job.ChatId)
	if err != nil {
		logger.Error("Failed to get message history", "err", err)
	}
	job = _chatService.ProcessChat(ctx, job, messageHistory)
	return job
}

func failSummarizeJob(job jobmodel.Job, err error) jobmodel.Job {
	logger.Error("Summarize job failed", "job Id", job.Id, "err", err)
	job.Status = jobmodel.JobStatusError
	job.Error = jobmodel.JobError{
		Code:    errorCode(err),
		Message: err.Error(),
		Retry:   isRetryable(err),
	}
	return job
}

func errorCode(err error) int {
	var remoteErr *studyModel.RemoteError
	switch {
	case errors.Is(err, studyModel.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, studyModel.ErrSizeLimit):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, studyModel.ErrInsufficientText),
		errors.Is(err, studyModel.ErrEmptyArchive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, studyModel.ErrParseFailure),
		errors.As(err, &remoteErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, groq.ErrRateLimited) {
		return true
	}
	var remoteErr *studyModel.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode >= 500 || remoteErr.StatusCode == http.StatusTooManyRequests
	}
	return errors.Is(err, studyModel.ErrParseFailure)
}

// cleanupArtifacts removes staged upload files once a run finishes, they
// only exist for the duration of the pipeline.
func cleanupArtifacts(job jobmodel.Job) {
	paths := append([]string{}, job.JobPayload.ImagePaths...)
	if job.JobPayload.ArtifactPath != "" {
		paths = append(paths, job.JobPayload.ArtifactPath)
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Error("Error removing staged file", "path", p, "err", err)
		}
	}
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
