package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lecturelens/lecturelens/internal/api"
	"github.com/lecturelens/lecturelens/internal/chat"
	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/job"
	"github.com/lecturelens/lecturelens/internal/metrics"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service     *job.Service
	chatService chat.Service
}

func InitJobHandler(jobService *job.Service, chatService chat.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, chatService: chatService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	log := logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	log.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
	if newJob.isNewChat {
		log.Info("Create new chat")
		handlerInstance.initNewChat(newJob.chatId, newJob.traceId)
	}
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func ValidateChatRequest(chatReq api.ChatRequest) bool {
	if handlerInstance == nil {
		return false
	}
	logJH.Debug(" Validating chat request ", "chatId :", chatReq.ChatID)
	if chatReq.Message == "" || chatReq.LectureID == "" {
		return false
	}
	if _, found := handlerInstance.service.LibraryStore.GetRecord(context.Background(), chatReq.LectureID); !found {
		return false
	}
	if chatReq.ChatID == "" {
		return true
	}
	return handlerInstance.service.MessageStore.ValidateChatId(context.Background(), chatReq.ChatID)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued

	if newJob.jobType == jobModel.JobTypeSummarize {
		_job.CurrentStep = jobModel.StageIdle
		_job.JobType = jobModel.JobTypeSummarize
		_job.JobPayload.ArtifactName = newJob.artifactName
		_job.JobPayload.ArtifactPath = newJob.artifactPath
		_job.JobPayload.DeclaredMIME = newJob.declaredMIME
		_job.JobPayload.RawText = newJob.rawText
		_job.JobPayload.ImagePaths = newJob.imagePaths
		_job.JobPayload.UserId = newJob.userId
		_job.JobPayload.RecordId = newJob.recordId
	} else {
		_job.JobType = jobModel.JobTypeChat
		_job.ChatId = newJob.chatId
		_job.CurrentStep = jobModel.ChatInit
		_job.JobPayload.Question = newJob.message
		_job.JobPayload.LectureId = newJob.lectureId
	}

	//metrics
	metrics.IncrementJobsInQueue()

	_job.Status = jobModel.JobStatusQueued
	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//a new worker per summarize job - extraction plus remote LLM calls can
	//take a while and should not starve quick chat turns. chat jobs only
	//spawn workers every N requests, idle workers retire on their own
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeSummarize {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

func (h *JobHandler) initNewChat(chatId string, traceId string) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	err := h.service.MessageStore.InitNewChat(ctxC, chatId)
	if err != nil {
		logJH.Error("Error initiating new chat", "chatId", chatId, "error", err)
		return
	}
}
