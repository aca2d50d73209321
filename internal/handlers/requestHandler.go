package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lecturelens/lecturelens/internal/adapter"
	"github.com/lecturelens/lecturelens/internal/adapter/utils"
	"github.com/lecturelens/lecturelens/internal/api"
	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/internal/pipeline"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

var logRH *logger_i.Logger

// carries everything a queued job needs, built once per request
type newJobData struct {
	id      string
	traceId string
	jobType jobModel.JobType

	//chat
	chatId    string
	message   string
	lectureId string
	isNewChat bool

	//summarize
	artifactName string
	artifactPath string
	declaredMIME string
	rawText      string
	imagePaths   []string
	userId       string
	recordId     string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// SummarizeUploadHandler godoc
// @Summary      Upload lecture material for summarization
// @Description  Receives one file (PDF, PPTX, text, audio, video or image) or several images via multipart/form-data, stages them, and queues an ingestion job.
// @Tags         Summarize
// @Accept       multipart/form-data
// @Produce      json
// @Param        lecture_name  formData  string  false  "Display name for the lecture"
// @Param        lecture       formData  file    true   "The lecture file(s) to process"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Bad request, unsupported type or missing file"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /summarize [post]
func SummarizeUploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	files := r.MultipartForm.File["lecture"]
	if len(files) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "lecture file is required")
		return
	}

	// Several files at once are only allowed when every one is an image,
	// they become one combined lecture.
	if len(files) > 1 {
		for _, header := range files {
			kind, err := pipeline.Classify(header.Filename, header.Header.Get("Content-Type"))
			if err != nil || kind != studyModel.KindImage {
				WriteErrorResponse(w, http.StatusBadRequest, "", "multiple files must all be images")
				return
			}
		}
	}

	var stagedPaths []string
	for _, header := range files {
		path, err := stageUploadedFile(header, targetDir)
		if err != nil {
			logRH.Error("Couldn't stage uploaded file", "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, header.Filename, "Storage error")
			return
		}
		stagedPaths = append(stagedPaths, path)
	}

	lectureName := r.FormValue("lecture_name")
	if lectureName == "" {
		lectureName = files[0].Filename
	}

	newJob := newJobData{
		id:           utils.GetNewUUID(),
		traceId:      r.Context().Value(config.TRACE_ID_KEY).(string),
		jobType:      jobModel.JobTypeSummarize,
		artifactName: lectureName,
		artifactPath: stagedPaths[0],
		declaredMIME: files[0].Header.Get("Content-Type"),
		userId:       requestUserId(r),
		recordId:     utils.GetNewUUID(),
	}
	if len(stagedPaths) > 1 {
		newJob.imagePaths = stagedPaths
	}

	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// SummarizeTextHandler godoc
// @Summary      Summarize pasted text
// @Description  Accepts raw lecture text as JSON and queues a summarization job, skipping extraction.
// @Tags         Summarize
// @Accept       json
// @Produce      json
// @Param        request  body      api.SummarizeTextRequest  true  "Lecture text and optional name"
// @Success      202      {object}  api.InitJobResponse       "Job successfully created"
// @Failure      400      {object}  api.JobResponse           "Missing or empty text"
// @Router       /summarize/text [post]
func SummarizeTextHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.SummarizeTextRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Text) == "" {
		logRH.Warn("Bad Summarize Text Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "text is required")
		return
	}

	lectureName := requestData.LectureName
	if lectureName == "" {
		lectureName = "Pasted Notes"
	}

	newJob := newJobData{
		id:           utils.GetNewUUID(),
		traceId:      r.Context().Value(config.TRACE_ID_KEY).(string),
		jobType:      jobModel.JobTypeSummarize,
		artifactName: lectureName,
		rawText:      requestData.Text,
		userId:       requestUserId(r),
		recordId:     utils.GetNewUUID(),
	}

	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// ChatHandler godoc
// @Summary      Ask a question about a lecture
// @Description  Accepts a question scoped to a library record, initializes a background chat job, and returns a job ID to track status.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest      true  "Question, lecture ID and optional chat ID"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data, lecture or chat ID"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.ChatRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateChatRequest(requestData) {
		logRH.Warn("Bad Chat Request: ", "error:", err, "request data:", requestData)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.ChatID, "Bad Request")
		return
	}

	chatID := requestData.ChatID
	isNewChat := false
	if chatID == "" {
		chatID = utils.GetNewUUID()
		isNewChat = true
		logRH.Debug(" New Chat request : ", "chatID:", chatID)
	}

	newJob := newJobData{
		id:        utils.GetNewUUID(),
		traceId:   request.Context().Value(config.TRACE_ID_KEY).(string),
		jobType:   jobModel.JobTypeChat,
		chatId:    chatID,
		message:   requestData.Message,
		lectureId: requestData.LectureID,
		isNewChat: isNewChat,
	}

	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status, pipeline stage and progress of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body :", "error", err)
	}
}

func stageUploadedFile(header *multipart.FileHeader, targetDir string) (string, error) {
	fileReader, err := header.Open()
	if err != nil {
		return "", err
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		return "", err
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		return "", err
	}
	return tempFilePath, nil
}
