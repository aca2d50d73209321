package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jobmodel "github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/internal/job"
	"github.com/lecturelens/lecturelens/internal/pipeline"
	"github.com/lecturelens/lecturelens/internal/pipeline/media"
	"github.com/lecturelens/lecturelens/internal/summarize/groq"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

type MockJobStore struct {
	mu        sync.Mutex
	SavedJobs []jobmodel.Job
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobmodel.Job, bool) {
	return jobmodel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobmodel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavedJobs = append(m.SavedJobs, j)
	return nil
}

func (m *MockJobStore) LastSaved() (jobmodel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SavedJobs) == 0 {
		return jobmodel.Job{}, false
	}
	return m.SavedJobs[len(m.SavedJobs)-1], true
}

type MockMessageStore struct{}

func (m *MockMessageStore) ValidateChatId(ctx context.Context, id string) bool { return true }
func (m *MockMessageStore) InitNewChat(ctx context.Context, id string) error   { return nil }
func (m *MockMessageStore) GetMessageHistory(ctx context.Context, id string) (error, []string) {
	return nil, []string{}
}
func (m *MockMessageStore) TrySaveChat(ctx context.Context, id string, p jobmodel.JobPayload) error {
	return nil
}

type MockLibraryStore struct {
	mu      sync.Mutex
	Records []studyModel.StudyRecord
}

func (m *MockLibraryStore) SaveRecord(ctx context.Context, record studyModel.StudyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
	return nil
}

func (m *MockLibraryStore) GetRecord(ctx context.Context, recordId string) (studyModel.StudyRecord, bool) {
	return studyModel.StudyRecord{}, false
}

func (m *MockLibraryStore) ListRecords(ctx context.Context, userId string) ([]studyModel.StudyRecord, error) {
	return nil, nil
}

func (m *MockLibraryStore) DeleteRecord(ctx context.Context, recordId string) error { return nil }

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(ctx context.Context, path string) (media.Transcript, error) {
	return media.Transcript{}, errors.New("not used")
}

type stubVision struct{}

func (stubVision) ExtractFromImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	return "", errors.New("not used")
}

func (stubVision) ExtractFromFiles(ctx context.Context, paths []string) ([]studyModel.Unit, error) {
	return nil, errors.New("not used")
}

type stubSummarizer struct{}

func (stubSummarizer) GenerateSummary(ctx context.Context, text string) (studyModel.SummaryPacket, error) {
	return studyModel.SummaryPacket{Topic: "Stub Topic"}, nil
}

func testSetup(jobStore *MockJobStore, libraryStore *MockLibraryStore) *job.Service {
	jobSvc := &job.Service{
		JobChannel:        make(chan jobmodel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
		MessageStore:      &MockMessageStore{},
		LibraryStore:      libraryStore,
	}
	orchestrator := pipeline.NewOrchestrator(stubTranscriber{}, stubVision{}, stubSummarizer{})
	InitServices(jobSvc, orchestrator, nil, pipeline.NewRunTracker())
	logger = logger_i.NewLogger("TestWorkerPool")
	return jobSvc
}

func TestExecuteJob_SummarizeRawText(t *testing.T) {
	jobStore := &MockJobStore{}
	libraryStore := &MockLibraryStore{}
	testSetup(jobStore, libraryStore)

	testJob := jobmodel.Job{
		Id:      "job-1",
		JobType: jobmodel.JobTypeSummarize,
		JobPayload: jobmodel.JobPayload{
			UserId:       "local",
			RecordId:     "record-1",
			ArtifactName: "Pasted Notes",
			RawText:      strings.Repeat("entropy measures disorder in a closed system. ", 5),
		},
	}

	executeJob(testJob)

	final, ok := jobStore.LastSaved()
	if !ok {
		t.Fatal("no job state was saved")
	}
	if final.Status != jobmodel.JobStatusComplete {
		t.Errorf("final status = %s, want COMPLETE (error: %+v)", final.Status, final.Error)
	}
	if final.CurrentStep != jobmodel.StageDone {
		t.Errorf("final stage = %s, want Done", final.CurrentStep)
	}

	if len(libraryStore.Records) != 1 {
		t.Fatalf("library has %d records, want 1", len(libraryStore.Records))
	}
	record := libraryStore.Records[0]
	if record.Id != "record-1" || record.UserId != "local" {
		t.Errorf("record = %+v", record)
	}
	if record.Packet.Topic != "Stub Topic" {
		t.Errorf("packet topic = %q", record.Packet.Topic)
	}
}

func TestExecuteJob_InsufficientTextFails(t *testing.T) {
	jobStore := &MockJobStore{}
	libraryStore := &MockLibraryStore{}
	testSetup(jobStore, libraryStore)

	testJob := jobmodel.Job{
		Id:      "job-2",
		JobType: jobmodel.JobTypeSummarize,
		JobPayload: jobmodel.JobPayload{
			UserId:   "local",
			RecordId: "record-2",
			RawText:  "too short",
		},
	}

	executeJob(testJob)

	final, ok := jobStore.LastSaved()
	if !ok {
		t.Fatal("no job state was saved")
	}
	if final.Status != jobmodel.JobStatusError {
		t.Errorf("final status = %s, want Error", final.Status)
	}
	if final.Error.Code != http.StatusUnprocessableEntity {
		t.Errorf("error code = %d, want 422", final.Error.Code)
	}
	if len(libraryStore.Records) != 0 {
		t.Error("failed run still saved a library record")
	}
}

func TestExecuteJob_ChatWithoutServiceIs503(t *testing.T) {
	jobStore := &MockJobStore{}
	testSetup(jobStore, &MockLibraryStore{})

	testJob := jobmodel.Job{
		Id:      "job-3",
		ChatId:  "chat-1",
		JobType: jobmodel.JobTypeChat,
		JobPayload: jobmodel.JobPayload{
			Question:  "what is entropy?",
			LectureId: "record-1",
		},
	}

	executeJob(testJob)

	final, ok := jobStore.LastSaved()
	if !ok {
		t.Fatal("no job state was saved")
	}
	if final.Status != jobmodel.JobStatusError {
		t.Errorf("final status = %s, want Error", final.Status)
	}
	if final.Error.Code != http.StatusServiceUnavailable {
		t.Errorf("error code = %d, want 503", final.Error.Code)
	}
}

func TestExecuteJob_LogsCarryTraceId(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	jobStore := &MockJobStore{}
	testSetup(jobStore, &MockLibraryStore{})

	testJob := jobmodel.Job{
		Id:      "job-4",
		TraceId: "trace-4711",
		JobType: jobmodel.JobTypeSummarize,
		JobPayload: jobmodel.JobPayload{
			UserId:   "local",
			RecordId: "record-4",
			RawText:  strings.Repeat("entropy measures disorder in a closed system. ", 5),
		},
	}

	executeJob(testJob)

	if !strings.Contains(buf.String(), "trace-4711") {
		t.Error("job log lines do not carry the trace id")
	}
}

func TestWorkerPool_Flow(t *testing.T) {
	jobStore := &MockJobStore{}
	jobSvc := testSetup(jobStore, &MockLibraryStore{})
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true

		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		jobSvc.JobChannel <- jobmodel.Job{
			Id:      "pool-job-1",
			JobType: jobmodel.JobTypeSummarize,
			JobPayload: jobmodel.JobPayload{
				UserId:   "local",
				RecordId: "record-p1",
				RawText:  strings.Repeat("lecture content about thermodynamics. ", 5),
			},
		}

		time.Sleep(100 * time.Millisecond)

		final, ok := jobStore.LastSaved()
		if !ok || final.Status != jobmodel.JobStatusComplete {
			t.Errorf("job not processed to completion: %+v", final)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestErrorCode_Mapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", studyModel.ErrUnsupportedType), http.StatusUnsupportedMediaType},
		{fmt.Errorf("wrap: %w", studyModel.ErrSizeLimit), http.StatusRequestEntityTooLarge},
		{fmt.Errorf("wrap: %w", studyModel.ErrInsufficientText), http.StatusUnprocessableEntity},
		{fmt.Errorf("wrap: %w", studyModel.ErrEmptyArchive), http.StatusUnprocessableEntity},
		{fmt.Errorf("wrap: %w", studyModel.ErrParseFailure), http.StatusBadGateway},
		{&studyModel.RemoteError{Service: "Groq LLM", StatusCode: 500}, http.StatusBadGateway},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", groq.ErrRateLimited, true},
		{"remote 500", &studyModel.RemoteError{StatusCode: 500}, true},
		{"remote 429", &studyModel.RemoteError{StatusCode: 429}, true},
		{"remote 400", &studyModel.RemoteError{StatusCode: 400}, false},
		{"parse failure", studyModel.ErrParseFailure, true},
		{"unsupported type", studyModel.ErrUnsupportedType, false},
	}
	for _, tt := range tests {
		if got := isRetryable(tt.err); got != tt.want {
			t.Errorf("%s: isRetryable = %v, want %v", tt.name, got, tt.want)
		}
	}
}
