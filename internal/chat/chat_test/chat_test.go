package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lecturelens/lecturelens/internal/chat"
	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

func chatJob() jobModel.Job {
	return jobModel.Job{
		Id:      "job-chat-1",
		JobType: jobModel.JobTypeChat,
		JobPayload: jobModel.JobPayload{
			Question:  "What is entropy?",
			LectureId: "record-42",
		},
	}
}

func TestProcessChat_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedStatus jobModel.JobStatus
		expectedAnswer string
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnAnswerQuestion = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "final answer", nil
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectedAnswer: "final answer",
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
				v.OnSearch = func(ctx context.Context, emb []float32, recordId string) ([]string, []string, error) {
					t.Error("cache hit must skip the vector search")
					return nil, nil, nil
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectedAnswer: "cached answer",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearch = func(ctx context.Context, emb []float32, recordId string) ([]string, []string, error) {
					return nil, nil, errors.New("db timeout")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnAnswerQuestion = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}
			tt.setupMocks(mEmbed, mVec, mLLM)

			s := chat.NewService(mVec, mLLM, mEmbed)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			result := s.ProcessChat(ctx, chatJob(), nil)

			if result.Status != tt.expectedStatus {
				t.Errorf("status = %s, want %s", result.Status, tt.expectedStatus)
			}
			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("answer = %q, want %q", result.JobPayload.Answer, tt.expectedAnswer)
			}
			if tt.expectedStatus == jobModel.JobStatusError && result.Error.Code == 0 {
				t.Error("error status without an error payload")
			}
		})
	}
}

func TestProcessChat_SearchScopedToLecture(t *testing.T) {
	var gotRecordId string
	mVec := &MockVectorDB{
		OnSearch: func(ctx context.Context, emb []float32, recordId string) ([]string, []string, error) {
			gotRecordId = recordId
			return []string{"chunk"}, []string{"Lecture 1 / slide 3"}, nil
		},
	}

	s := chat.NewService(mVec, &MockLLM{}, &MockEmbedder{})
	result := s.ProcessChat(context.Background(), chatJob(), nil)

	if gotRecordId != "record-42" {
		t.Errorf("search scoped to %q, want record-42", gotRecordId)
	}
	if len(result.JobPayload.Sources) != 1 || result.JobPayload.Sources[0] != "Lecture 1 / slide 3" {
		t.Errorf("sources = %v", result.JobPayload.Sources)
	}
}

func TestProcessChat_FreshAnswerIsCached(t *testing.T) {
	cached := make(chan string, 1)
	mVec := &MockVectorDB{
		OnSaveToCache: func(ctx context.Context, id string, v []float32, answer string) error {
			cached <- answer
			return nil
		},
	}

	s := chat.NewService(mVec, &MockLLM{}, &MockEmbedder{})
	s.ProcessChat(context.Background(), chatJob(), nil)

	select {
	case answer := <-cached:
		if answer != "mocked llm response" {
			t.Errorf("cached answer = %q", answer)
		}
	case <-time.After(2 * time.Second):
		t.Error("fresh answer never reached the cache")
	}
}

func TestProcessChat_CacheSaveFailureDoesNotTouchResult(t *testing.T) {
	saveAttempted := make(chan struct{}, 1)
	mVec := &MockVectorDB{
		OnSaveToCache: func(ctx context.Context, id string, v []float32, answer string) error {
			saveAttempted <- struct{}{}
			return errors.New("cache unavailable")
		},
	}

	s := chat.NewService(mVec, &MockLLM{}, &MockEmbedder{})
	result := s.ProcessChat(context.Background(), chatJob(), nil)

	select {
	case <-saveAttempted:
	case <-time.After(2 * time.Second):
		t.Fatal("cache save was never attempted")
	}

	if result.Status != jobModel.JobStatusComplete {
		t.Errorf("status = %s, want COMPLETE", result.Status)
	}
	if result.JobPayload.Answer != "mocked llm response" {
		t.Errorf("answer = %q", result.JobPayload.Answer)
	}
	if result.Error.Code != 0 {
		t.Errorf("background cache failure leaked into the job error: %+v", result.Error)
	}
}

func TestIndexLecture_BatchesAndTags(t *testing.T) {
	var gotCollection string
	var gotChunks []studyModel.LectureChunk
	mVec := &MockVectorDB{
		OnUpsertBatch: func(ctx context.Context, name string, chunks []studyModel.LectureChunk, vectors [][]float32) error {
			gotCollection = name
			gotChunks = append(gotChunks, chunks...)
			if len(vectors) != len(chunks) {
				t.Errorf("vector count %d != chunk count %d", len(vectors), len(chunks))
			}
			return nil
		},
	}

	s := chat.NewService(mVec, &MockLLM{}, &MockEmbedder{})

	record := studyModel.StudyRecord{Id: "record-9", UserId: "local", SourceName: "Thermo Week 4"}
	units := []studyModel.Unit{
		{Index: 1, Text: strings.Repeat("entropy and enthalpy. ", 80)},
		{Index: 2, Text: "short slide"},
	}

	if err := s.IndexLecture(context.Background(), record, units); err != nil {
		t.Fatalf("IndexLecture failed: %v", err)
	}

	if gotCollection != config.LectureCollectionName {
		t.Errorf("collection = %q, want %q", gotCollection, config.LectureCollectionName)
	}
	if len(gotChunks) < 2 {
		t.Fatalf("expected the long unit to split, got %d chunks", len(gotChunks))
	}
	for _, c := range gotChunks {
		if c.RecordId != "record-9" {
			t.Errorf("chunk not tagged with its record: %+v", c)
		}
		if c.LectureName != "Thermo Week 4" {
			t.Errorf("chunk missing lecture name: %+v", c)
		}
	}
}

func TestIndexLecture_EmbeddingFailureAborts(t *testing.T) {
	mEmbed := &MockEmbedder{
		OnBatchEmbedding: func(ctx context.Context, chunks []string) ([][]float32, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	upserted := false
	mVec := &MockVectorDB{
		OnUpsertBatch: func(ctx context.Context, name string, chunks []studyModel.LectureChunk, vectors [][]float32) error {
			upserted = true
			return nil
		},
	}

	s := chat.NewService(mVec, &MockLLM{}, mEmbed)
	record := studyModel.StudyRecord{Id: "record-10"}
	err := s.IndexLecture(context.Background(), record, []studyModel.Unit{{Index: 1, Text: "some text"}})
	if err == nil {
		t.Fatal("expected an error when embedding fails")
	}
	if upserted {
		t.Error("upsert ran despite the embedding failure")
	}
}

func TestRemoveLecture(t *testing.T) {
	var gotRecordId string
	mVec := &MockVectorDB{
		OnDeleteLecture: func(ctx context.Context, recordId string) error {
			gotRecordId = recordId
			return nil
		},
	}
	s := chat.NewService(mVec, &MockLLM{}, &MockEmbedder{})
	if err := s.RemoveLecture(context.Background(), "record-11"); err != nil {
		t.Fatal(err)
	}
	if gotRecordId != "record-11" {
		t.Errorf("deleted %q, want record-11", gotRecordId)
	}
}
