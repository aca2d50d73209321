package chat_test

import (
	"context"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSearch           func(ctx context.Context, vectorVal []float32, recordId string) ([]string, []string, error)
	OnGetCachedAnswer  func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache      func(ctx context.Context, id string, vector []float32, answer string) error
	OnCreateCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []studyModel.LectureChunk, vectors [][]float32) error
	OnDeleteLecture    func(ctx context.Context, recordId string) error
}

func (m *MockVectorDB) Search(ctx context.Context, v []float32, recordId string) ([]string, []string, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v, recordId)
	}
	return []string{"default context"}, []string{"default source"}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []studyModel.LectureChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) DeleteLecture(ctx context.Context, recordId string) error {
	if m.OnDeleteLecture != nil {
		return m.OnDeleteLecture(ctx, recordId)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements summarize.Provider
type MockLLM struct {
	OnGenerateSummary func(ctx context.Context, text string) (studyModel.SummaryPacket, error)
	OnAnswerQuestion  func(ctx context.Context, question string, matches []string, history []string) (string, error)
}

func (m *MockLLM) GenerateSummary(ctx context.Context, text string) (studyModel.SummaryPacket, error) {
	if m.OnGenerateSummary != nil {
		return m.OnGenerateSummary(ctx, text)
	}
	return studyModel.SummaryPacket{}, nil
}

func (m *MockLLM) AnswerQuestion(ctx context.Context, q string, matches []string, hist []string) (string, error) {
	if m.OnAnswerQuestion != nil {
		return m.OnAnswerQuestion(ctx, q, matches, hist)
	}
	return "mocked llm response", nil
}
