package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/lecturelens/lecturelens/internal/adapter/utils"
	"github.com/lecturelens/lecturelens/internal/chat/embedding"
	"github.com/lecturelens/lecturelens/internal/chat/vectorDB"
	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/jobModel"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/internal/metrics"
	"github.com/lecturelens/lecturelens/internal/summarize"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

// Service is the contract the worker calls for lecture chat. The worker
// never sees the vector store, embedder or LLM behind it.
type Service interface {
	ProcessChat(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IndexLecture(ctx context.Context, record studyModel.StudyRecord, units []studyModel.Unit) error
	RemoveLecture(ctx context.Context, recordId string) error
}

type service struct {
	vectorDB vectorDB.DataProcessor
	llm      summarize.Provider
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

func NewService(vector vectorDB.DataProcessor, llm summarize.Provider, em embedding.Embedder) Service {
	return &service{
		vectorDB: vector,
		llm:      llm,
		embedder: em,
		logger:   logger_i.NewLogger("Chat Service :"),
	}
}

// ProcessChat answers one question about one lecture: embed the question,
// check the semantic cache, search the lecture's chunks, then ask the LLM.
// The fresh answer is cached in the background.
func (s *service) ProcessChat(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.ChatInit

	queryVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, queryVector)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	matches, err := s.executeRetrievalStep(processContext, inMethodLogger, &jobt, queryVector)
	if err != nil {
		return s.jobError(jobt, err, "VECTOR_DB_FAILURE", true)
	}

	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, matches, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	//Background Cache Save
	go func() {
		if err := s.vectorDB.SaveToCache(ctx, utils.GetNewUUID(), queryVector, answer); err != nil {
			s.logger.Error("Failed to save to cache")
		}
	}()

	return returnOutput(jobt, answer)
}

// IndexLecture chunks a finished record's source text, embeds the chunks in
// batches and upserts them, making the lecture chattable.
func (s *service) IndexLecture(ctx context.Context, record studyModel.StudyRecord, units []studyModel.Unit) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("lecture_indexing", time.Since(start)) }()

	if err := s.vectorDB.CreateCollection(ctx, config.LectureCollectionName); err != nil {
		return fmt.Errorf("creating collection failed: %w", err)
	}

	chunks := PrepareChunks(record, units)
	s.logger.Debug("Indexing lecture", "record", record.Id, "chunks", len(chunks))

	batchSize := 100
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Text)
		}

		vectors, err := s.embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err := s.vectorDB.UpsertBatch(ctx, config.LectureCollectionName, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}

	return nil
}

func (s *service) RemoveLecture(ctx context.Context, recordId string) error {
	return s.vectorDB.DeleteLecture(ctx, recordId)
}
