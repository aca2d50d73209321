package vectorDB

import (
	"context"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

type DataProcessor interface {
	// Search is scoped to one lecture so answers never mix records.
	Search(ctx context.Context, vectorVal []float32, recordId string) ([]string, []string, error)
	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error

	// CreateCollection lecture indexing call
	CreateCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []studyModel.LectureChunk, vectors [][]float32) error
	DeleteLecture(ctx context.Context, recordId string) error
}
