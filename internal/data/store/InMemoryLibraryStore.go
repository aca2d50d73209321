package store

import (
	"context"
	"sort"
	"sync"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

type InMemoryLibraryStore struct {
	recordLock *sync.RWMutex
	recordMap  map[string]studyModel.StudyRecord
}

func InitInMemoryLibraryStore() *InMemoryLibraryStore {
	return &InMemoryLibraryStore{
		recordLock: new(sync.RWMutex),
		recordMap:  make(map[string]studyModel.StudyRecord),
	}
}

func (store *InMemoryLibraryStore) SaveRecord(ctx context.Context, record studyModel.StudyRecord) error {
	store.recordLock.Lock()
	defer store.recordLock.Unlock()
	store.recordMap[record.Id] = record
	return nil
}

func (store *InMemoryLibraryStore) GetRecord(ctx context.Context, recordId string) (studyModel.StudyRecord, bool) {
	store.recordLock.RLock()
	defer store.recordLock.RUnlock()
	record, found := store.recordMap[recordId]
	return record, found
}

func (store *InMemoryLibraryStore) ListRecords(ctx context.Context, userId string) ([]studyModel.StudyRecord, error) {
	store.recordLock.RLock()
	defer store.recordLock.RUnlock()

	var records []studyModel.StudyRecord
	for _, record := range store.recordMap {
		if record.UserId == userId {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (store *InMemoryLibraryStore) DeleteRecord(ctx context.Context, recordId string) error {
	store.recordLock.Lock()
	defer store.recordLock.Unlock()
	delete(store.recordMap, recordId)
	return nil
}
