package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/data/redisStore"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
	"github.com/lecturelens/lecturelens/pkg/logger_i"
)

// RedisLibraryStore keeps one JSON blob per record plus a per-user list of
// record ids acting as the library index.
type RedisLibraryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisLibraryStore(ctx context.Context) *RedisLibraryStore {
	return &RedisLibraryStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisLibraryStore),
		logger: logger_i.NewLogger("LibraryStore"),
	}
}

func userIndexKey(userId string) string {
	return "library:" + userId
}

func (s *RedisLibraryStore) SaveRecord(ctx context.Context, record studyModel.StudyRecord) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", record.Id)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, record.Id, data, config.RedisLibraryStoreTTL); err != nil {
		return err
	}
	if err := s.store.ListPush(ctx, userIndexKey(record.UserId), record.Id); err != nil {
		return err
	}
	log.Debug("Saved record to Redis")
	return nil
}

func (s *RedisLibraryStore) GetRecord(ctx context.Context, recordId string) (studyModel.StudyRecord, bool) {
	var record studyModel.StudyRecord

	val, err := s.store.Get(ctx, recordId)
	if s.store.IsNil(err) || err != nil {
		return record, false
	}
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return record, false
	}
	return record, true
}

func (s *RedisLibraryStore) ListRecords(ctx context.Context, userId string) ([]studyModel.StudyRecord, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "user Id", userId)

	ids, err := s.store.ListGetAll(ctx, userIndexKey(userId))
	if err != nil {
		log.Error("Error reading library index", "error", err)
		return nil, err
	}

	records := make([]studyModel.StudyRecord, 0, len(ids))
	for _, id := range ids {
		if record, found := s.GetRecord(ctx, id); found {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *RedisLibraryStore) DeleteRecord(ctx context.Context, recordId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", recordId)

	// The record carries its owner, needed to clean the index entry.
	if record, found := s.GetRecord(ctx, recordId); found {
		if err := s.store.ListRemove(ctx, userIndexKey(record.UserId), recordId); err != nil {
			log.Error("Error removing index entry", "error", err)
		}
	}
	return s.store.Del(ctx, recordId)
}

func TestLibraryStore(store *redisStore.Store) *RedisLibraryStore {
	return &RedisLibraryStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
