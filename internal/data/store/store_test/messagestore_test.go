package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/lecturelens/lecturelens/internal/data/store"
	"github.com/lecturelens/lecturelens/internal/domain/jobModel"
)

func TestRedisMessageStore_ChatLifecycle(t *testing.T) {
	internalStore, _ := testStore(t)
	messageStore := store.TestMessageStore(internalStore)
	ctx := context.Background()

	chatId := "chat-1"

	t.Run("Unknown Chat Fails Validation", func(t *testing.T) {
		if messageStore.ValidateChatId(ctx, chatId) {
			t.Error("chat validated before initialization")
		}
		if err := messageStore.TrySaveChat(ctx, chatId, jobModel.JobPayload{Question: "q"}); err == nil {
			t.Error("saving to an uninitialized chat must fail")
		}
	})

	t.Run("Init Then Save", func(t *testing.T) {
		if err := messageStore.InitNewChat(ctx, chatId); err != nil {
			t.Fatalf("InitNewChat failed: %v", err)
		}
		if !messageStore.ValidateChatId(ctx, chatId) {
			t.Error("chat not valid after init")
		}

		payload := jobModel.JobPayload{Question: "What is entropy?", Answer: "Disorder."}
		if err := messageStore.TrySaveChat(ctx, chatId, payload); err != nil {
			t.Fatalf("TrySaveChat failed: %v", err)
		}
	})

	t.Run("History Caps At Five Turns", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			payload := jobModel.JobPayload{Question: "question", Answer: "answer"}
			if err := messageStore.TrySaveChat(ctx, chatId, payload); err != nil {
				t.Fatalf("TrySaveChat failed: %v", err)
			}
		}

		err, history := messageStore.GetMessageHistory(ctx, chatId)
		if err != nil {
			t.Fatalf("GetMessageHistory failed: %v", err)
		}
		if len(history) > 5 {
			t.Errorf("history has %d entries, want at most 5", len(history))
		}
		for _, turn := range history {
			if !strings.Contains(turn, "question") && !strings.Contains(turn, "{}") {
				t.Errorf("unexpected history entry: %q", turn)
			}
		}
	})
}

func TestInMemoryMessageStore_HistoryCap(t *testing.T) {
	messageStore := store.InitMessageStore()
	ctx := context.Background()

	chatId := "chat-mem"
	if err := messageStore.InitNewChat(ctx, chatId); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		if err := messageStore.TrySaveChat(ctx, chatId, jobModel.JobPayload{Question: "q"}); err != nil {
			t.Fatal(err)
		}
	}

	err, history := messageStore.GetMessageHistory(ctx, chatId)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) > 5 {
		t.Errorf("history has %d entries, want at most 5", len(history))
	}
}
