package googleEmbedding

import (
	"testing"

	"google.golang.org/genai"
)

func TestFirstEmbedding(t *testing.T) {
	t.Run("Nil Response Is An Error", func(t *testing.T) {
		if _, err := firstEmbedding(nil); err == nil {
			t.Error("expected an error for a nil response")
		}
	})

	t.Run("Empty Embeddings Is An Error", func(t *testing.T) {
		if _, err := firstEmbedding(&genai.EmbedContentResponse{}); err == nil {
			t.Error("expected an error for a response with no vectors")
		}
	})

	t.Run("First Vector Is Returned", func(t *testing.T) {
		res := &genai.EmbedContentResponse{
			Embeddings: []*genai.ContentEmbedding{
				{Values: []float32{0.1, 0.2, 0.3}},
				{Values: []float32{0.9}},
			},
		}
		vector, err := firstEmbedding(res)
		if err != nil {
			t.Fatalf("firstEmbedding failed: %v", err)
		}
		if len(vector) != 3 || vector[0] != 0.1 {
			t.Errorf("vector = %v", vector)
		}
	})
}
