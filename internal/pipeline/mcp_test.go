package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "lecturelens-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) tool error: %v", name, result.Content)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

func TestMCP_Classify(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "lecturelens_classify", map[string]any{
		"file_name": "deck.pptx",
	})

	var resp struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Kind != "pptx" {
		t.Errorf("kind = %q, want pptx", resp.Kind)
	}
}

func TestMCP_Classify_Unsupported(t *testing.T) {
	session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "lecturelens_classify",
		Arguments: map[string]any{"file_name": "archive.tar.gz"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for an unsupported type")
	}
}

func TestMCP_Extract_PlainText(t *testing.T) {
	session := mcpSession(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	content := "Entropy measures disorder in a thermodynamic system."
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	text := mcpCallTool(t, session, "lecturelens_extract", map[string]any{"path": path})

	var resp struct {
		FullText string `json:"full_text"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(resp.FullText, "Entropy") {
		t.Errorf("full text missing content: %q", resp.FullText)
	}
}

func TestMCP_Extract_MediaNeedsRemotePipeline(t *testing.T) {
	session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "lecturelens_extract",
		Arguments: map[string]any{"path": "/tmp/recording.mp3"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for a media file")
	}
}

func TestMCP_Formats(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "lecturelens_formats", map[string]any{})

	var resp struct {
		Extensions []string `json:"extensions"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	seen := make(map[string]bool)
	for _, e := range resp.Extensions {
		seen[e] = true
	}
	for _, want := range []string{".pdf", ".pptx", ".mp3", ".png", ".txt"} {
		if !seen[want] {
			t.Errorf("missing extension %q", want)
		}
	}
}
