package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

// RegisterMCP exposes the local half of the pipeline as MCP tools:
// classification and text extraction. Nothing registered here performs a
// remote call, media and vision need API keys and stay behind the HTTP API.
func RegisterMCP(srv *mcp.Server) {
	registerClassifyTool(srv)
	registerExtractTool(srv)
	registerFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func toolError(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Errorf("marshal: %w", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// --- classify ---

type classifyReq struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
}

func registerClassifyTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lecturelens_classify",
		Description: "Classify a lecture file into its pipeline kind (pdf, pptx, text, image, audio, video) from its name and MIME type.",
		InputSchema: inputSchema(map[string]any{
			"file_name": map[string]any{"type": "string", "description": "File name including extension"},
			"mime_type": map[string]any{"type": "string", "description": "Declared MIME type, may be empty"},
		}, []string{"file_name"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r classifyReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		kind, err := Classify(r.FileName, r.MimeType)
		if err != nil {
			return toolError(err), nil
		}
		return toolJSON(map[string]any{"kind": string(kind)})
	})
}

// --- extract ---

type extractReq struct {
	Path string `json:"path"`
}

func registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lecturelens_extract",
		Description: "Extract the text of a local lecture file (pdf, pptx, txt, docx, rtf, odt) into marked units.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Local file path to extract"},
		}, []string{"path"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r extractReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		result, err := extractLocal(r.Path)
		if err != nil {
			return toolError(err), nil
		}
		return toolJSON(result)
	})
}

func extractLocal(path string) (studyModel.ExtractionResult, error) {
	kind, err := Classify(path, "")
	if err != nil {
		return studyModel.ExtractionResult{}, err
	}

	switch kind {
	case studyModel.KindPDF:
		extraction, err := ExtractPDF(path)
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return extraction.Canonical(), nil
	case studyModel.KindPPTX:
		extraction, err := ExtractPPTX(path)
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return extraction.Canonical(), nil
	case studyModel.KindText:
		extraction, err := ExtractPlainText(path)
		if err != nil {
			return studyModel.ExtractionResult{}, err
		}
		return extraction.Canonical(), nil
	default:
		return studyModel.ExtractionResult{}, fmt.Errorf("%w: %q needs the remote pipeline", studyModel.ErrUnsupportedType, kind)
	}
}

// --- formats ---

func registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lecturelens_formats",
		Description: "List every file extension the classifier accepts.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		exts := SupportedExtensions()
		sort.Strings(exts)
		return toolJSON(map[string]any{"extensions": exts})
	})
}
