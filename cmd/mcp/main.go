// Command mcp exposes the paper critique pipeline as an MCP tool over stdio,
// so agent frontends can analyze local papers without going through the HTTP
// API.
package main

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer/gemini"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer/openai"
	"github.com/sharvik/CritiqueAPI/internal/critique/extract"
	"github.com/sharvik/CritiqueAPI/internal/critique/pipeline"
	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

type critiqueArgs struct {
	Path      string `json:"path" jsonschema:"path to the paper on disk (pdf, docx or txt)"`
	ChunkSize int    `json:"chunk_size,omitempty" jsonschema:"chunk size override, zero for default"`
	Overlap   int    `json:"overlap,omitempty" jsonschema:"chunk overlap override, zero for default"`
}

func main() {
	logger_i.Init()
	logger := logger_i.NewLogger("mcp")

	ctx := context.Background()

	var generator analyzer.TextGenerator
	if config.LLMProvider == "openai" {
		generator = openai.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey)
	} else {
		generator = gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey)
	}
	if generator == nil {
		logger.Error("Model provider failed to initialize", "provider", config.LLMProvider)
		os.Exit(1)
	}

	extractor := extract.NewFileExtractor()
	chunkAnalyzer := analyzer.NewModelAnalyzer(generator)

	server := mcp.NewServer(&mcp.Implementation{Name: "critique-api", Version: "1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "critique_paper",
		Description: "Analyze a research paper and return a structured peer-review style critique",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args critiqueArgs) (*mcp.CallToolResult, paperModel.AnalysisResult, error) {
		text, err := extractor.ExtractText(args.Path)
		if err != nil {
			logger.Error("Extraction failed", "path", args.Path, "error", err)
			return nil, pipeline.ErrorResult(pipeline.ErrInvalidInput), nil
		}

		p := pipeline.New(chunkAnalyzer, args.ChunkSize, args.Overlap)
		result, status := p.Run(ctx, text)
		if status.Kind != pipeline.ErrNone {
			logger.Error("Analysis ended in error", "kind", status.Kind, "path", args.Path)
		}
		return nil, result, nil
	})

	logger.Info("MCP server listening on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}
