package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/merlin-analytics/chatbot-backend/internal/models"
	"github.com/merlin-analytics/chatbot-backend/internal/pipeline"
)

// AskInput is the MCP tool input schema (matches HTTP API field names).
type AskInput struct {
	Question string `json:"question" jsonschema:"question about the company"`
}

// NewAskHandler returns a tool handler that answers questions through the
// given pipeline. Pass the returned function to mcp.AddTool.
func NewAskHandler(pipe *pipeline.Pipeline) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, models.Answer, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, models.Answer, error) {
		return AskQuestion(ctx, pipe, req, input)
	}
}

// AskQuestion runs the retrieval pipeline and returns the answer.
func AskQuestion(
	ctx context.Context,
	pipe *pipeline.Pipeline,
	req *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, models.Answer, error) {
	answer, err := pipe.AnswerQuestion(ctx, input.Question)
	if err != nil {
		return nil, models.Answer{}, err
	}

	return nil, answer, nil
}
