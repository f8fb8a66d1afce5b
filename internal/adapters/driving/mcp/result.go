package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/logger"
)

// toolBody is the work behind one tool call. Its result must marshal to a
// JSON object.
type toolBody func(ctx context.Context) (any, error)

// invoke runs body under a fresh request ID and turns its outcome into a
// tool result. Failures never escape as protocol errors: they become
// {"error": "..."} results with IsError set.
func invoke(ctx context.Context, tool string, body toolBody) (*mcp.CallToolResult, any, error) {
	requestID := uuid.NewString()
	log := logger.Logger().With().Str("tool", tool).Str("request_id", requestID).Logger()
	ctx = log.WithContext(ctx)

	start := time.Now()
	log.Debug().Msg("tool call started")

	out, err := body(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("tool call failed")
		return errorResult(err), nil, nil
	}

	res, err := jsonResult(out)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("tool result encoding failed")
		return errorResult(err), nil, nil
	}
	log.Debug().Dur("elapsed", elapsed).Msg("tool call finished")
	return res, nil, nil
}

// errorMessage is the message shown to the caller. Provider failures are
// reported as "<Provider> API error: <reason>" without local wrapping.
func errorMessage(err error) string {
	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		return perr.Error()
	}
	return err.Error()
}

func errorResult(err error) *mcp.CallToolResult {
	payload := map[string]string{"error": errorMessage(err)}
	data, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: payload,
		IsError:           true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: json.RawMessage(data),
	}, nil
}
