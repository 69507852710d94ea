package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/llm"
)

// Generate implements llm.Oracle against the generateContent endpoint. One
// request, no retries; rate pacing is the caller's job.
func (c *Client) Generate(ctx context.Context, parts ...string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	textLen := 0
	reqParts := make([]map[string]any, 0, len(parts))
	for _, p := range parts {
		textLen += len(p)
		reqParts = append(reqParts, map[string]any{"text": p})
	}

	c.log.Info("llm.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"parts", len(parts),
		"text_len", textLen,
	)

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": reqParts},
		},
		"generationConfig": map[string]any{
			"temperature": c.cfg.Temperature,
		},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.generate.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("ORACLE_UNAVAILABLE",
			fmt.Sprintf("gemini request failed: %v", err), common.ErrOracleUnavailable)
	}

	var gr struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gr); err != nil {
		c.log.Error("llm.generate.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("ORACLE_UNAVAILABLE",
			fmt.Sprintf("decode gemini response: %v", err), common.ErrOracleUnavailable)
	}
	if len(gr.Candidates) == 0 {
		// A well-formed response with no candidates is a non-answer, not a
		// transport failure; let the reconciler degrade it.
		c.log.Warn("llm.generate.no_candidates", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", nil
	}

	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	out := strings.TrimSpace(b.String())

	c.log.Info("llm.generate.ok",
		"req_id", rid,
		"response_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
