package llm

import "context"

// Oracle is the interface the pipeline depends on: one text-in, text-out
// round trip against the external extraction service. Implementations must
// send the payload whole (no internal re-chunking) and must not retry;
// pacing and retry policy belong to the caller.
type Oracle interface {
	// Generate submits the prompt parts as one request and returns the raw
	// response text. The text is expected, not guaranteed, to contain JSON;
	// semantically empty or garbage output is not an error.
	Generate(ctx context.Context, parts ...string) (string, error)
}
