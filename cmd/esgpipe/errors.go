package main

import (
	"errors"

	"github.com/esgpipe/esgpipe/internal/common"
)

// userMessage maps the error taxonomy onto the four distinct human-readable
// failure classes. Anything unrecognized passes through verbatim.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingCredential):
		return "no API credential configured; set GEMINI_API_KEY before running"
	case errors.Is(err, common.ErrBadOracleJSON):
		return "the extraction service answered, but no valid JSON could be recovered: " + err.Error()
	case errors.Is(err, common.ErrInsufficientInput):
		return "not enough documents to compare: " + err.Error()
	case errors.Is(err, common.ErrOracleUnavailable):
		return "could not reach the extraction service: " + err.Error()
	default:
		return err.Error()
	}
}
