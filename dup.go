package forma

import (
	"io"

	eng "github.com/soracane/forma/internal/engine"
)

// DetectJSONDuplicateKeysBytes scans JSON bytes and reports every duplicated
// object key as a ParseError, in order of appearance. limit <= 0 means
// unlimited, > 0 caps the report. Validation itself stays single-error; this
// helper exists for linting inputs before they reach a schema.
func DetectJSONDuplicateKeysBytes(data []byte, limit int) []ParseError {
	return violationsToParseErrors(eng.DetectDuplicateKeys(EngineTokenSource(JSONBytes(data)), normalizeDupLimit(limit)))
}

// DetectJSONDuplicateKeysReader scans JSON from an io.Reader. See
// DetectJSONDuplicateKeysBytes.
func DetectJSONDuplicateKeysReader(r io.Reader, limit int) []ParseError {
	return violationsToParseErrors(eng.DetectDuplicateKeys(EngineTokenSource(JSONReader(r)), normalizeDupLimit(limit)))
}

func normalizeDupLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func violationsToParseErrors(vs []eng.Violation) []ParseError {
	if len(vs) == 0 {
		return nil
	}
	out := make([]ParseError, len(vs))
	for i, v := range vs {
		out[i] = violationToParseError(v)
	}
	return out
}
