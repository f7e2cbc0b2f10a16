package engine

import (
	"errors"
	"io"
)

// DetectDuplicateKeys drains src and reports every duplicated object key in
// order of appearance. maxIssues < 0 means unlimited, 0 disables collection,
// > 0 caps the number of reported duplicates. A syntax-level failure ends the
// scan and is reported as a final ViolationSyntax entry.
func DetectDuplicateKeys(src TokenSource, maxIssues int) []Violation {
	var out []Violation
	full := false
	sink := func(v Violation) {
		if maxIssues == 0 || full {
			return
		}
		out = append(out, v)
		if maxIssues > 0 && len(out) >= maxIssues {
			full = true
		}
	}
	wrapped := WrapWithEnforcement(src, EnforceOptions{OnDuplicate: DupCollect, Sink: sink})
	for {
		_, err := wrapped.NextToken()
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return out
		}
		var ve ViolationError
		if errors.As(err, &ve) {
			sink(ve.Violation)
			return out
		}
		sink(Violation{Kind: ViolationSyntax, Path: "/", Token: err.Error()})
		return out
	}
}
