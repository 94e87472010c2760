package scrobbler

// Result is the outcome of one submission attempt against one service.
// Failures are data, not errors: a submission call always completes and
// the caller interprets the collected outcomes.
type Result int

const (
	// ResultOK means the service accepted the submission.
	ResultOK Result = iota
	// ResultIgnored means the service intentionally skipped the
	// submission (e.g. track below the service minimum). Not an error.
	ResultIgnored
	// ResultErrorAuth means the service rejected our credentials.
	ResultErrorAuth
	// ResultErrorOther covers every remaining failure.
	ResultErrorOther
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultIgnored:
		return "ignored"
	case ResultErrorAuth:
		return "error-auth"
	case ResultErrorOther:
		return "error-other"
	default:
		return "unknown"
	}
}

// AnyResult reports whether at least one collected outcome equals want.
func AnyResult(results []Result, want Result) bool {
	for _, r := range results {
		if r == want {
			return true
		}
	}
	return false
}

// AllResults reports whether every collected outcome equals want.
// An empty collection means no service was called, so it returns false.
func AllResults(results []Result, want Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r != want {
			return false
		}
	}
	return true
}
