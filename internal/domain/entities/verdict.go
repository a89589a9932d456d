package entities

// ValidationVerdict is the reduced outcome of the external validation tool.
type ValidationVerdict struct {
	Passed bool
	Stage  string // the step that failed: "files", "materialize", "init", "validate" or "" when passed
	Detail string
}

// PassedVerdict is the verdict of a successful validation.
func PassedVerdict() ValidationVerdict {
	return ValidationVerdict{Passed: true}
}

// FailedVerdict records the failing step and a short diagnostic.
func FailedVerdict(stage, detail string) ValidationVerdict {
	return ValidationVerdict{Stage: stage, Detail: detail}
}
