package domain

// Outcome is the terminal state of a single manifest entry.
type Outcome int

const (
	Copied Outcome = iota
	SkippedExists
	Simulated
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Copied:
		return "copied"
	case SkippedExists:
		return "skipped-exists"
	case Simulated:
		return "simulated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what happened to one filename from the manifest.
type Result struct {
	Line       int
	Filename   string
	SourcePath string
	TargetPath string
	Outcome    Outcome
	Reason     string
	Err        error
}

func (r Result) IsFailure() bool {
	return r.Outcome == Failed
}
