package domain

// Summary aggregates the outcomes of one run.
type Summary struct {
	Copied        int
	SkippedExists int
	Simulated     int
	Failed        int
	// Blank counts manifest rows whose column value was empty or whitespace.
	Blank int
}

func (s *Summary) Add(r Result) {
	switch r.Outcome {
	case Copied:
		s.Copied++
	case SkippedExists:
		s.SkippedExists++
	case Simulated:
		s.Simulated++
	case Failed:
		s.Failed++
	}
}

// Processed is the number of entries that produced a Result.
func (s Summary) Processed() int {
	return s.Copied + s.SkippedExists + s.Simulated + s.Failed
}

func (s Summary) HasFailures() bool {
	return s.Failed > 0
}
