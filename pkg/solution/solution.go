package solution

// Status is the state of a single test case verdict. The numeric values are
// stable and shared with the UI that renders verdict tables.
type Status int

const (
	// Means the verdict was created but nothing ran yet.
	Pending Status = 0
	// Means the bundled source is being compiled.
	Compiling Status = 1
	// Means the test is queued for, or in, execution.
	Running Status = 2
	// Means the output matched the expected answer.
	Accepted Status = 3
	// Means the output differs from the expected answer.
	WrongAnswer Status = 4
	// Means the watchdog killed the process.
	TimeLimitExceeded Status = 5
	// Means the toolchain rejected the bundle. Applies to every test of the session.
	CompilationError Status = 6
	// Means the process could not be started at all.
	RuntimeErrorLaunchFailure Status = 7
	// Means the process exited with a non-zero code.
	RuntimeErrorNonZeroExit Status = 11
)

var statusLabels = map[Status]string{
	Pending:                   "Pending",
	Compiling:                 "Compiling",
	Running:                   "Running",
	Accepted:                  "Accepted",
	WrongAnswer:               "Wrong Answer",
	TimeLimitExceeded:         "Time Limit Exceeded",
	CompilationError:          "Compilation Error",
	RuntimeErrorLaunchFailure: "Runtime Error",
	RuntimeErrorNonZeroExit:   "Runtime Error (NZEC)",
}

func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition can happen from s.
func (s Status) IsTerminal() bool {
	switch s {
	case Pending, Compiling, Running:
		return false
	}
	_, known := statusLabels[s]
	return known
}

type TestCase struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"` // expected output
}

type Verdict struct {
	Input    string  `json:"input"`
	Output   string  `json:"output"` // what the program printed, or the diagnostic shown instead
	Answer   string  `json:"answer"` // expected output
	StatusID Status  `json:"status_id"`
	Status   string  `json:"status"`
	TimeMs   float64 `json:"time"`
}

func (v *Verdict) SetStatus(status Status) {
	v.StatusID = status
	v.Status = status.String()
}

// NewPendingVerdicts creates one pending verdict per test, in order.
func NewPendingVerdicts(tests []TestCase) []Verdict {
	verdicts := make([]Verdict, len(tests))
	for i, tc := range tests {
		verdicts[i] = Verdict{Input: tc.Input, Answer: tc.Output}
		verdicts[i].SetStatus(Pending)
	}
	return verdicts
}

// Snapshot returns a copy that later mutations of verdicts do not affect.
func Snapshot(verdicts []Verdict) []Verdict {
	if verdicts == nil {
		return nil
	}
	out := make([]Verdict, len(verdicts))
	copy(out, verdicts)
	return out
}

// AllAccepted reports whether every verdict is Accepted. An empty list is not accepted.
func AllAccepted(verdicts []Verdict) bool {
	if len(verdicts) == 0 {
		return false
	}
	for _, v := range verdicts {
		if v.StatusID != Accepted {
			return false
		}
	}
	return true
}
