package messages

import (
	"github.com/cp-helper/judge/pkg/solution"
)

// ProgressMessage is published after every judge session transition.
type ProgressMessage struct {
	Type      string             `json:"type"`
	SessionID string             `json:"session_id"`
	Stage     string             `json:"stage"`
	Verdicts  []solution.Verdict `json:"verdicts,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// ProblemMessage is the problem definition posted by the browser extension
// (competitive-companion format). Unknown fields are ignored.
type ProblemMessage struct {
	Name        string              `json:"name"`
	Group       string              `json:"group"`
	URL         string              `json:"url"`
	MemoryLimit int                 `json:"memoryLimit"`
	TimeLimit   int                 `json:"timeLimit"`
	Tests       []solution.TestCase `json:"tests"`
}

// SolutionMessage is handed to the browser extension for submission.
type SolutionMessage struct {
	Empty       bool   `json:"empty"`
	ProblemName string `json:"problemName"`
	URL         string `json:"url"`
	SourceCode  string `json:"sourceCode"`
	FileName    string `json:"fileName"`
	LanguageID  int    `json:"languageId"`
}

// EmptyMessage is returned by a poll when the mailbox holds nothing.
type EmptyMessage struct {
	Empty bool `json:"empty"`
}
