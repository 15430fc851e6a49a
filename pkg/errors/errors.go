package errors

import "errors"

// Configuration errors. They abort a session before any process is spawned.
var (
	ErrInvalidReferencePattern = errors.New("invalid library reference pattern")
	ErrTemplate                = errors.New("template rendering failed")
	ErrUnknownLanguage         = errors.New("unknown language")
	ErrEmptyRunCommand         = errors.New("run command is empty")
	ErrInvalidSourceFile       = errors.New("invalid source file name")
)

// Bundling errors.
var (
	ErrCycleDetected = errors.New("cycle detected in dependency graph")
)

// Execution errors.
var (
	ErrCompilationFailed = errors.New("compilation failed")
	ErrLaunchFailed      = errors.New("process failed to launch")
	ErrProcessIO         = errors.New("process i/o failure")
	ErrSessionBusy       = errors.New("a judge session is already running")
)

// Relay errors.
var (
	ErrMailboxEmpty   = errors.New("mailbox is empty")
	ErrRelayRequest   = errors.New("relay request failed")
	ErrProblemMissing = errors.New("no problem loaded")
)

// Progress publishing errors.
var (
	ErrResponderClosed = errors.New("responder is closed")
)
