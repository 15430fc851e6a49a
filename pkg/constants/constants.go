package constants

import "encoding/json"

// Progress message types.
const (
	QueueMessageTypeProgress = "progress"
	QueueMessageTypeResult   = "result"
)

// Session stages reported to progress subscribers.
const (
	StageCompiling     = "compiling"
	StageCompileError  = "compile_error"
	StageRunning       = "running"
	StageTestCompleted = "test_completed"
	StageFinished      = "finished"
	StageFailed        = "failed"
)

// Messages attached to runtime verdicts.
const (
	CompileMessageTimeout = "compilation timed out after %s"
	LaunchMessageFailed   = "failed to launch %q: %s"
)

// SessionStatus reports whether a judge session is currently running.
type SessionStatus int

const (
	SessionStatusIdle SessionStatus = iota
	SessionStatusBusy
)

func (s SessionStatus) String() string {
	switch s {
	case SessionStatusIdle:
		return "idle"
	case SessionStatusBusy:
		return "busy"
	default:
		return "unknown"
	}
}

func (s SessionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Exit codes.
const (
	ExitCodeSuccess = 0
)

// Configuration constants.
const (
	DefaultWorkspace         = "."
	DefaultSettingsFileName  = "judge.yaml"
	DefaultProblemFileName   = ".problem.yaml"
	DefaultCompileTimeoutSec = 30
	DefaultRelayHost         = "localhost"
	DefaultRelayPort         = "27121"
	DefaultProgressQueueName = "judge_progress"
	DefaultPublishChanSize   = 32
	DefaultRelayTimeoutSec   = 5
	DefaultLogDir            = "logs"
	DefaultLogFileName       = "judge.log"
	DefaultLanguage          = "cpp"
	DefaultTimeLimitMs       = 2000
	WatchDebounceMs          = 100
)

// Process handling.
const (
	// Pipes held open by grandchildren are abandoned after this delay once the child exits.
	ProcessWaitDelaySec = 1
	WorkDirPrefix       = "judge-"
)

// Relay endpoints.
const (
	RelayProblemPath   = "/problem"
	RelaySubmitPath    = "/submit"
	RelayGetSubmitPath = "/getSubmit"
	RelayStatusPath    = "/status"
)
