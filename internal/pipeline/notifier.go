package pipeline

import (
	"github.com/cp-helper/judge/pkg/solution"
	"go.uber.org/zap"
)

// Event is a progress snapshot. Verdicts is a copy owned by the receiver.
type Event struct {
	SessionID string
	Stage     string
	Verdicts  []solution.Verdict
}

// Notifier receives progress events in the order the session produces them.
// Notify must not block for long; the session waits for it.
type Notifier interface {
	Notify(event Event)
}

type NotifierFunc func(event Event)

func (f NotifierFunc) Notify(event Event) {
	f(event)
}

// MultiNotifier forwards each event to every notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(event Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(event)
		}
	}
}

type logNotifier struct {
	logger *zap.SugaredLogger
}

func NewLogNotifier(logger *zap.SugaredLogger) Notifier {
	return &logNotifier{logger: logger}
}

func (l *logNotifier) Notify(event Event) {
	counts := make(map[string]int)
	for _, v := range event.Verdicts {
		counts[v.Status]++
	}
	l.logger.Infof("Stage %s: %v [SessionID: %s]", event.Stage, counts, event.SessionID)
}
