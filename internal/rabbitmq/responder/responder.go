package responder

import (
	"encoding/json"
	"sync"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/pipeline"
	"github.com/cp-helper/judge/internal/rabbitmq/channel"
	"github.com/cp-helper/judge/pkg/constants"
	"github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/messages"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Responder publishes judge progress to a queue. Publishing happens on a
// single background goroutine so events keep their order and a slow broker
// never stalls a session.
type Responder interface {
	pipeline.Notifier
	PublishSessionError(sessionID string, err error)
	// Close publishes everything already queued and stops the publisher.
	Close() error
}

type responder struct {
	logger    *zap.SugaredLogger
	channel   channel.Channel
	queueName string

	mu       sync.Mutex
	closed   bool
	publishC chan messages.ProgressMessage
	done     chan struct{}
}

func NewResponder(ch channel.Channel, queueName string, publishChanSize int) Responder {
	if publishChanSize <= 0 {
		publishChanSize = constants.DefaultPublishChanSize
	}
	r := &responder{
		logger:    logger.NewNamedLogger("responder"),
		channel:   ch,
		queueName: queueName,
		publishC:  make(chan messages.ProgressMessage, publishChanSize),
		done:      make(chan struct{}),
	}
	go r.publishLoop()
	return r
}

func (r *responder) Notify(event pipeline.Event) {
	messageType := constants.QueueMessageTypeProgress
	if event.Stage == constants.StageFinished || event.Stage == constants.StageCompileError {
		messageType = constants.QueueMessageTypeResult
	}
	r.enqueue(messages.ProgressMessage{
		Type:      messageType,
		SessionID: event.SessionID,
		Stage:     event.Stage,
		Verdicts:  event.Verdicts,
	})
}

func (r *responder) PublishSessionError(sessionID string, err error) {
	r.enqueue(messages.ProgressMessage{
		Type:      constants.QueueMessageTypeResult,
		SessionID: sessionID,
		Stage:     constants.StageFailed,
		Error:     err.Error(),
	})
}

func (r *responder) enqueue(msg messages.ProgressMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		r.logger.Warnf("Dropping %s message, responder is closed [SessionID: %s]", msg.Stage, msg.SessionID)
		return
	}
	select {
	case r.publishC <- msg:
	default:
		r.logger.Warnf("Publish buffer full, dropping %s message [SessionID: %s]", msg.Stage, msg.SessionID)
	}
}

func (r *responder) publishLoop() {
	defer close(r.done)
	for msg := range r.publishC {
		if err := r.publish(msg); err != nil {
			r.logger.Errorf("Failed to publish %s message: %s [SessionID: %s]", msg.Stage, err, msg.SessionID)
		}
	}
}

func (r *responder) publish(msg messages.ProgressMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return r.channel.Publish("", r.queueName, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: msg.SessionID,
		Body:          body,
	})
}

func (r *responder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return errors.ErrResponderClosed
	}
	r.closed = true
	close(r.publishC)
	r.mu.Unlock()

	<-r.done
	return nil
}
