package tracking

import (
	"context"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/types"
)

const (
	EventSession uint16 = iota
	EventFilter
	EventDetailView
)

// RabbitTracking publishes visitor events on the tracking topic. Events are
// queued and sent in batches so request handlers never wait on the broker.
type RabbitTracking struct {
	connection *amqp.Connection
	logger     *zap.Logger
	publish    func([]any) error
	queue      *common.QueueHandler[any]
}

func NewRabbitTracking(url string, logger *zap.Logger) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, messaging.Prefix, messaging.Tracking); err != nil {
		conn.Close()
		return nil, err
	}
	t := newTracking(logger, func(events []any) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return messaging.SendChange(ctx, conn, messaging.Prefix, messaging.Tracking, events)
	})
	t.connection = conn
	return t, nil
}

func newTracking(logger *zap.Logger, publish func([]any) error) *RabbitTracking {
	t := &RabbitTracking{
		logger:  logger,
		publish: publish,
	}
	t.queue = common.NewQueueHandler(t.flush, 50, time.Second)
	return t
}

func (t *RabbitTracking) flush(events []any) {
	if err := t.publish(events); err != nil {
		t.logger.Warn("error sending tracking events", zap.Int("events", len(events)), zap.Error(err))
	}
}

// Close sends pending events and closes the broker connection.
func (t *RabbitTracking) Close() error {
	t.queue.Close()
	if t.connection != nil {
		return t.connection.Close()
	}
	return nil
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

func newBase(event uint16, sessionId string) BaseEvent {
	return BaseEvent{Event: event, SessionId: sessionId, Timestamp: time.Now().Unix()}
}

type Session struct {
	BaseEvent
	UserAgent string `json:"user_agent,omitempty"`
	Ip        string `json:"ip,omitempty"`
	Language  string `json:"language,omitempty"`
}

func clientIp(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	t.queue.Add(Session{
		BaseEvent: newBase(EventSession, sessionId),
		Language:  r.Header.Get("Accept-Language"),
		UserAgent: r.UserAgent(),
		Ip:        clientIp(r),
	})
}

type FilterEvent struct {
	BaseEvent
	Filters types.Filters `json:"filters"`
	Found   int           `json:"found"`
	Referer string        `json:"referer,omitempty"`
}

func (t *RabbitTracking) TrackFilter(sessionId string, filters *types.Filters, found int, r *http.Request) {
	t.queue.Add(FilterEvent{
		BaseEvent: newBase(EventFilter, sessionId),
		Filters:   filters.Clone(),
		Found:     found,
		Referer:   r.Header.Get("Referer"),
	})
}

type DetailViewEvent struct {
	BaseEvent
	GroupId string `json:"group"`
	Referer string `json:"referer,omitempty"`
}

func (t *RabbitTracking) TrackDetailView(sessionId string, groupId string, r *http.Request) {
	t.queue.Add(DetailViewEvent{
		BaseEvent: newBase(EventDetailView, sessionId),
		GroupId:   groupId,
		Referer:   r.Header.Get("Referer"),
	})
}
