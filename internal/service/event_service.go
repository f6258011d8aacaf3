package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Ledger event types emitted on the fan-out channels.
const (
	EventCourseCreated     = "course.created"
	EventEnrollmentSettled = "enrollment.settled"
	EventEarningsWithdrawn = "earnings.withdrawn"
)

// LedgerEvent describes a committed state transition. Withdrawal events stand
// in for the host ledger's fund-transfer primitive: downstream consumers move
// the actual currency.
type LedgerEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Account   string    `json:"account"`
	CourseID  uint64    `json:"course_id,omitempty"`
	Amount    uint64    `json:"amount,omitempty"`
	Sequence  uint64    `json:"sequence"`
	EmittedAt time.Time `json:"emitted_at"`
}

// LedgerEventPublisher broadcasts ledger events to interested consumers.
type LedgerEventPublisher interface {
	Publish(ctx context.Context, event LedgerEvent)
}

type ledgerEventPublisher struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	nodeID       string
}

// NewLedgerEventPublisher constructs a publisher over redis pub/sub and NATS.
// Either client may be nil; publishing then degrades to the remaining
// channel, or to a no-op.
func NewLedgerEventPublisher(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) LedgerEventPublisher {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":events"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".events"
	}

	return &ledgerEventPublisher{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "ledger_event_publisher").Logger(),
		nodeID:       uuid.NewString(),
	}
}

// Publish broadcasts the event on a best-effort basis. Event delivery never
// fails the operation that produced it; broker errors are logged and dropped.
func (p *ledgerEventPublisher) Publish(ctx context.Context, event LedgerEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Str("type", event.Type).Msg("failed to encode ledger event")
		return
	}

	if p.redis != nil && p.redisChannel != "" {
		if err := p.redis.Publish(ctx, p.redisChannel, payload).Err(); err != nil {
			p.logger.Warn().Err(err).Str("type", event.Type).Msg("failed to publish ledger event to redis")
		}
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			p.logger.Warn().Err(err).Str("type", event.Type).Msg("failed to publish ledger event to nats")
		}
	}
}
