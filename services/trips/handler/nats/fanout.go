package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
)

// Subscriber is satisfied by the NATS client
type Subscriber interface {
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
}

// Broadcaster delivers an event to the local members of a room
type Broadcaster interface {
	Broadcast(room, event string, data interface{}) int
}

// FanoutHandler relays fan-out envelopes from the bus to this instance's sockets
type FanoutHandler struct {
	subscriber  Subscriber
	broadcaster Broadcaster
	nrApp       *newrelic.Application
	subs        []*nats.Subscription
}

// NewFanoutHandler creates a new fan-out consumer
func NewFanoutHandler(subscriber Subscriber, broadcaster Broadcaster, nrApp *newrelic.Application) *FanoutHandler {
	return &FanoutHandler{
		subscriber:  subscriber,
		broadcaster: broadcaster,
		nrApp:       nrApp,
	}
}

// Start subscribes to every fan-out subject
func (h *FanoutHandler) Start() error {
	sub, err := h.subscriber.Subscribe(constants.SubjectFanoutAll, h.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to fan-out: %w", err)
	}
	h.subs = append(h.subs, sub)

	logger.Info("Fan-out consumer started", logger.String("subject", constants.SubjectFanoutAll))
	return nil
}

// Stop unsubscribes from the bus
func (h *FanoutHandler) Stop() {
	for _, sub := range h.subs {
		if sub == nil {
			continue
		}
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.String("subject", sub.Subject), logger.Err(err))
		}
	}
	h.subs = nil
}

func (h *FanoutHandler) handleMessage(msg *nats.Msg) {
	txn := h.nrApp.StartTransaction("NATS.Trips.Fanout")
	defer txn.End()
	ctx := newrelic.NewContext(context.Background(), txn)

	var envelope models.FanoutEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		logger.WarnCtx(ctx, "Dropping malformed fan-out message",
			logger.String("subject", msg.Subject),
			logger.Err(err))
		return
	}
	if envelope.Room == "" || envelope.Event == "" {
		logger.WarnCtx(ctx, "Dropping fan-out message without room or event",
			logger.String("subject", msg.Subject))
		return
	}

	delivered := h.broadcaster.Broadcast(envelope.Room, envelope.Event, envelope.Data)
	logger.DebugCtx(ctx, "Fan-out delivered",
		logger.String("room", envelope.Room),
		logger.String("event", envelope.Event),
		logger.Int("delivered", delivered))
}
