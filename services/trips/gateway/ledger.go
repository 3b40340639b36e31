package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
)

// ErrGatewayClosed is returned for settlements handed over after Close
var ErrGatewayClosed = errors.New("trip gateway is closed")

// PublishSettlement queues the ledger entry for downstream payout processing.
// It returns once the entry is queued; delivery failures are logged by the loop.
func (g *TripGW) PublishSettlement(_ context.Context, entry *models.LedgerEntry) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return ErrGatewayClosed
	}

	select {
	case g.settlements <- entry:
		return nil
	default:
		return fmt.Errorf("settlement queue is full, trip %s not published", entry.TripID)
	}
}

// Close stops accepting settlements and waits for the queued ones to be
// published, or for ctx to end.
func (g *TripGW) Close(ctx context.Context) error {
	g.mu.Lock()
	if !g.closed {
		g.closed = true
		close(g.settlements)
	}
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("settlements still pending: %w", ctx.Err())
	}
}

func (g *TripGW) settlementLoop() {
	defer g.wg.Done()
	for entry := range g.settlements {
		g.publishSettlement(entry)
	}
}

func (g *TripGW) publishSettlement(entry *models.LedgerEntry) {
	err := g.retrier.Execute(context.Background(), "publish_settlement", func(ctx context.Context) error {
		return g.producer.Publish(constants.TopicTripSettled, entry)
	})
	if err != nil {
		logger.Error("Failed to publish settlement",
			logger.String("trip_id", entry.TripID),
			logger.String("agent_id", entry.AgentID),
			logger.Err(err))
	}
}
