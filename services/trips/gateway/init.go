package gateway

import (
	"sync"

	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/piresc/kirimin/internal/pkg/retry"
	"github.com/piresc/kirimin/services/trips"
)

// settlementQueueSize bounds the settlements waiting to be published
const settlementQueueSize = 256

// Publisher is the fan-out bus; satisfied by the NATS client
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Producer is the settlement event sink; satisfied by the NSQ producer
type Producer interface {
	Publish(topic string, message interface{}) error
}

var _ trips.TripGW = (*TripGW)(nil)

// TripGW routes real-time events through NATS and settlements through NSQ.
// Settlements are published by a background loop so a slow nsqd never holds
// up the request that completed the trip.
type TripGW struct {
	publisher Publisher
	producer  Producer
	retrier   *retry.Retrier

	settlements chan *models.LedgerEntry
	mu          sync.RWMutex
	closed      bool
	wg          sync.WaitGroup
}

// NewTripGW creates a new trip gateway and starts its settlement loop.
// A nil retrier uses the default backoff.
func NewTripGW(publisher Publisher, producer Producer, retrier *retry.Retrier) *TripGW {
	if retrier == nil {
		retrier = retry.NewWithDefaults()
	}
	g := &TripGW{
		publisher:   publisher,
		producer:    producer,
		retrier:     retrier,
		settlements: make(chan *models.LedgerEntry, settlementQueueSize),
	}

	g.wg.Add(1)
	go g.settlementLoop()

	return g
}
