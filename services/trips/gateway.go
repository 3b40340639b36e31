package trips

import (
	"context"

	"github.com/piresc/kirimin/internal/pkg/models"
)

// TripGW defines outbound notification and event publishing
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/kirimin/services/trips TripGW
type TripGW interface {
	NotifyAgent(ctx context.Context, agentID, event string, data interface{}) error
	NotifyTrip(ctx context.Context, tripID, event string, data interface{}) error
	PublishSettlement(ctx context.Context, entry *models.LedgerEntry) error
}
