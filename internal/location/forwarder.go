package location

import (
	"context"
	"log"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
)

type BusLocationUpdater interface {
	UpdateBusLocation(ctx context.Context, loc models.BusLocation) error
}

type LocationJournal interface {
	InsertLocation(ctx context.Context, loc models.BusLocation) error
}

// Forwarder pushes watched samples to the backend and, when configured,
// the local journal. Use Handle as a StartWatching callback.
type Forwarder struct {
	Updater BusLocationUpdater
	Journal LocationJournal
	Metrics *metrics.Collector
	Timeout time.Duration
}

func (f *Forwarder) Handle(s Sample) {
	if s.BusID == "" {
		log.Printf("[LOCATION] skip sample without bus_id device=%s", s.DeviceID)
		return
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	loc := s.BusLocation()
	if f.Updater != nil {
		if err := f.Updater.UpdateBusLocation(ctx, loc); err != nil {
			f.Metrics.ForwardFailed()
			log.Printf("[LOCATION] forward bus_id=%s failed: %v", s.BusID, err)
		}
	}
	if f.Journal != nil {
		if err := f.Journal.InsertLocation(ctx, loc); err != nil {
			log.Printf("[LOCATION] journal bus_id=%s failed: %v", s.BusID, err)
		}
	}
}
