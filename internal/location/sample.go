package location

import (
	"context"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

// Sample is one position report from a device.
type Sample struct {
	DeviceID  string    `json:"deviceId,omitempty"`
	BusID     string    `json:"busId,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s Sample) BusLocation() models.BusLocation {
	return models.BusLocation{
		BusID:     s.BusID,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Accuracy:  s.Accuracy,
		Timestamp: s.Timestamp,
	}
}

// Source produces location samples.
type Source interface {
	// Current returns one sample.
	Current(ctx context.Context) (Sample, error)
	// Watch delivers samples until ctx is done. Non-fatal problems go to
	// onError and watching continues.
	Watch(ctx context.Context, onSample func(Sample), onError func(error)) error
}

// Sink accepts samples reported to the gateway.
type Sink interface {
	Ingest(ctx context.Context, s Sample) error
}
