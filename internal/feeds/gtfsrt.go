// Package feeds exports live bus positions as a GTFS-Realtime feed.
package feeds

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

const gtfsRealtimeVersion = "2.0"

type FleetSource interface {
	ListBusLocations(ctx context.Context) ([]models.BusLocation, error)
	ListBuses(ctx context.Context) ([]models.Bus, error)
}

// LatestJournal serves the last journaled position per bus.
type LatestJournal interface {
	ListLatest(ctx context.Context) ([]models.BusLocation, error)
}

// VehicleFeed builds the vehicle positions feed from the backend and falls
// back to the location journal when the backend cannot list locations.
type VehicleFeed struct {
	Source  FleetSource
	Journal LatestJournal
	Now     func() time.Time
}

func (f VehicleFeed) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f VehicleFeed) Build(ctx context.Context) (*gtfs.FeedMessage, error) {
	locs, err := f.Source.ListBusLocations(ctx)
	if err != nil {
		if f.Journal == nil {
			return nil, fmt.Errorf("list bus locations: %w", err)
		}
		log.Printf("[FEEDS] backend locations failed, using journal: %v", err)
		if locs, err = f.Journal.ListLatest(ctx); err != nil {
			return nil, fmt.Errorf("journal locations: %w", err)
		}
	}

	// Labels and routes only enrich the feed.
	buses, err := f.Source.ListBuses(ctx)
	if err != nil {
		log.Printf("[FEEDS] list buses failed: %v", err)
	}
	return VehiclePositions(locs, buses, f.now()), nil
}

// VehiclePositions converts locations into a FULL_DATASET feed message,
// one entity per bus ordered by bus id.
func VehiclePositions(locs []models.BusLocation, buses []models.Bus, now time.Time) *gtfs.FeedMessage {
	byID := make(map[string]models.Bus, len(buses))
	for _, b := range buses {
		byID[b.ID] = b
	}

	sorted := append([]models.BusLocation(nil), locs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].BusID < sorted[j].BusID })

	msg := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
	}
	for _, loc := range sorted {
		if loc.BusID == "" {
			continue
		}
		vp := &gtfs.VehiclePosition{
			Vehicle: &gtfs.VehicleDescriptor{Id: proto.String(loc.BusID)},
			Position: &gtfs.Position{
				Latitude:  proto.Float32(float32(loc.Latitude)),
				Longitude: proto.Float32(float32(loc.Longitude)),
			},
		}
		if !loc.Timestamp.IsZero() {
			vp.Timestamp = proto.Uint64(uint64(loc.Timestamp.Unix()))
		}
		if b, ok := byID[loc.BusID]; ok {
			if b.Name != "" {
				vp.Vehicle.Label = proto.String(b.Name)
			}
			if b.RouteID != "" {
				vp.Trip = &gtfs.TripDescriptor{RouteId: proto.String(b.RouteID)}
			}
		}
		msg.Entity = append(msg.Entity, &gtfs.FeedEntity{
			Id:      proto.String("bus-" + loc.BusID),
			Vehicle: vp,
		})
	}
	return msg
}

// Encode serializes msg as protobuf, or as JSON when asJSON is set.
func Encode(msg *gtfs.FeedMessage, asJSON bool) ([]byte, string, error) {
	if asJSON {
		b, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(msg)
		return b, "application/json", err
	}
	b, err := proto.Marshal(msg)
	return b, "application/x-protobuf", err
}
