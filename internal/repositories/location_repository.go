package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/config"
	intdb "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/db"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

const locationTable = "bus_location_journal"

// LocationRepository journals every forwarded bus location.
type LocationRepository struct {
	DB *sql.DB
}

func (r LocationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r LocationRepository) EnsureTable(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return errors.New("journal database not configured")
	}
	if intdb.HasTable(ctx, db, locationTable) {
		return nil
	}
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+locationTable+` (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id VARCHAR(64) NOT NULL,
	latitude DOUBLE NOT NULL,
	longitude DOUBLE NOT NULL,
	accuracy DOUBLE NULL,
	recorded_at DATETIME(3) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_bus_recorded (bus_id, recorded_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`)
	return err
}

// InsertLocation is a no-op when the journal is not configured.
func (r LocationRepository) InsertLocation(ctx context.Context, loc models.BusLocation) error {
	db := r.db()
	if db == nil {
		return nil
	}
	ts := loc.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO `+locationTable+` (bus_id, latitude, longitude, accuracy, recorded_at) VALUES (?,?,?,?,?)`,
		loc.BusID, loc.Latitude, loc.Longitude, intdb.NullIfZero(loc.Accuracy), ts.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert location bus=%s: %w", loc.BusID, err)
	}
	return nil
}

func (r LocationRepository) LatestByBus(ctx context.Context, busID string) (models.BusLocation, error) {
	db := r.db()
	if db == nil {
		return models.BusLocation{}, domain.NotFoundError{Resource: "bus location"}
	}

	var (
		out      models.BusLocation
		accuracy sql.NullFloat64
	)
	err := db.QueryRowContext(ctx, `
		SELECT bus_id, latitude, longitude, accuracy, recorded_at
		FROM `+locationTable+`
		WHERE bus_id = ?
		ORDER BY recorded_at DESC
		LIMIT 1
	`, busID).Scan(&out.BusID, &out.Latitude, &out.Longitude, &accuracy, &out.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BusLocation{}, domain.NotFoundError{Resource: "bus location", Err: err}
	}
	if err != nil {
		return models.BusLocation{}, err
	}
	if accuracy.Valid {
		a := accuracy.Float64
		out.Accuracy = &a
	}
	return out, nil
}

// ListLatest returns the newest journal row per bus.
func (r LocationRepository) ListLatest(ctx context.Context) ([]models.BusLocation, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, locationTable) {
		return []models.BusLocation{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT j.bus_id, j.latitude, j.longitude, j.accuracy, j.recorded_at
		FROM `+locationTable+` j
		JOIN (
			SELECT bus_id, MAX(recorded_at) AS recorded_at
			FROM `+locationTable+`
			GROUP BY bus_id
		) latest ON latest.bus_id = j.bus_id AND latest.recorded_at = j.recorded_at
		ORDER BY j.bus_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusLocation{}
	for rows.Next() {
		var (
			loc      models.BusLocation
			accuracy sql.NullFloat64
		)
		if err := rows.Scan(&loc.BusID, &loc.Latitude, &loc.Longitude, &accuracy, &loc.Timestamp); err != nil {
			return out, err
		}
		if accuracy.Valid {
			a := accuracy.Float64
			loc.Accuracy = &a
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}
