package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/config"
	intdb "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/db"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"

	"github.com/google/uuid"
)

const scanTable = "qr_scans"

// ScanRepository keeps one row per QR scan.
type ScanRepository struct {
	DB *sql.DB
}

func (r ScanRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ScanRepository) EnsureTable(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return errors.New("journal database not configured")
	}
	if intdb.HasTable(ctx, db, scanTable) {
		return nil
	}
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+scanTable+` (
	id CHAR(36) PRIMARY KEY,
	user_id VARCHAR(128) NOT NULL,
	bus_id VARCHAR(64) NULL,
	action VARCHAR(16) NOT NULL,
	ride_id VARCHAR(64) NULL,
	scanned_at DATETIME(3) NOT NULL,
	KEY idx_user_scanned (user_id, scanned_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`)
	return err
}

// RecordScan fills ID and ScannedAt when empty. A nil database skips the
// insert but still assigns them.
func (r ScanRepository) RecordScan(ctx context.Context, rec *models.ScanRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ScannedAt.IsZero() {
		rec.ScannedAt = time.Now().UTC()
	}

	db := r.db()
	if db == nil {
		return nil
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO `+scanTable+` (id, user_id, bus_id, action, ride_id, scanned_at) VALUES (?,?,?,?,?,?)`,
		rec.ID, rec.UserID, intdb.NullIfEmpty(rec.BusID), rec.Action, intdb.NullIfEmpty(rec.RideID), rec.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan user=%s: %w", rec.UserID, err)
	}
	return nil
}

func (r ScanRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ScanRecord, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, scanTable) {
		return []models.ScanRecord{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, COALESCE(bus_id,''), action, COALESCE(ride_id,''), scanned_at
		FROM `+scanTable+`
		WHERE user_id = ?
		ORDER BY scanned_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScanRecord{}
	for rows.Next() {
		var s models.ScanRecord
		if err := rows.Scan(&s.ID, &s.UserID, &s.BusID, &s.Action, &s.RideID, &s.ScannedAt); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
