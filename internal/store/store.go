// Package store persists stations and reception records in SQLite. All
// writes use bound parameters; no SQL is ever assembled from report text.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/m-martini/simplex-reports/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS stations (
	call      TEXT PRIMARY KEY,
	latitude  REAL NOT NULL,
	longitude REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS reception_records (
	id              TEXT NOT NULL,
	submitted_at    TEXT,
	reporting_call  TEXT NOT NULL,
	net_date        TEXT NOT NULL,
	frequency_mhz   REAL NOT NULL,
	transmit_call   TEXT NOT NULL,
	transmit_power  TEXT,
	transmit_height TEXT,
	transmit_lat    REAL,
	transmit_lon    REAL,
	receive_height  TEXT,
	receive_lat     REAL,
	receive_lon     REAL,
	quality         TEXT,
	ingested_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_transmit
	ON reception_records(transmit_call, net_date, frequency_mhz);
`

// Store is the explicitly owned persistence handle. One ingestion run owns
// it exclusively from Open to Close.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the report database and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// Single-owner batch tool: keep everything on one serialized connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("pragma busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertStation inserts a station or updates its coordinates.
func (s *Store) UpsertStation(ctx context.Context, st domain.Station) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stations(call, latitude, longitude) VALUES(?, ?, ?)
		ON CONFLICT(call) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude`,
		st.Call, st.Lat, st.Lon)
	if err != nil {
		return fmt.Errorf("upsert station %s: %w", st.Call, err)
	}
	return nil
}

// ReplaceStations clears the stations table and loads the given set in one
// transaction. Used to seed the table from the roster file at ingest start.
func (s *Store) ReplaceStations(ctx context.Context, stations []domain.Station) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace stations: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM stations"); err != nil {
		return fmt.Errorf("clear stations: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO stations(call, latitude, longitude) VALUES(?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare station insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range stations {
		if _, err := stmt.ExecContext(ctx, st.Call, st.Lat, st.Lon); err != nil {
			return fmt.Errorf("insert station %s: %w", st.Call, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace stations: %w", err)
	}
	return nil
}

// Stations returns every persisted station ordered by call sign.
func (s *Store) Stations(ctx context.Context) ([]domain.Station, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT call, latitude, longitude FROM stations ORDER BY call")
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var out []domain.Station
	for rows.Next() {
		var st domain.Station
		if err := rows.Scan(&st.Call, &st.Lat, &st.Lon); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// InsertRecord writes one reception record.
func (s *Store) InsertRecord(ctx context.Context, rec domain.ReceptionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reception_records(
			id, submitted_at, reporting_call, net_date, frequency_mhz,
			transmit_call, transmit_power, transmit_height, transmit_lat, transmit_lon,
			receive_height, receive_lat, receive_lon, quality, ingested_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SubmittedAt, rec.ReportingCall, rec.NetDate, rec.FrequencyMHz,
		rec.TransmitCall, rec.TransmitPower, rec.TransmitHeight,
		nullable(rec.TransmitLat), nullable(rec.TransmitLon),
		rec.ReceiveHeight, nullable(rec.ReceiveLat), nullable(rec.ReceiveLon),
		rec.Quality, rec.IngestedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert record %s (rated %s): %w", rec.ID, rec.TransmitCall, err)
	}
	return nil
}

// UpdateTransmitDetails backfills transmitter power, height, and resolved
// coordinates onto every record matching (transmit call, net date,
// frequency). Returns the number of records updated.
func (s *Store) UpdateTransmitDetails(ctx context.Context, call, netDate string, freqMHz float64, power, height string, lat, lon *float64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reception_records
		SET transmit_power = ?, transmit_height = ?, transmit_lat = ?, transmit_lon = ?
		WHERE transmit_call = ? AND net_date = ? AND frequency_mhz = ?`,
		power, height, nullable(lat), nullable(lon), call, netDate, freqMHz)
	if err != nil {
		return 0, fmt.Errorf("backfill transmit details for %s %s %.3f: %w", call, netDate, freqMHz, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// ReceptionByTransmitter returns all records where the given call was the
// rated transmitter on the given frequency. netDate narrows to one net when
// non-empty.
func (s *Store) ReceptionByTransmitter(ctx context.Context, call string, freqMHz float64, netDate string) ([]domain.ReceptionRecord, error) {
	query := `
		SELECT id, submitted_at, reporting_call, net_date, frequency_mhz,
			transmit_call, transmit_power, transmit_height, transmit_lat, transmit_lon,
			receive_height, receive_lat, receive_lon, quality, ingested_at
		FROM reception_records
		WHERE transmit_call = ? AND frequency_mhz = ?`
	args := []any{call, freqMHz}
	if netDate != "" {
		query += " AND net_date = ?"
		args = append(args, netDate)
	}
	query += " ORDER BY net_date, reporting_call"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reception for %s: %w", call, err)
	}
	defer rows.Close()

	var out []domain.ReceptionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// NetDates returns the distinct net dates recorded for a frequency, in
// stored-text order.
func (s *Store) NetDates(ctx context.Context, freqMHz float64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT net_date FROM reception_records WHERE frequency_mhz = ? ORDER BY net_date",
		freqMHz)
	if err != nil {
		return nil, fmt.Errorf("query net dates: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan net date: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountRecords reports the total number of reception records.
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reception_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func scanRecord(rows *sql.Rows) (domain.ReceptionRecord, error) {
	var rec domain.ReceptionRecord
	var txLat, txLon, rxLat, rxLon sql.NullFloat64
	var power, height, rxHeight, quality, submittedAt sql.NullString
	var ingestedAt string

	err := rows.Scan(&rec.ID, &submittedAt, &rec.ReportingCall, &rec.NetDate, &rec.FrequencyMHz,
		&rec.TransmitCall, &power, &height, &txLat, &txLon,
		&rxHeight, &rxLat, &rxLon, &quality, &ingestedAt)
	if err != nil {
		return rec, fmt.Errorf("scan record: %w", err)
	}

	rec.SubmittedAt = submittedAt.String
	rec.TransmitPower = power.String
	rec.TransmitHeight = height.String
	rec.ReceiveHeight = rxHeight.String
	rec.Quality = quality.String
	rec.TransmitLat = fromNull(txLat)
	rec.TransmitLon = fromNull(txLon)
	rec.ReceiveLat = fromNull(rxLat)
	rec.ReceiveLon = fromNull(rxLon)
	if t, err := time.Parse(time.RFC3339, ingestedAt); err == nil {
		rec.IngestedAt = t
	}
	return rec, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
