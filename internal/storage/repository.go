package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rate-report/internal/currency"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	insertRateSQL = `INSERT INTO exchange_rates (
        date,
        currency_code,
        currency_rate
    ) VALUES (
        $1,$2,$3
    )
    ON CONFLICT (date, currency_code) DO NOTHING;`

	selectRangeSQL = `SELECT date, currency_code, currency_rate::text
    FROM exchange_rates
    WHERE date BETWEEN $1 AND $2
    ORDER BY currency_code, date;`

	selectRangeByCurrencySQL = `SELECT date, currency_code, currency_rate::text
    FROM exchange_rates
    WHERE date BETWEEN $1 AND $2
      AND currency_code = ANY($3)
    ORDER BY currency_code, date;`

	selectCoverageSQL = `SELECT date
    FROM exchange_rates
    WHERE date BETWEEN $1 AND $2
    GROUP BY date
    HAVING COUNT(currency_code) >= $3
    ORDER BY date;`

	selectCoverageByCurrencySQL = `SELECT date
    FROM exchange_rates
    WHERE date BETWEEN $1 AND $2
      AND currency_code = ANY($3)
    GROUP BY date
    HAVING COUNT(currency_code) >= $4
    ORDER BY date;`

	listRecentSQL = `SELECT date, currency_code, currency_rate::text
    FROM exchange_rates
    ORDER BY date DESC, currency_code
    LIMIT $1;`

	countRangeSQL = `SELECT COUNT(*)
    FROM exchange_rates
    WHERE date BETWEEN $1 AND $2;`
)

// DefaultScanChunkSize bounds how many rows a range scan hands to its
// callback at a time.
const DefaultScanChunkSize = 100

// RateReader exposes ordered, chunked access to cached rates.
type RateReader interface {
	ScanRange(ctx context.Context, q RangeQuery, fn func([]RateRecord) error) error
	ScanCoverage(ctx context.Context, q RangeQuery, fn func([]time.Time) error) error
}

// RateWriter merges freshly fetched records into the cache.
type RateWriter interface {
	BulkInsert(ctx context.Context, records []RateRecord) (int64, error)
}

// Store provides access to the exchange_rates table.
type Store struct {
	pool      *pgxpool.Pool
	chunkSize int
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, chunkSize: DefaultScanChunkSize}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// BulkInsert writes records, silently dropping any whose natural key is
// already present. It returns the number of rows actually inserted, which
// makes re-merging an already-covered range a safe no-op.
func (s *Store) BulkInsert(ctx context.Context, records []RateRecord) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertRateSQL, rec.Date, rec.Currency, rec.Rate.String())
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range records {
		tag, execErr := results.Exec()
		if execErr != nil {
			return inserted, fmt.Errorf("insert rate record: %w", execErr)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// ScanRange streams cached records for the query, ordered by
// (currency_code, date), to fn in chunks of at most the configured size.
// The slice passed to fn is freshly allocated per chunk and may be retained.
func (s *Store) ScanRange(ctx context.Context, q RangeQuery, fn func([]RateRecord) error) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	var rows pgx.Rows
	var queryErr error
	if len(q.Currencies) > 0 {
		rows, queryErr = pool.Query(ctx, selectRangeByCurrencySQL, q.Range.Start, q.Range.End, q.Currencies)
	} else {
		rows, queryErr = pool.Query(ctx, selectRangeSQL, q.Range.Start, q.Range.End)
	}
	if queryErr != nil {
		return fmt.Errorf("scan range: %w", queryErr)
	}
	defer rows.Close()

	chunk := make([]RateRecord, 0, s.chunkSize)
	for rows.Next() {
		rec, scanErr := scanRateRecord(rows)
		if scanErr != nil {
			return scanErr
		}
		chunk = append(chunk, rec)
		if len(chunk) == s.chunkSize {
			if err := fn(chunk); err != nil {
				return err
			}
			chunk = make([]RateRecord, 0, s.chunkSize)
		}
	}
	if rows.Err() != nil {
		return rows.Err()
	}
	if len(chunk) > 0 {
		return fn(chunk)
	}
	return nil
}

// ScanCoverage streams the ascending dates whose cached currency count
// meets the requested set size (the whole known universe when the query
// carries no filter). Dates failing that bar count as uncovered.
func (s *Store) ScanCoverage(ctx context.Context, q RangeQuery, fn func([]time.Time) error) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	var rows pgx.Rows
	var queryErr error
	if len(q.Currencies) > 0 {
		rows, queryErr = pool.Query(ctx, selectCoverageByCurrencySQL,
			q.Range.Start, q.Range.End, q.Currencies, len(q.Currencies))
	} else {
		rows, queryErr = pool.Query(ctx, selectCoverageSQL,
			q.Range.Start, q.Range.End, currency.UniverseSize())
	}
	if queryErr != nil {
		return fmt.Errorf("scan coverage: %w", queryErr)
	}
	defer rows.Close()

	chunk := make([]time.Time, 0, s.chunkSize)
	for rows.Next() {
		var date time.Time
		if scanErr := rows.Scan(&date); scanErr != nil {
			return scanErr
		}
		chunk = append(chunk, date.UTC())
		if len(chunk) == s.chunkSize {
			if err := fn(chunk); err != nil {
				return err
			}
			chunk = make([]time.Time, 0, s.chunkSize)
		}
	}
	if rows.Err() != nil {
		return rows.Err()
	}
	if len(chunk) > 0 {
		return fn(chunk)
	}
	return nil
}

// ListRecent returns the newest cached records.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]RateRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent rates: %w", queryErr)
	}
	defer rows.Close()

	records := make([]RateRecord, 0, limit)
	for rows.Next() {
		rec, scanErr := scanRateRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

// CountRange counts cached rows inside an interval.
func (s *Store) CountRange(ctx context.Context, q RangeQuery) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countRangeSQL, q.Range.Start, q.Range.End).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count range: %w", scanErr)
	}
	return count, nil
}

func scanRateRecord(rows pgx.Rows) (RateRecord, error) {
	var (
		date    time.Time
		code    string
		rateStr string
	)
	if err := rows.Scan(&date, &code, &rateStr); err != nil {
		return RateRecord{}, err
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return RateRecord{}, fmt.Errorf("parse currency rate: %w", err)
	}

	return RateRecord{Date: date.UTC(), Currency: code, Rate: rate}, nil
}

var _ RateReader = (*Store)(nil)
var _ RateWriter = (*Store)(nil)
