package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"airbnb-report/models"
	"airbnb-report/utils"
)

// listingColumns is the insert column list, in models.Listing field order.
var listingColumns = []string{
	"listing_id", "name", "host_id", "host_name",
	"neighbourhood_group", "neighbourhood", "latitude", "longitude",
	"room_type", "price", "minimum_nights", "number_of_reviews",
	"last_review", "reviews_per_month", "host_listings_count",
	"availability", "reviews_ltm", "license",
}

// PostgresStore mirrors a parsed dataset in PostgreSQL. Fields are stored as
// TEXT so that empty-string missingness survives the round trip unchanged.
type PostgresStore struct {
	db *sql.DB
}

var _ ListingStore = (*PostgresStore)(nil)

// NewPostgresStore opens a connection to PostgreSQL, pings it with retries,
// runs schema migrations, and returns a ready-to-use store.
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			seq                 SERIAL PRIMARY KEY,
			listing_id          TEXT NOT NULL DEFAULT '',
			name                TEXT NOT NULL DEFAULT '',
			host_id             TEXT NOT NULL DEFAULT '',
			host_name           TEXT NOT NULL DEFAULT '',
			neighbourhood_group TEXT NOT NULL DEFAULT '',
			neighbourhood       TEXT NOT NULL DEFAULT '',
			latitude            TEXT NOT NULL DEFAULT '',
			longitude           TEXT NOT NULL DEFAULT '',
			room_type           TEXT NOT NULL DEFAULT '',
			price               TEXT NOT NULL DEFAULT '',
			minimum_nights      TEXT NOT NULL DEFAULT '',
			number_of_reviews   TEXT NOT NULL DEFAULT '',
			last_review         TEXT NOT NULL DEFAULT '',
			reviews_per_month   TEXT NOT NULL DEFAULT '',
			host_listings_count TEXT NOT NULL DEFAULT '',
			availability        TEXT NOT NULL DEFAULT '',
			reviews_ltm         TEXT NOT NULL DEFAULT '',
			license             TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_listings_host_id   ON listings(host_id);
		CREATE INDEX IF NOT EXISTS idx_listings_room_type ON listings(room_type);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (ps *PostgresStore) Clear() error {
	_, err := ps.db.Exec("DELETE FROM listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts the full dataset, clearing old data first. Insertion
// order is preserved through the seq column so FetchAll returns rows in the
// same order the CSV provided them.
func (ps *PostgresStore) Write(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := ps.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := ps.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (ps *PostgresStore) insertBatch(batch []*models.Listing) error {
	cols := len(listingColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", idx*cols+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			l.ID, l.Name, l.HostID, l.HostName,
			l.NeighbourhoodGroup, l.Neighbourhood, l.Latitude, l.Longitude,
			l.RoomType, l.Price, l.MinimumNights, l.NumberOfReviews,
			l.LastReview, l.ReviewsPerMonth, l.HostListingsCount,
			l.Availability, l.ReviewsLTM, l.License)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (%s)
		VALUES %s
	`, strings.Join(listingColumns, ", "), strings.Join(valueStrings, ","))

	_, err := ps.db.Exec(query, valueArgs...)
	return err
}

// FetchAll retrieves the stored dataset in insertion order — used to compute
// the report from the mirrored copy.
func (ps *PostgresStore) FetchAll() ([]*models.Listing, error) {
	rows, err := ps.db.Query(fmt.Sprintf(`
		SELECT %s
		FROM listings
		ORDER BY seq
	`, strings.Join(listingColumns, ", ")))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		if err := rows.Scan(
			&l.ID, &l.Name, &l.HostID, &l.HostName,
			&l.NeighbourhoodGroup, &l.Neighbourhood, &l.Latitude, &l.Longitude,
			&l.RoomType, &l.Price, &l.MinimumNights, &l.NumberOfReviews,
			&l.LastReview, &l.ReviewsPerMonth, &l.HostListingsCount,
			&l.Availability, &l.ReviewsLTM, &l.License,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
