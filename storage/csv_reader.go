package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"airbnb-report/models"
)

// ReadListings loads an Inside Airbnb listings export from the CSV file at
// path. The first row is discarded unconditionally (assumed header) and every
// remaining row is decoded positionally into a Listing. Quoted fields
// containing commas are handled by the CSV reader. Numeric content is not
// validated here.
func ReadListings(path string) ([]*models.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var listings []*models.Listing
	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read %q: %w", path, err)
		}
		row++
		if row == 1 {
			continue // header
		}
		l, err := decodeListing(record)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", row, err)
		}
		listings = append(listings, l)
	}

	return listings, nil
}

func decodeListing(record []string) (*models.Listing, error) {
	if len(record) != models.FieldCount {
		return nil, fmt.Errorf("has %d fields, want %d", len(record), models.FieldCount)
	}
	return &models.Listing{
		ID:                 record[0],
		Name:               record[1],
		HostID:             record[2],
		HostName:           record[3],
		NeighbourhoodGroup: record[4],
		Neighbourhood:      record[5],
		Latitude:           record[6],
		Longitude:          record[7],
		RoomType:           record[8],
		Price:              record[9],
		MinimumNights:      record[10],
		NumberOfReviews:    record[11],
		LastReview:         record[12],
		ReviewsPerMonth:    record[13],
		HostListingsCount:  record[14],
		Availability:       record[15],
		ReviewsLTM:         record[16],
		License:            record[17],
	}, nil
}
