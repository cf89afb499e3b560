package storage

import "airbnb-report/models"

// ListingStore persists a parsed dataset and serves it back for reporting.
type ListingStore interface {
	Write(listings []*models.Listing) error
	FetchAll() ([]*models.Listing, error)
	Close() error
}
