package services

import (
	"fmt"

	"airbnb-report/models"
)

// ValidationError describes a consistency check that failed between an
// aggregate and the dataset it was derived from. Report generation stops at
// the first one.
type ValidationError struct {
	Check  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed [%s]: %s", e.Check, e.Detail)
}

// ValidateDataset checks that the loaded dataset has at least one row.
func ValidateDataset(data []*models.Listing) *ValidationError {
	if len(data) == 0 {
		return &ValidationError{
			Check:  "dataset",
			Detail: "dataset has no rows after the header",
		}
	}
	return nil
}

// ValidateRentalSplit checks that the short-term count is within the dataset
// size, so short-term and longer-term listings partition the total.
func ValidateRentalSplit(total, shortTerm int) *ValidationError {
	if shortTerm < 0 || shortTerm > total {
		return &ValidationError{
			Check:  "rental split",
			Detail: fmt.Sprintf("short-term count %d outside 0..%d", shortTerm, total),
		}
	}
	return nil
}

// ValidateRoomTypes checks that the per-type counts account for every
// listing with a non-empty room type.
func ValidateRoomTypes(data []*models.Listing, types *models.Counter) *ValidationError {
	typed := 0
	for _, l := range data {
		if l.RoomType != "" {
			typed++
		}
	}
	if sum := types.Sum(); sum != typed {
		return &ValidationError{
			Check:  "room types",
			Detail: fmt.Sprintf("type counts sum to %d, want %d listings with a room type", sum, typed),
		}
	}
	return nil
}

// ValidateLicenseStatus checks that all four license categories are present
// and that every listing was classified into exactly one.
func ValidateLicenseStatus(total int, status map[string]int) *ValidationError {
	for _, key := range []string{
		models.LicenseUnlicensed, models.LicensePending,
		models.LicenseExempt, models.LicenseLicensed,
	} {
		if _, ok := status[key]; !ok {
			return &ValidationError{
				Check:  "license status",
				Detail: fmt.Sprintf("category %q missing from result", key),
			}
		}
	}
	sum := 0
	for _, n := range status {
		sum += n
	}
	if sum != total {
		return &ValidationError{
			Check:  "license status",
			Detail: fmt.Sprintf("category counts sum to %d, want %d", sum, total),
		}
	}
	return nil
}

// ValidateHostBuckets cross-checks the host-count histogram against the
// multi-listing total: the single-listing bucket must hold exactly the
// listings that are not multi-listings, and the buckets must sum to the
// dataset size.
func ValidateHostBuckets(total, multiListings int, buckets [10]int) *ValidationError {
	if buckets[0] != total-multiListings {
		return &ValidationError{
			Check:  "host buckets",
			Detail: fmt.Sprintf("single-listing bucket is %d, want %d (total %d − multi %d)", buckets[0], total-multiListings, total, multiListings),
		}
	}
	sum := 0
	for _, n := range buckets {
		sum += n
	}
	if sum != total {
		return &ValidationError{
			Check:  "host buckets",
			Detail: fmt.Sprintf("buckets sum to %d, want %d", sum, total),
		}
	}
	return nil
}

// ValidateListingsPerHost checks that the unfiltered per-host counts account
// for every listing in the dataset.
func ValidateListingsPerHost(total int, perHost *models.Counter) *ValidationError {
	if sum := perHost.Sum(); sum != total {
		return &ValidationError{
			Check:  "listings per host",
			Detail: fmt.Sprintf("per-host counts sum to %d, want %d", sum, total),
		}
	}
	return nil
}
