package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"airbnb-report/models"
	"airbnb-report/utils"
)

// RoomTypeEntireHome is the room type the filtered report sections use.
const RoomTypeEntireHome = "Entire home/apt"

// HostNameNotFound is returned when no listing matches the requested host id.
const HostNameNotFound = "Name not found"

// A short-term rental is one with a minimum stay of strictly fewer nights.
const shortTermNights = 30

// topHostCount is the size of the top-hosts tables in the report.
const topHostCount = 10

// exemptMarkers are the unit-exemption substrings that classify a license
// as exempt.
var exemptMarkers = []string{"32+", "32-", "32 +", "32 -"}

// HostNameByID returns the host name recorded for hostID, or the
// HostNameNotFound sentinel when no listing matches. When the same host id
// appears with different names, the name from the last matching row wins.
func HostNameByID(data []*models.Listing, hostID string) string {
	name := HostNameNotFound
	for _, l := range data {
		if l.HostID == hostID {
			name = l.HostName
		}
	}
	return name
}

// CountShortTermRentals counts listings whose minimum stay is under 30
// nights. A non-numeric minimum-nights field fails the whole count.
func CountShortTermRentals(data []*models.Listing) (int, error) {
	count := 0
	for _, l := range data {
		nights, err := strconv.Atoi(l.MinimumNights)
		if err != nil {
			return 0, fmt.Errorf("parse minimum nights %q for listing %s: %w", l.MinimumNights, l.ID, err)
		}
		if nights < shortTermNights {
			count++
		}
	}
	return count, nil
}

// CountListingsByType counts listings per room type. Listings with an empty
// room type are skipped; the key set is whatever types the data contains.
func CountListingsByType(data []*models.Listing) *models.Counter {
	types := models.NewCounter()
	for _, l := range data {
		if l.RoomType == "" {
			continue
		}
		types.Add(l.RoomType)
	}
	return types
}

// LicenseStatus classifies every listing's license field into exactly one of
// four categories, first match wins:
//
//  1. empty → unlicensed
//  2. contains "pending" (case-insensitive) → pending
//  3. contains a 32± unit-exemption marker → exempt
//  4. anything else → licensed
//
// All four keys are present in the result even when their count is 0.
func LicenseStatus(data []*models.Listing) map[string]int {
	status := map[string]int{
		models.LicenseUnlicensed: 0,
		models.LicensePending:    0,
		models.LicenseExempt:     0,
		models.LicenseLicensed:   0,
	}
	for _, l := range data {
		status[classifyLicense(l.License)]++
	}
	return status
}

func classifyLicense(license string) string {
	if license == "" {
		return models.LicenseUnlicensed
	}
	if strings.Contains(strings.ToLower(license), "pending") {
		return models.LicensePending
	}
	for _, marker := range exemptMarkers {
		if strings.Contains(license, marker) {
			return models.LicenseExempt
		}
	}
	return models.LicenseLicensed
}

// CountMultiListings returns the total number of listings owned by hosts
// with at least two listings. Note this counts listings, not hosts.
func CountMultiListings(data []*models.Listing) int {
	perHost := ListingsPerHost(data, "")
	total := 0
	for _, key := range perHost.Keys() {
		if n := perHost.Get(key); n >= 2 {
			total += n
		}
	}
	return total
}

// ListingsByHostCount distributes listings into ten buckets by their host's
// listing count: bucket i holds the listings of hosts with exactly i+1
// listings for i in 0..8, and bucket 9 holds the listings of hosts with 10
// or more. Each bucket totals listings, not hosts, so the buckets sum to the
// dataset size.
func ListingsByHostCount(data []*models.Listing) [10]int {
	var buckets [10]int
	perHost := ListingsPerHost(data, "")
	for _, key := range perHost.Keys() {
		n := perHost.Get(key)
		if n > 9 {
			buckets[9] += n
		} else if n > 0 {
			buckets[n-1] += n
		}
	}
	return buckets
}

// Prices collects the listed prices of the dataset, skipping listings with
// no price. A non-empty roomType restricts the result to listings of exactly
// that type; the empty string means no filter. A non-numeric price fails the
// whole collection.
func Prices(data []*models.Listing, roomType string) ([]float64, error) {
	var prices []float64
	for _, l := range data {
		if roomType != "" && l.RoomType != roomType {
			continue
		}
		if l.Price == "" {
			continue
		}
		p, err := strconv.ParseFloat(l.Price, 64)
		if err != nil {
			return nil, fmt.Errorf("parse price %q for listing %s: %w", l.Price, l.ID, err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

// ListingsPerHost maps every host id in the dataset to that host's listing
// count. With a non-empty roomType only listings of that type are counted,
// but hosts with no matching listings are still present with a count of 0 —
// the key set always covers every host in the data.
func ListingsPerHost(data []*models.Listing, roomType string) *models.Counter {
	perHost := models.NewCounter()
	for _, l := range data {
		perHost.Ensure(l.HostID)
		if roomType == "" || l.RoomType == roomType {
			perHost.Add(l.HostID)
		}
	}
	return perHost
}

// Mean returns the arithmetic mean of values. It is the caller's job to
// guard against an empty slice.
func Mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// Median returns the median of values, averaging the two middle elements
// for even lengths. The input slice is not modified.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// InsightService computes the validated aggregate bundle a report run needs.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService with the given logger.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate runs every aggregator over the dataset in report order, checking
// each result's consistency against the raw data before moving on. The first
// failed check or parse error aborts generation; nothing is written in that
// case.
func (s *InsightService) Generate(data []*models.Listing) (*models.InsightReport, error) {
	if v := ValidateDataset(data); v != nil {
		return nil, v
	}
	n := len(data)

	report := &models.InsightReport{TotalListings: n}

	shortTerm, err := CountShortTermRentals(data)
	if err != nil {
		return nil, err
	}
	if v := ValidateRentalSplit(n, shortTerm); v != nil {
		return nil, v
	}
	report.ShortTerm = shortTerm
	report.LongTerm = n - shortTerm

	report.RoomTypes = CountListingsByType(data)
	if v := ValidateRoomTypes(data, report.RoomTypes); v != nil {
		return nil, v
	}

	report.LicenseStatus = LicenseStatus(data)
	if v := ValidateLicenseStatus(n, report.LicenseStatus); v != nil {
		return nil, v
	}

	report.MultiListings = CountMultiListings(data)
	report.HostBuckets = ListingsByHostCount(data)
	if v := ValidateHostBuckets(n, report.MultiListings, report.HostBuckets); v != nil {
		return nil, v
	}

	if report.Prices, err = Prices(data, ""); err != nil {
		return nil, err
	}
	if report.HomePrices, err = Prices(data, RoomTypeEntireHome); err != nil {
		return nil, err
	}

	perHost := ListingsPerHost(data, "")
	if v := ValidateListingsPerHost(n, perHost); v != nil {
		return nil, v
	}
	report.TopHosts = topHosts(data, perHost)
	report.TopHomeHosts = topHosts(data, ListingsPerHost(data, RoomTypeEntireHome))

	s.logger.Info("[insights] Aggregates computed and validated for %d listings", n)
	return report, nil
}

// topHosts resolves the hosts with the largest listing counts to display
// names, at most topHostCount of them. Ties keep dataset order.
func topHosts(data []*models.Listing, perHost *models.Counter) []models.HostCount {
	entries := perHost.SortedDesc()
	if len(entries) > topHostCount {
		entries = entries[:topHostCount]
	}

	hosts := make([]models.HostCount, 0, len(entries))
	for _, e := range entries {
		hosts = append(hosts, models.HostCount{
			HostID: e.Key,
			Name:   HostNameByID(data, e.Key),
			Count:  e.Count,
		})
	}
	return hosts
}
