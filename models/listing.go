package models

// FieldCount is the number of columns in an Inside Airbnb listings export.
const FieldCount = 18

// Listing is one row of an Inside Airbnb listings CSV, decoded positionally
// at load time. Every field keeps the raw string from the export; an empty
// string means the value is missing. Numeric fields are parsed where they
// are consumed, so a malformed value fails the aggregate that needs it
// rather than the load.
type Listing struct {
	ID                 string
	Name               string
	HostID             string
	HostName           string
	NeighbourhoodGroup string
	Neighbourhood      string
	Latitude           string
	Longitude          string
	RoomType           string
	Price              string
	MinimumNights      string
	NumberOfReviews    string
	LastReview         string
	ReviewsPerMonth    string
	HostListingsCount  string
	Availability       string
	ReviewsLTM         string
	License            string
}

// License status categories. Every listing falls into exactly one.
const (
	LicenseUnlicensed = "unlicensed"
	LicensePending    = "pending"
	LicenseExempt     = "exempt"
	LicenseLicensed   = "licensed"
)

// HostCount pairs a host's display name with a listing count for the
// top-hosts tables.
type HostCount struct {
	HostID string
	Name   string
	Count  int
}

// InsightReport holds every aggregate the report renders, computed in one
// pass by the insight service and validated against the dataset.
type InsightReport struct {
	Source  string // input filename shown in the banner
	Vintage string // data-vintage line shown in the banner

	TotalListings int
	ShortTerm     int
	LongTerm      int

	RoomTypes     *Counter
	LicenseStatus map[string]int
	MultiListings int
	HostBuckets   [10]int

	Prices     []float64 // all listings with a price
	HomePrices []float64 // "Entire home/apt" only

	TopHosts     []HostCount
	TopHomeHosts []HostCount
}
