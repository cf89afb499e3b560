package services

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"airbnb-report/models"
	"airbnb-report/utils"
)

// licenseOrder is the sort tie-break for the license breakdown: categories
// with equal counts keep this order.
var licenseOrder = []string{
	models.LicenseUnlicensed,
	models.LicensePending,
	models.LicenseExempt,
	models.LicenseLicensed,
}

// ReportService renders a validated InsightReport into the fixed-layout text
// report and writes it out.
type ReportService struct {
	logger  *utils.Logger
	printer *message.Printer
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// Render produces the full report text. Rendering is deterministic: the same
// InsightReport always yields byte-identical output.
func (s *ReportService) Render(r *models.InsightReport) string {
	var b strings.Builder
	n := r.TotalListings

	// Banner
	stars := strings.Repeat("*", 31)
	b.WriteString(stars)
	fmt.Fprintf(&b, "\nREPORT FOR %s\n", r.Source)
	fmt.Fprintf(&b, "(Data as of %s)\n", r.Vintage)
	b.WriteString(stars)

	fmt.Fprintf(&b, "\n\nTotal listings: %s\n", s.itoa(n))

	// Short / longer term split
	b.WriteString("\nListings that are:")
	fmt.Fprintf(&b, "\nShort-term rentals : %s (%s%%)", s.itoa(r.ShortTerm), pct(r.ShortTerm, n))
	fmt.Fprintf(&b, "\nLonger-term rentals: %s (%s%%)\n\n", s.itoa(r.LongTerm), pct(r.LongTerm, n))

	// Room type breakdown, descending count
	b.WriteString("Listings with room type:\n")
	for _, e := range r.RoomTypes.SortedDesc() {
		fmt.Fprintf(&b, "%-15s: %s (%s%%)\n", e.Key, s.itoa(e.Count), pct(e.Count, n))
	}

	// License breakdown
	unlicensed := r.LicenseStatus[models.LicenseUnlicensed] + r.LicenseStatus[models.LicensePending]
	fmt.Fprintf(&b, "\nNumber of unlicensed current listings, at least %s (%s%%); including %s with missing license and %s pending\n",
		s.itoa(unlicensed), pct(unlicensed, n),
		s.itoa(r.LicenseStatus[models.LicenseUnlicensed]),
		s.itoa(r.LicenseStatus[models.LicensePending]))
	for _, key := range sortedLicenseKeys(r.LicenseStatus) {
		fmt.Fprintf(&b, "%-10s: %s\n", key, s.itoa(r.LicenseStatus[key]))
	}

	// Multi-listing summary
	fmt.Fprintf(&b, "\nNumber of listings by hosts with multiple listings: %s out of %s total listings (%s%%)\n\n",
		s.itoa(r.MultiListings), s.itoa(n), pct(r.MultiListings, n))

	// Host-count histogram
	for i := 0; i < len(r.HostBuckets)-1; i++ {
		fmt.Fprintf(&b, "Listings by hosts with %d listings  : %s\n", i+1, s.itoa(r.HostBuckets[i]))
	}
	fmt.Fprintf(&b, "Listings by hosts with 10+ listings: %s\n", s.itoa(r.HostBuckets[9]))

	// Price statistics
	b.WriteString("\n-----Analyzing prices-----\n")
	fmt.Fprintf(&b, "%s prices in the list\n", s.itoa(len(r.Prices)))
	if len(r.Prices) > 0 {
		fmt.Fprintf(&b, "Average listing price $%.2f\n", Mean(r.Prices))
		fmt.Fprintf(&b, "Median listing price  $%.2f\n", Median(r.Prices))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s prices for %s\n", s.itoa(len(r.HomePrices)), RoomTypeEntireHome)
	if len(r.HomePrices) > 0 {
		fmt.Fprintf(&b, "Average entire apt price $%.2f\n", Mean(r.HomePrices))
		fmt.Fprintf(&b, "Median entire apt price  $%.2f\n", Median(r.HomePrices))
	}

	// Top host tables
	fmt.Fprintf(&b, "\n-----Top %d hosts with the largest number of listings-----\n", len(r.TopHosts))
	for _, h := range r.TopHosts {
		fmt.Fprintf(&b, "%-17s has %d\n", h.Name, h.Count)
	}

	fmt.Fprintf(&b, "\n-----Top %d hosts with largest number of entire home listings-----\n", len(r.TopHomeHosts))
	for _, h := range r.TopHomeHosts {
		fmt.Fprintf(&b, "%-17s has %d\n", h.Name, h.Count)
	}

	return b.String()
}

// Write overwrites the report file at path with the rendered text.
func (s *ReportService) Write(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %q: %w", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %q: %w", path, err)
	}
	s.logger.Info("[report] Report written to %s (%d bytes)", path, len(text))
	return nil
}

// itoa renders an integer with English thousands separators.
func (s *ReportService) itoa(n int) string {
	return s.printer.Sprintf("%d", n)
}

// pct renders part as a one-decimal percentage of total.
func pct(part, total int) string {
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

// sortedLicenseKeys orders the license categories by descending count, ties
// broken by the fixed category order.
func sortedLicenseKeys(status map[string]int) []string {
	keys := make([]string, len(licenseOrder))
	copy(keys, licenseOrder)
	sort.SliceStable(keys, func(i, j int) bool {
		return status[keys[i]] > status[keys[j]]
	})
	return keys
}
