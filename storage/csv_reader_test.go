package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testHeader = "id,name,host_id,host_name,neighbourhood_group,neighbourhood,latitude,longitude," +
	"room_type,price,minimum_nights,number_of_reviews,last_review,reviews_per_month," +
	"calculated_host_listings_count,availability_365,number_of_reviews_ltm,license\n"

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadListings(t *testing.T) {
	content := testHeader +
		`1,"Cozy loft, near the lake",100,Alice,,Lincoln Park,41.92,-87.65,Entire home/apt,150,2,10,2024-11-01,0.5,3,200,8,R12345` + "\n" +
		"2,Quiet room,200,Bob,,Hyde Park,41.79,-87.59,Private room,,30,0,,,1,365,0,\n"

	listings, err := ReadListings(writeTestCSV(t, content))
	if err != nil {
		t.Fatalf("ReadListings: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2 (header must be dropped)", len(listings))
	}

	first := listings[0]
	if first.Name != "Cozy loft, near the lake" {
		t.Errorf("quoted field with comma: got %q", first.Name)
	}
	if first.HostID != "100" || first.HostName != "Alice" {
		t.Errorf("host fields: got %q/%q, want 100/Alice", first.HostID, first.HostName)
	}
	if first.RoomType != "Entire home/apt" || first.Price != "150" {
		t.Errorf("room/price fields: got %q/%q", first.RoomType, first.Price)
	}
	if first.License != "R12345" {
		t.Errorf("license: got %q, want R12345", first.License)
	}

	second := listings[1]
	if second.Price != "" || second.License != "" {
		t.Errorf("empty fields must stay empty strings, got price=%q license=%q", second.Price, second.License)
	}
	if second.MinimumNights != "30" {
		t.Errorf("minimum nights: got %q, want 30", second.MinimumNights)
	}
}

func TestReadListingsHeaderOnly(t *testing.T) {
	listings, err := ReadListings(writeTestCSV(t, testHeader))
	if err != nil {
		t.Fatalf("ReadListings: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("got %d listings for a header-only file, want 0", len(listings))
	}
}

func TestReadListingsMissingFile(t *testing.T) {
	_, err := ReadListings(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("ReadListings: expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestReadListingsShortRow(t *testing.T) {
	content := testHeader + "1,Only,three\n"
	if _, err := ReadListings(writeTestCSV(t, content)); err == nil {
		t.Error("ReadListings: expected error for a row with too few fields")
	}
}
