package services

import (
	"strings"
	"testing"

	"airbnb-report/models"
)

func TestValidateRoomTypesMismatch(t *testing.T) {
	data := sampleDataset()
	types := CountListingsByType(data)

	if v := ValidateRoomTypes(data, types); v != nil {
		t.Errorf("ValidateRoomTypes: unexpected failure for consistent counts: %v", v)
	}

	tampered := models.NewCounter()
	tampered.Add("Private room")
	v := ValidateRoomTypes(data, tampered)
	if v == nil {
		t.Fatal("ValidateRoomTypes: expected failure for tampered counts")
	}
	if v.Check != "room types" {
		t.Errorf("Check: got %q, want %q", v.Check, "room types")
	}
}

func TestValidateLicenseStatus(t *testing.T) {
	good := LicenseStatus(sampleDataset())
	if v := ValidateLicenseStatus(4, good); v != nil {
		t.Errorf("ValidateLicenseStatus: unexpected failure: %v", v)
	}

	missing := map[string]int{
		models.LicenseUnlicensed: 2,
		models.LicensePending:    1,
		models.LicenseLicensed:   1,
	}
	if v := ValidateLicenseStatus(4, missing); v == nil {
		t.Error("ValidateLicenseStatus: expected failure when a category is missing")
	}

	wrongSum := LicenseStatus(sampleDataset())
	wrongSum[models.LicenseLicensed]++
	if v := ValidateLicenseStatus(4, wrongSum); v == nil {
		t.Error("ValidateLicenseStatus: expected failure when counts do not sum to the total")
	}
}

func TestValidateHostBuckets(t *testing.T) {
	data := sampleDataset()
	multi := CountMultiListings(data)
	buckets := ListingsByHostCount(data)

	if v := ValidateHostBuckets(len(data), multi, buckets); v != nil {
		t.Errorf("ValidateHostBuckets: unexpected failure: %v", v)
	}

	broken := buckets
	broken[0]++
	v := ValidateHostBuckets(len(data), multi, broken)
	if v == nil {
		t.Fatal("ValidateHostBuckets: expected failure for inconsistent buckets")
	}
	if !strings.Contains(v.Error(), "host buckets") {
		t.Errorf("error should name the failed check, got %q", v.Error())
	}
}

func TestValidateListingsPerHost(t *testing.T) {
	perHost := ListingsPerHost(sampleDataset(), "")
	if v := ValidateListingsPerHost(4, perHost); v != nil {
		t.Errorf("ValidateListingsPerHost: unexpected failure: %v", v)
	}
	if v := ValidateListingsPerHost(5, perHost); v == nil {
		t.Error("ValidateListingsPerHost: expected failure for wrong total")
	}
}

func TestValidateRentalSplit(t *testing.T) {
	if v := ValidateRentalSplit(10, 4); v != nil {
		t.Errorf("ValidateRentalSplit: unexpected failure: %v", v)
	}
	if v := ValidateRentalSplit(10, 11); v == nil {
		t.Error("ValidateRentalSplit: expected failure when short-term exceeds the total")
	}
}

func TestValidateDataset(t *testing.T) {
	if v := ValidateDataset(sampleDataset()); v != nil {
		t.Errorf("ValidateDataset: unexpected failure: %v", v)
	}
	if v := ValidateDataset(nil); v == nil {
		t.Error("ValidateDataset: expected failure for empty dataset")
	}
}
