package reports

import (
	"context"
	"testing"
	"time"

	"github.com/mmdatafocus/statement_backend/models"
	"github.com/mmdatafocus/statement_backend/utils"
)

type ageingBucket string

const (
	ageingCurrent ageingBucket = "current"
	ageingDays30  ageingBucket = "days30"
	ageingDays60  ageingBucket = "days60"
	ageingDays90  ageingBucket = "days90"
)

func bucketsOf(a AgeingTotals) []ageingBucket {
	var result []ageingBucket
	if !a.Current.IsZero() {
		result = append(result, ageingCurrent)
	}
	if !a.Days30.IsZero() {
		result = append(result, ageingDays30)
	}
	if !a.Days60.IsZero() {
		result = append(result, ageingDays60)
	}
	if !a.Days90.IsZero() {
		result = append(result, ageingDays90)
	}
	return result
}

// overlappingBuckets is the reading where each upper bound is inclusive and
// the 90+ bucket starts at 90, so a 90 day posting lands in two buckets.
func overlappingBuckets(days int) []ageingBucket {
	var result []ageingBucket
	if days <= 30 {
		result = append(result, ageingCurrent)
	}
	if days >= 31 && days <= 60 {
		result = append(result, ageingDays30)
	}
	if days >= 61 && days <= 90 {
		result = append(result, ageingDays60)
	}
	if days >= 90 {
		result = append(result, ageingDays90)
	}
	return result
}

func sameBuckets(a, b []ageingBucket) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAgeingBucketTotals_Boundaries(t *testing.T) {
	cases := []struct {
		days     int
		expected ageingBucket
	}{
		{-3, ageingCurrent},
		{0, ageingCurrent},
		{30, ageingCurrent},
		{31, ageingDays30},
		{45, ageingDays30},
		{60, ageingDays30},
		{61, ageingDays60},
		{90, ageingDays60},
		{91, ageingDays90},
		{400, ageingDays90},
	}
	for _, tc := range cases {
		e := posting(daysAgo(tc.days), "SINV-1", "Debtors", 100, 0)
		got := bucketsOf(AgeingBucketTotals([]*models.GlEntry{e}, statementDay))
		if !sameBuckets(got, []ageingBucket{tc.expected}) {
			t.Fatalf("AgeingBucketTotals(%d days) expected [%s], got %v", tc.days, tc.expected, got)
		}
	}
}

func TestAgeingBucketTotals_BoundaryInterpretations(t *testing.T) {
	// day 60: both readings put the posting in days30 only
	e60 := posting(daysAgo(60), "SINV-60", "Debtors", 10, 0)
	got60 := bucketsOf(AgeingBucketTotals([]*models.GlEntry{e60}, statementDay))
	if !sameBuckets(got60, overlappingBuckets(60)) {
		t.Fatalf("60 days expected %v, got %v", overlappingBuckets(60), got60)
	}

	// day 90: the overlapping reading double counts, the implemented one does not
	e90 := posting(daysAgo(90), "SINV-90", "Debtors", 10, 0)
	got90 := bucketsOf(AgeingBucketTotals([]*models.GlEntry{e90}, statementDay))
	if len(overlappingBuckets(90)) != 2 {
		t.Fatalf("overlapping reading expected two buckets at 90 days, got %v", overlappingBuckets(90))
	}
	if !sameBuckets(got90, []ageingBucket{ageingDays60}) {
		t.Fatalf("90 days expected [days60], got %v", got90)
	}
}

func TestAgeingBucketTotals_SumsNetAndSkipsUndated(t *testing.T) {
	postings := []*models.GlEntry{
		posting(daysAgo(5), "SINV-1", "Debtors", 100, 0),
		posting(daysAgo(2), "PE-1", "Debtors", 0, 40),
		posting(daysAgo(75), "SINV-0", "Debtors", 300, 0),
		posting(time.Time{}, "JV-1", "Debtors", 999, 0),
	}
	got := AgeingBucketTotals(postings, statementDay)
	assertDecimal(t, "current", dec(60), got.Current)
	assertDecimal(t, "days30", dec(0), got.Days30)
	assertDecimal(t, "days60", dec(300), got.Days60)
	assertDecimal(t, "days90", dec(0), got.Days90)
}

func TestAgeInDays_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, 3, 31, 0, 5, 0, 0, time.UTC)
	posted := time.Date(2024, 3, 30, 23, 55, 0, 0, time.UTC)
	if got := ageInDays(today, posted); got != 1 {
		t.Fatalf("ageInDays expected 1, got %d", got)
	}
}

func TestComputeStatement_AgeingUsesFetchedPostings(t *testing.T) {
	filters := statementFilters(models.StatementGroupByAccount)
	postings := []*models.GlEntry{
		posting(daysAgo(100), "SINV-0", "Debtors", 50, 0),
		posting(daysAgo(3), "SINV-1", "Debtors", 20, 0),
	}
	_, ageing := ComputeStatement(filters, postings, nil, "MMK")
	assertDecimal(t, "days90", dec(50), ageing.Days90)
	assertDecimal(t, "current", dec(20), ageing.Current)
}

type companyOnlyLookups struct {
	models.StatementLookups
	company *models.Company
}

func (l companyOnlyLookups) GetCompany(ctx context.Context, name string) (*models.Company, error) {
	if l.company == nil {
		return nil, utils.ErrorRecordNotFound
	}
	return l.company, nil
}

func TestCompanyToday(t *testing.T) {
	cases := []struct {
		name    string
		company *models.Company
		offset  time.Duration
	}{
		{"missing company", nil, 0},
		{"unknown timezone", &models.Company{Name: "Acme", Timezone: "Not/AZone"}, 0},
		{"utc", &models.Company{Name: "Acme", Timezone: "UTC"}, 0},
		{"ahead of utc", &models.Company{Name: "Acme", Timezone: "Etc/GMT-14"}, 14 * time.Hour},
	}
	for _, tc := range cases {
		before := calendarDate(time.Now().UTC().Add(tc.offset))
		got := companyToday(context.Background(), "Acme", companyOnlyLookups{company: tc.company})
		after := calendarDate(time.Now().UTC().Add(tc.offset))
		if got.Before(before) || got.After(after) {
			t.Fatalf("%s: companyToday expected between %s and %s, got %s", tc.name, before, after, got)
		}
	}
}

func TestGetClientStatementReport_NilFilters(t *testing.T) {
	report, err := GetClientStatementReport(context.Background(), nil, companyOnlyLookups{})
	if report != nil || !utils.IsValidationError(err) {
		t.Fatalf("GetClientStatementReport(nil) expected ValidationError, got %v (%v)", report, err)
	}
}
