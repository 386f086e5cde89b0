package reports

import (
	"time"

	"github.com/mmdatafocus/statement_backend/models"
	"github.com/shopspring/decimal"
)

// AgeingTotals sums debit minus credit by days since posting:
// Current up to 30, Days30 31 to 60, Days60 61 to 90, Days90 91 and over.
type AgeingTotals struct {
	Current decimal.Decimal `json:"current"`
	Days30  decimal.Decimal `json:"days30"`
	Days60  decimal.Decimal `json:"days60"`
	Days90  decimal.Decimal `json:"days90"`
}

func (a AgeingTotals) Total() decimal.Decimal {
	return a.Current.Add(a.Days30).Add(a.Days60).Add(a.Days90)
}

// ageInDays counts calendar days between the two dates, ignoring time of day.
func ageInDays(today, postingDate time.Time) int {
	return int(calendarDate(today).Sub(calendarDate(postingDate)).Hours() / 24)
}

// AgeingBucketTotals buckets postings by age relative to today. Postings
// without a date are skipped. Future-dated postings count as current.
func AgeingBucketTotals(postings []*models.GlEntry, today time.Time) AgeingTotals {
	var totals AgeingTotals
	for _, e := range postings {
		if !e.HasPostingDate() {
			continue
		}
		net := e.Debit.Sub(e.Credit)
		switch days := ageInDays(today, e.PostingDate); {
		case days <= 30:
			totals.Current = totals.Current.Add(net)
		case days <= 60:
			totals.Days30 = totals.Days30.Add(net)
		case days <= 90:
			totals.Days60 = totals.Days60.Add(net)
		default:
			totals.Days90 = totals.Days90.Add(net)
		}
	}
	return totals
}
