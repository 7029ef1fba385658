package ledger

import (
	"sort"

	"bankofquack/internal/models"
)

// UncategorizedBucket is the sentinel bucket name for expenses with no
// category.
const UncategorizedBucket = "Uncategorized"

// InvolvementFilter selects whose spending a breakdown reflects. When
// exactly one user is selected, sole-beneficiary expenses of the other
// user drop out and equal splits halve; when both or neither are
// selected the aggregate view applies and full amounts count.
type InvolvementFilter struct {
	User1  bool `form:"user1" json:"user1"`
	User2  bool `form:"user2" json:"user2"`
	Shared bool `form:"shared" json:"shared"`
}

// bothOrNeither reports whether the aggregate view applies.
func (f InvolvementFilter) bothOrNeither() bool {
	return f.User1 == f.User2
}

// CategoryBreakdown is the net spend of one category under a filter.
type CategoryBreakdown struct {
	CategoryID string  `json:"category_id,omitempty"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// SectorBreakdown rolls category totals up into their owning sector.
type SectorBreakdown struct {
	SectorID   string              `json:"sector_id"`
	Sector     string              `json:"sector"`
	Amount     float64             `json:"amount"`
	Percentage float64             `json:"percentage"`
	Categories []CategoryBreakdown `json:"categories"`
}

// displayAmount is the portion of an expense shown under the filter.
// Shared-paid expenses only count in the aggregate view, and only when
// the shared flag is set. Non-expense transactions never contribute.
func displayAmount(t models.Transaction, f InvolvementFilter) float64 {
	if t.Type != models.TransactionTypeExpense {
		return 0
	}
	if t.PaidBy() == models.SharedPayer {
		if f.bothOrNeither() && f.Shared {
			return t.Amount
		}
		return 0
	}
	if f.bothOrNeither() {
		return t.Amount
	}
	switch t.Split() {
	case models.SplitEqually:
		return t.Amount / 2
	case models.SplitUser1Only:
		if f.User1 {
			return t.Amount
		}
		return 0
	case models.SplitUser2Only:
		if f.User2 {
			return t.Amount
		}
		return 0
	default:
		return 0
	}
}

// BreakdownByCategory aggregates net spend per category under the
// filter. Callers that want reimbursements netted out of the totals
// should pass the ledger's effective transaction set, in which linked
// reimbursements appear as negative expenses carrying the original's
// category. Output is sorted descending by amount; ties keep first-seen
// order.
func BreakdownByCategory(transactions []models.Transaction, f InvolvementFilter) []CategoryBreakdown {
	type bucket struct {
		id     string
		name   string
		amount float64
	}

	var order []string
	buckets := make(map[string]*bucket)
	var total float64

	for _, t := range transactions {
		amount := displayAmount(t, f)
		if amount == 0 {
			continue
		}

		key, id, name := UncategorizedBucket, "", UncategorizedBucket
		if t.CategoryID != nil {
			key, id, name = *t.CategoryID, *t.CategoryID, t.CategoryName()
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{id: id, name: name}
			buckets[key] = b
			order = append(order, key)
		}
		b.amount += amount
		total += amount
	}

	out := make([]CategoryBreakdown, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		out = append(out, CategoryBreakdown{
			CategoryID: b.id,
			Category:   b.name,
			Amount:     b.amount,
			Percentage: percentage(b.amount, total),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// BreakdownBySector groups the category totals into sectors. A category
// belongs to the first sector (in the given sector order) that lists it;
// categories linked to no sector stay visible at the category level but
// never roll up. Sector percentages are relative to the same displayed
// total as the category percentages.
func BreakdownBySector(transactions []models.Transaction, sectors []models.Sector, f InvolvementFilter) []SectorBreakdown {
	categories := BreakdownByCategory(transactions, f)

	var total float64
	for _, c := range categories {
		total += c.Amount
	}

	// First match in sector list order wins when a category is linked to
	// more than one sector.
	owners := make(map[string]int)
	for i, s := range sectors {
		for _, c := range s.Categories {
			if _, seen := owners[c.ID]; !seen {
				owners[c.ID] = i
			}
		}
	}

	grouped := make([][]CategoryBreakdown, len(sectors))
	totals := make([]float64, len(sectors))
	for _, c := range categories {
		if c.CategoryID == "" {
			continue
		}
		i, ok := owners[c.CategoryID]
		if !ok {
			continue
		}
		grouped[i] = append(grouped[i], c)
		totals[i] += c.Amount
	}

	out := make([]SectorBreakdown, 0, len(sectors))
	for i, s := range sectors {
		if len(grouped[i]) == 0 {
			continue
		}
		out = append(out, SectorBreakdown{
			SectorID:   s.ID,
			Sector:     s.Name,
			Amount:     totals[i],
			Percentage: percentage(totals[i], total),
			Categories: grouped[i],
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// percentage guards the division by zero on empty views.
func percentage(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return amount / total * 100
}
