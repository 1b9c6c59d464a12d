package reports

import (
	"sort"
	"time"

	"fintrack/internal/models"
)

// Summary holds income/expense totals for a transaction set. Amounts are
// minor currency units; Average is the mean amount across all transactions
// in the set, transfers included.
type Summary struct {
	Income  int64   `json:"income"`
	Expense int64   `json:"expense"`
	Net     int64   `json:"net"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Summarize computes income (deposits), expense (withdrawals), and net for
// the set. Transfers move money between own accounts and count toward
// neither side.
func Summarize(transactions []models.Transaction) Summary {
	var s Summary
	var totalAmount int64
	for _, t := range transactions {
		totalAmount += t.Amount
		switch t.Type {
		case models.TransactionTypeDeposit:
			s.Income += t.Amount
		case models.TransactionTypeWithdrawal:
			s.Expense += t.Amount
		}
	}
	s.Net = s.Income - s.Expense
	s.Count = len(transactions)
	if s.Count > 0 {
		s.Average = float64(totalAmount) / float64(s.Count)
	}
	return s
}

// CategorySlice is one category's share of total expense.
type CategorySlice struct {
	CategoryID   string  `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name"`
	Amount       int64   `json:"amount"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
}

// othersBucket labels the rolled-up remainder beyond the top N categories.
const othersBucket = "Others"

// CategoryBreakdown groups withdrawals by category, sorted descending by
// amount, with percentages of total expense. Categories beyond topN are
// rolled into a single Others slice. topN <= 0 disables the rollup.
func CategoryBreakdown(transactions []models.Transaction, topN int) []CategorySlice {
	byID := make(map[string]*CategorySlice)
	var totalExpense int64

	for _, t := range transactions {
		if t.Type != models.TransactionTypeWithdrawal {
			continue
		}
		id, name := "", "Uncategorized"
		if t.Category != nil {
			id, name = t.Category.ID, t.Category.Name
		} else if t.CategoryID != nil {
			id = *t.CategoryID
		}
		slice, ok := byID[id]
		if !ok {
			slice = &CategorySlice{CategoryID: id, CategoryName: name}
			byID[id] = slice
		}
		slice.Amount += t.Amount
		slice.Count++
		totalExpense += t.Amount
	}

	slices := make([]CategorySlice, 0, len(byID))
	for _, s := range byID {
		if totalExpense > 0 {
			s.Percentage = float64(s.Amount) / float64(totalExpense) * 100
		}
		slices = append(slices, *s)
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Amount != slices[j].Amount {
			return slices[i].Amount > slices[j].Amount
		}
		return slices[i].CategoryName < slices[j].CategoryName
	})

	if topN > 0 && len(slices) > topN {
		others := CategorySlice{CategoryName: othersBucket}
		for _, s := range slices[topN:] {
			others.Amount += s.Amount
			others.Count += s.Count
			others.Percentage += s.Percentage
		}
		slices = append(slices[:topN:topN], others)
	}
	return slices
}

// Interval names a calendar bucketing granularity for time series.
type Interval string

const (
	IntervalDaily     Interval = "daily"
	IntervalWeekly    Interval = "weekly"
	IntervalMonthly   Interval = "monthly"
	IntervalQuarterly Interval = "quarterly"
	IntervalYearly    Interval = "yearly"
)

// TimeBucket is one interval's income/expense totals.
type TimeBucket struct {
	Start   time.Time `json:"start"`
	Income  int64     `json:"income"`
	Expense int64     `json:"expense"`
	Net     int64     `json:"net"`
	Count   int       `json:"count"`
}

// truncateTo returns the calendar start of the bucket containing t.
// Weeks start on Monday.
func truncateTo(t time.Time, interval Interval) time.Time {
	loc := t.Location()
	switch interval {
	case IntervalWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case IntervalMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case IntervalQuarterly:
		quarterStart := time.Month(((int(t.Month())-1)/3)*3 + 1)
		return time.Date(t.Year(), quarterStart, 1, 0, 0, 0, 0, loc)
	case IntervalYearly:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
	default: // daily
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

// TimeSeries buckets transactions by calendar interval, sorted ascending by
// bucket start. Transfers count toward neither income nor expense but do
// count toward the bucket's transaction count.
func TimeSeries(transactions []models.Transaction, interval Interval) []TimeBucket {
	byStart := make(map[time.Time]*TimeBucket)
	for _, t := range transactions {
		start := truncateTo(t.Date, interval)
		bucket, ok := byStart[start]
		if !ok {
			bucket = &TimeBucket{Start: start}
			byStart[start] = bucket
		}
		bucket.Count++
		switch t.Type {
		case models.TransactionTypeDeposit:
			bucket.Income += t.Amount
		case models.TransactionTypeWithdrawal:
			bucket.Expense += t.Amount
		}
	}

	buckets := make([]TimeBucket, 0, len(byStart))
	for _, b := range byStart {
		b.Net = b.Income - b.Expense
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })
	return buckets
}

// AccountPerformance is one account's income/expense totals. Transfers
// debit the source account and credit the destination.
type AccountPerformance struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	Income      int64  `json:"income"`
	Expense     int64  `json:"expense"`
	Net         int64  `json:"net"`
	Count       int    `json:"count"`
}

// AccountPerformances aggregates per-account flows, sorted descending by
// net.
func AccountPerformances(transactions []models.Transaction) []AccountPerformance {
	byID := make(map[string]*AccountPerformance)
	get := func(acct *models.Account, id string) *AccountPerformance {
		p, ok := byID[id]
		if !ok {
			p = &AccountPerformance{AccountID: id}
			if acct != nil {
				p.AccountName = acct.Name
			}
			byID[id] = p
		}
		return p
	}

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeDeposit:
			if t.AccountID != nil {
				p := get(t.Account, *t.AccountID)
				p.Income += t.Amount
				p.Count++
			}
		case models.TransactionTypeWithdrawal:
			if t.AccountID != nil {
				p := get(t.Account, *t.AccountID)
				p.Expense += t.Amount
				p.Count++
			}
		case models.TransactionTypeTransfer:
			if t.FromAccountID != nil {
				p := get(t.FromAccount, *t.FromAccountID)
				p.Expense += t.Amount
				p.Count++
			}
			if t.ToAccountID != nil {
				p := get(t.ToAccount, *t.ToAccountID)
				p.Income += t.Amount
				p.Count++
			}
		}
	}

	perfs := make([]AccountPerformance, 0, len(byID))
	for _, p := range byID {
		p.Net = p.Income - p.Expense
		perfs = append(perfs, *p)
	}
	sort.Slice(perfs, func(i, j int) bool {
		if perfs[i].Net != perfs[j].Net {
			return perfs[i].Net > perfs[j].Net
		}
		return perfs[i].AccountName < perfs[j].AccountName
	})
	return perfs
}

// PayeeStat is one payee's withdrawal totals.
type PayeeStat struct {
	PayeeID    string   `json:"payee_id"`
	PayeeName  string   `json:"payee_name"`
	Total      int64    `json:"total"`
	Count      int      `json:"count"`
	Average    float64  `json:"average"`
	Categories []string `json:"categories"`
}

// PayeeAnalysis aggregates withdrawals per payee with a deduplicated list
// of category names, sorted descending by total.
func PayeeAnalysis(transactions []models.Transaction) []PayeeStat {
	type acc struct {
		stat PayeeStat
		cats map[string]bool
	}
	byID := make(map[string]*acc)

	for _, t := range transactions {
		if t.Type != models.TransactionTypeWithdrawal || t.PayeeID == nil {
			continue
		}
		a, ok := byID[*t.PayeeID]
		if !ok {
			a = &acc{stat: PayeeStat{PayeeID: *t.PayeeID}, cats: make(map[string]bool)}
			if t.Payee != nil {
				a.stat.PayeeName = t.Payee.Name
			}
			byID[*t.PayeeID] = a
		}
		a.stat.Total += t.Amount
		a.stat.Count++
		if t.Category != nil {
			a.cats[t.Category.Name] = true
		}
	}

	stats := make([]PayeeStat, 0, len(byID))
	for _, a := range byID {
		a.stat.Average = float64(a.stat.Total) / float64(a.stat.Count)
		a.stat.Categories = make([]string, 0, len(a.cats))
		for c := range a.cats {
			a.stat.Categories = append(a.stat.Categories, c)
		}
		sort.Strings(a.stat.Categories)
		stats = append(stats, a.stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].PayeeName < stats[j].PayeeName
	})
	return stats
}
