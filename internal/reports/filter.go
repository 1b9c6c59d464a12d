package reports

import (
	"strings"
	"time"

	"fintrack/internal/models"
)

// Criteria describes a transaction filter. All dimensions are AND-combined;
// an empty slice or nil pointer on a dimension means no restriction on it,
// so the zero Criteria is the identity filter.
type Criteria struct {
	Preset       DateRangePreset            `json:"preset,omitempty"`
	StartDate    *time.Time                 `json:"start_date,omitempty"`
	EndDate      *time.Time                 `json:"end_date,omitempty"`
	AccountIDs   []string                   `json:"account_ids,omitempty"`
	CategoryIDs  []string                   `json:"category_ids,omitempty"`
	PayeeIDs     []string                   `json:"payee_ids,omitempty"`
	Types        []models.TransactionType   `json:"types,omitempty"`
	Statuses     []models.TransactionStatus `json:"statuses,omitempty"`
	MinAmount    *int64                     `json:"min_amount,omitempty"`
	MaxAmount    *int64                     `json:"max_amount,omitempty"`
	AccountTypes []models.AccountType       `json:"account_types,omitempty"`
	Search       string                     `json:"search,omitempty"`
	IncludeNotes bool                       `json:"include_notes,omitempty"`
}

// dateBounds resolves the effective date window: a preset wins over custom
// bounds, custom bounds apply individually otherwise.
func (c *Criteria) dateBounds(now time.Time) (start, end *time.Time) {
	if c.Preset != "" {
		if s, e, ok := ResolvePreset(c.Preset, now); ok {
			return &s, &e
		}
	}
	var e *time.Time
	if c.EndDate != nil {
		eod := endOfDay(*c.EndDate)
		e = &eod
	}
	return c.StartDate, e
}

// Filter applies the criteria to the transaction slice and returns the
// matching subset in input order. With empty criteria the output equals the
// input.
func Filter(transactions []models.Transaction, c Criteria, now time.Time) []models.Transaction {
	start, end := c.dateBounds(now)

	out := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if start != nil && t.Date.Before(*start) {
			continue
		}
		if end != nil && t.Date.After(*end) {
			continue
		}
		if !matchesAccount(&t, c.AccountIDs) {
			continue
		}
		if !matchesRef(t.CategoryID, c.CategoryIDs) {
			continue
		}
		if !matchesRef(t.PayeeID, c.PayeeIDs) {
			continue
		}
		if len(c.Types) > 0 && !containsType(c.Types, t.Type) {
			continue
		}
		if len(c.Statuses) > 0 && !containsStatus(c.Statuses, t.Status) {
			continue
		}
		if c.MinAmount != nil && t.Amount < *c.MinAmount {
			continue
		}
		if c.MaxAmount != nil && t.Amount > *c.MaxAmount {
			continue
		}
		if !matchesAccountType(&t, c.AccountTypes) {
			continue
		}
		if !matchesSearch(&t, c.Search, c.IncludeNotes) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesAccount checks account membership against every account reference
// the transaction carries: its own account for entries, both legs for
// transfers.
func matchesAccount(t *models.Transaction, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if t.TouchesAccount(id) {
			return true
		}
	}
	return false
}

func matchesRef(ref *string, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	if ref == nil {
		return false
	}
	for _, id := range ids {
		if *ref == id {
			return true
		}
	}
	return false
}

func containsType(types []models.TransactionType, t models.TransactionType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func containsStatus(statuses []models.TransactionStatus, s models.TransactionStatus) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

// matchesAccountType checks whether any populated account reference has one
// of the wanted types. Requires preloaded account relations.
func matchesAccountType(t *models.Transaction, types []models.AccountType) bool {
	if len(types) == 0 {
		return true
	}
	for _, acct := range []*models.Account{t.Account, t.FromAccount, t.ToAccount} {
		if acct == nil {
			continue
		}
		for _, want := range types {
			if acct.Type == want {
				return true
			}
		}
	}
	return false
}

// matchesSearch performs a case-insensitive substring match over payee,
// category, and account names, and over notes when includeNotes is set.
func matchesSearch(t *models.Transaction, search string, includeNotes bool) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)

	var haystacks []string
	if t.Payee != nil {
		haystacks = append(haystacks, t.Payee.Name)
	}
	if t.Category != nil {
		haystacks = append(haystacks, t.Category.Name)
	}
	for _, acct := range []*models.Account{t.Account, t.FromAccount, t.ToAccount} {
		if acct != nil {
			haystacks = append(haystacks, acct.Name)
		}
	}
	if includeNotes {
		haystacks = append(haystacks, t.Notes)
	}

	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
