package core

import "sort"

// CategoryRollup is a per-category subtotal inside a month group.
type CategoryRollup struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
	Count    int    `json:"count"`
}

// MonthRollup is a per-month subtotal inside a category group.
type MonthRollup struct {
	Month int   `json:"month"` // 1-12
	Total Money `json:"total"`
	Count int   `json:"count"`
}

// MonthGroup is one calendar month of a year, with its category breakdown.
type MonthGroup struct {
	Month      int              `json:"month"` // 1-12
	Total      Money            `json:"total"`
	Count      int              `json:"count"`
	Categories []CategoryRollup `json:"categories"`
}

// CategoryGroup is one expense category, with its month breakdown.
type CategoryGroup struct {
	Category string        `json:"category"`
	Total    Money         `json:"total"`
	Count    int           `json:"count"`
	Months   []MonthRollup `json:"months"`
}

// GroupExpensesByMonth partitions the expenses of the selected year by
// calendar month. Months without records are omitted. Months come most
// recent first; within a month, categories sort by subtotal descending with
// ties keeping first-encountered order.
func GroupExpensesByMonth(items []Expense, year int) []MonthGroup {
	byMonth := make(map[int]*MonthGroup)
	catIndex := make(map[int]map[string]int)

	for _, e := range items {
		if e.Date.Year() != year {
			continue
		}
		m := e.Date.Month()
		g, ok := byMonth[m]
		if !ok {
			g = &MonthGroup{Month: m}
			byMonth[m] = g
			catIndex[m] = make(map[string]int)
		}
		g.Total = g.Total.Add(e.Amount)
		g.Count++

		idx, ok := catIndex[m][e.Category]
		if !ok {
			idx = len(g.Categories)
			g.Categories = append(g.Categories, CategoryRollup{Category: e.Category})
			catIndex[m][e.Category] = idx
		}
		g.Categories[idx].Total = g.Categories[idx].Total.Add(e.Amount)
		g.Categories[idx].Count++
	}

	out := make([]MonthGroup, 0, len(byMonth))
	for m := 12; m >= 1; m-- {
		g, ok := byMonth[m]
		if !ok {
			continue
		}
		sort.SliceStable(g.Categories, func(i, j int) bool {
			return g.Categories[i].Total.Cents > g.Categories[j].Total.Cents
		})
		out = append(out, *g)
	}
	return out
}

// GroupExpensesByCategory partitions the expenses of the selected year by
// category, sorted lexicographically; within each category, months come in
// chronological order.
func GroupExpensesByCategory(items []Expense, year int) []CategoryGroup {
	byCat := make(map[string]*CategoryGroup)
	monthIndex := make(map[string]map[int]int)

	for _, e := range items {
		if e.Date.Year() != year {
			continue
		}
		g, ok := byCat[e.Category]
		if !ok {
			g = &CategoryGroup{Category: e.Category}
			byCat[e.Category] = g
			monthIndex[e.Category] = make(map[int]int)
		}
		g.Total = g.Total.Add(e.Amount)
		g.Count++

		m := e.Date.Month()
		idx, ok := monthIndex[e.Category][m]
		if !ok {
			idx = len(g.Months)
			g.Months = append(g.Months, MonthRollup{Month: m})
			monthIndex[e.Category][m] = idx
		}
		g.Months[idx].Total = g.Months[idx].Total.Add(e.Amount)
		g.Months[idx].Count++
	}

	cats := make([]string, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	out := make([]CategoryGroup, 0, len(cats))
	for _, c := range cats {
		g := byCat[c]
		sort.Slice(g.Months, func(i, j int) bool {
			return g.Months[i].Month < g.Months[j].Month
		})
		out = append(out, *g)
	}
	return out
}
