// Package listview implements the filtered/sorted/paginated views shared by
// the console's record lists (refunds, applied jobs, businesses, ads).
// Records are injected by the caller; the package never reaches for a
// process-wide data set and never mutates what it is given.
package listview

import (
	"sort"
	"strings"
	"time"
)

// Record is the read-only view the engine has of a domain entity.
type Record interface {
	RecordID() string
	RecordStatus() string
	// RecordDate returns the ISO 8601 date (YYYY-MM-DD) used for range
	// filtering and sorting.
	RecordDate() string
	// SearchFields returns the values matched by the free-text query.
	SearchFields() []string
}

// StatusAll disables status filtering.
const StatusAll = "all"

// Criteria holds the filters applied to a record set. Zero values mean the
// corresponding filter is skipped. An inverted date range yields an empty
// view, not an error.
type Criteria struct {
	Status    string `json:"status" form:"status"`
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
	Query     string `json:"q" form:"q"`
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort selects the sort key and direction. Only the date key is in use.
type Sort struct {
	Key       string    `json:"key" form:"sort_key"`
	Direction Direction `json:"direction" form:"sort_dir"`
}

// Page is one page of a filtered, sorted view.
type Page[T Record] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
}

// ComputeView filters, sorts, and paginates records. It is a pure function of
// its inputs and total over them: malformed dates, empty sets, and
// out-of-range pages all produce well-defined empty results.
func ComputeView[T Record](records []T, criteria Criteria, s Sort, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	filtered := filter(records, criteria)
	sortByDate(filtered, s.Direction)

	totalCount := len(filtered)
	totalPages := (totalCount + pageSize - 1) / pageSize

	maxPage := totalPages
	if maxPage < 1 {
		maxPage = 1
	}
	current := page
	if current < 1 {
		current = 1
	}
	if current > maxPage {
		current = maxPage
	}

	start := (current - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	items := make([]T, end-start)
	copy(items, filtered[start:end])

	return Page[T]{
		Items:       items,
		CurrentPage: current,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
	}
}

func filter[T Record](records []T, c Criteria) []T {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]T, 0, len(records))
	for _, r := range records {
		if !matchesStatus(r, c.Status) {
			continue
		}
		if !matchesDateRange(r, c.StartDate, c.EndDate) {
			continue
		}
		if !matchesQuery(r, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesStatus(r Record, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return r.RecordStatus() == status
}

// matchesDateRange compares ISO date strings lexicographically, which orders
// the same as the dates themselves. Bounds are inclusive and independently
// optional; an inverted range matches nothing. A record whose date does not
// parse never matches a bounded range.
func matchesDateRange(r Record, start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	date := r.RecordDate()
	if parseDate(date).IsZero() {
		return false
	}
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

func matchesQuery(r Record, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// sortByDate sorts in place by parsed record date. The sort is stable: ties
// keep their original relative order. Unparseable dates sort as the zero time.
func sortByDate[T Record](records []T, dir Direction) {
	sort.SliceStable(records, func(i, j int) bool {
		ti := parseDate(records[i].RecordDate())
		tj := parseDate(records[j].RecordDate())
		if dir == Desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
