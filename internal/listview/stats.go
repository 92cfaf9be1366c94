package listview

// Stats aggregates over the full unfiltered record set. Filters narrow what
// the user is looking at; stats keep answering "how many overall".
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Sum      int            `json:"sum"`
}

// StatsOptions configures the numeric aggregate: Value is summed over records
// whose status equals SumStatus. A nil Value leaves Sum at zero.
type StatsOptions[T Record] struct {
	SumStatus string
	Value     func(T) int
}

// ComputeStats counts records per status and sums the configured value over
// one status. It must be fed the unfiltered set; callers pass the same slice
// they hand to ComputeView before any criteria are applied.
func ComputeStats[T Record](records []T, opts StatsOptions[T]) Stats {
	stats := Stats{
		Total:    len(records),
		ByStatus: make(map[string]int),
	}

	for _, r := range records {
		status := r.RecordStatus()
		stats.ByStatus[status]++
		if opts.Value != nil && status == opts.SumStatus {
			stats.Sum += opts.Value(r)
		}
	}
	return stats
}
