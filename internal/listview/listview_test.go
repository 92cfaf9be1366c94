package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRecord struct {
	id     string
	status string
	date   string
	title  string
	email  string
	points int
}

func (r testRecord) RecordID() string       { return r.id }
func (r testRecord) RecordStatus() string   { return r.status }
func (r testRecord) RecordDate() string     { return r.date }
func (r testRecord) SearchFields() []string { return []string{r.title, r.email, r.id} }

func refundFixtures() []testRecord {
	return []testRecord{
		{id: "REF-001", status: "PENDING", date: "2024-12-01", title: "Wrong amount", email: "kim@vgc.example", points: 500},
		{id: "REF-002", status: "APPROVED", date: "2024-11-28", title: "Duplicate charge", email: "lee@vgc.example", points: 300},
		{id: "REF-003", status: "REJECTED", date: "2024-11-25", title: "Service not used", email: "park@vgc.example", points: 200},
		{id: "REF-004", status: "APPROVED", date: "2024-11-20", title: "Deposit return", email: "choi@vgc.example", points: 700},
		{id: "REF-005", status: "PENDING", date: "2024-11-15", title: "Cancelled ad", email: "jung@vgc.example", points: 100},
	}
}

func TestComputeViewAllRecordsSortedDesc(t *testing.T) {
	records := refundFixtures()

	page := ComputeView(records, Criteria{Status: StatusAll}, Sort{Key: "date", Direction: Desc}, 1, 5)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 5, page.TotalCount)

	// Fixtures are already in descending date order.
	for i, r := range page.Items {
		assert.Equal(t, records[i].id, r.id)
	}
}

func TestFilterNeverGrowsResult(t *testing.T) {
	records := refundFixtures()
	criteria := []Criteria{
		{},
		{Status: "PENDING"},
		{Status: "APPROVED", Query: "deposit"},
		{StartDate: "2024-11-20", EndDate: "2024-11-28"},
		{Query: "vgc.example"},
		{Query: "no-such-thing"},
	}

	for _, c := range criteria {
		page := ComputeView(records, c, Sort{}, 1, 100)
		assert.LessOrEqual(t, len(page.Items), len(records))
	}
}

func TestStatusFilter(t *testing.T) {
	page := ComputeView(refundFixtures(), Criteria{Status: "PENDING"}, Sort{Direction: Desc}, 1, 10)

	assert.Len(t, page.Items, 2)
	for _, r := range page.Items {
		assert.Equal(t, "PENDING", r.status)
	}

	all := ComputeView(refundFixtures(), Criteria{Status: StatusAll}, Sort{}, 1, 10)
	assert.Len(t, all.Items, 5)
}

func TestDateRangeInclusive(t *testing.T) {
	page := ComputeView(refundFixtures(), Criteria{StartDate: "2024-11-20", EndDate: "2024-11-28"}, Sort{Direction: Asc}, 1, 10)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, "REF-004", page.Items[0].id)
	assert.Equal(t, "REF-002", page.Items[2].id)
}

func TestInvertedDateRangeYieldsEmptyView(t *testing.T) {
	page := ComputeView(refundFixtures(), Criteria{StartDate: "2024-12-31", EndDate: "2024-01-01"}, Sort{}, 1, 10)

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestQueryMatchesAnySearchField(t *testing.T) {
	records := refundFixtures()

	byTitle := ComputeView(records, Criteria{Query: "DEPOSIT"}, Sort{}, 1, 10)
	assert.Len(t, byTitle.Items, 1)
	assert.Equal(t, "REF-004", byTitle.Items[0].id)

	byEmail := ComputeView(records, Criteria{Query: "kim@"}, Sort{}, 1, 10)
	assert.Len(t, byEmail.Items, 1)

	byID := ComputeView(records, Criteria{Query: "ref-003"}, Sort{}, 1, 10)
	assert.Len(t, byID.Items, 1)

	blank := ComputeView(records, Criteria{Query: "   "}, Sort{}, 1, 10)
	assert.Len(t, blank.Items, 5)
}

func TestSortDirections(t *testing.T) {
	records := refundFixtures()

	desc := ComputeView(records, Criteria{}, Sort{Key: "date", Direction: Desc}, 1, 10)
	for i := 0; i < len(desc.Items)-1; i++ {
		assert.GreaterOrEqual(t, desc.Items[i].date, desc.Items[i+1].date)
	}

	asc := ComputeView(records, Criteria{}, Sort{Key: "date", Direction: Asc}, 1, 10)
	for i := 0; i < len(asc.Items)-1; i++ {
		assert.LessOrEqual(t, asc.Items[i].date, asc.Items[i+1].date)
	}
}

func TestSortIsStableOnEqualDates(t *testing.T) {
	records := []testRecord{
		{id: "A", date: "2024-11-20"},
		{id: "B", date: "2024-11-20"},
		{id: "C", date: "2024-11-20"},
	}

	page := ComputeView(records, Criteria{}, Sort{Direction: Desc}, 1, 10)

	assert.Equal(t, "A", page.Items[0].id)
	assert.Equal(t, "B", page.Items[1].id)
	assert.Equal(t, "C", page.Items[2].id)
}

func TestPaginationCoversEveryRecordOnce(t *testing.T) {
	records := refundFixtures()
	pageSize := 2

	var seen []string
	first := ComputeView(records, Criteria{}, Sort{Direction: Desc}, 1, pageSize)
	for p := 1; p <= first.TotalPages; p++ {
		page := ComputeView(records, Criteria{}, Sort{Direction: Desc}, p, pageSize)
		for _, r := range page.Items {
			seen = append(seen, r.id)
		}
	}

	assert.Equal(t, []string{"REF-001", "REF-002", "REF-003", "REF-004", "REF-005"}, seen)
}

func TestPageBeyondRangeIsClamped(t *testing.T) {
	page := ComputeView(refundFixtures(), Criteria{}, Sort{Direction: Desc}, 99, 2)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Len(t, page.Items, 1)

	below := ComputeView(refundFixtures(), Criteria{}, Sort{}, 0, 2)
	assert.Equal(t, 1, below.CurrentPage)
}

func TestComputeViewIsIdempotent(t *testing.T) {
	records := refundFixtures()
	criteria := Criteria{Status: "APPROVED", Query: "vgc"}
	sort := Sort{Key: "date", Direction: Desc}

	first := ComputeView(records, criteria, sort, 1, 2)
	second := ComputeView(records, criteria, sort, 1, 2)

	assert.Equal(t, first, second)
}

func TestComputeViewDoesNotMutateInput(t *testing.T) {
	records := refundFixtures()
	ComputeView(records, Criteria{}, Sort{Direction: Asc}, 1, 2)

	assert.Equal(t, "REF-001", records[0].id)
	assert.Equal(t, "REF-005", records[4].id)
}

func TestMalformedDatesDoNotMatchRanges(t *testing.T) {
	records := []testRecord{
		{id: "OK", date: "2024-11-20"},
		{id: "BAD", date: "not-a-date"},
		{id: "EMPTY", date: ""},
	}

	page := ComputeView(records, Criteria{StartDate: "2024-01-01"}, Sort{Direction: Desc}, 1, 10)

	assert.Len(t, page.Items, 1)
	assert.Equal(t, "OK", page.Items[0].id)

	// An end bound alone filters them out just the same.
	capped := ComputeView(records, Criteria{EndDate: "2024-12-31"}, Sort{Direction: Desc}, 1, 10)
	assert.Len(t, capped.Items, 1)
	assert.Equal(t, "OK", capped.Items[0].id)

	// Without bounds the records still flow through the sort unharmed.
	unfiltered := ComputeView(records, Criteria{}, Sort{Direction: Asc}, 1, 10)
	assert.Len(t, unfiltered.Items, 3)
}

func TestEmptyRecordSet(t *testing.T) {
	page := ComputeView([]testRecord(nil), Criteria{Status: "PENDING"}, Sort{Direction: Desc}, 3, 10)

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)

	// The clamp holds without any filters too, however deep the request.
	deep := ComputeView([]testRecord(nil), Criteria{}, Sort{}, 7, 10)
	assert.Equal(t, 1, deep.CurrentPage)
}
