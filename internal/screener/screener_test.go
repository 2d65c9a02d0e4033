package screener

import (
	"fmt"
	"testing"

	"github.com/resource-capital/backend/internal/models"
)

func fp(v float64) *float64 {
	return &v
}

func fixture() []models.Company {
	return []models.Company{
		{Ticker: "AAA", Name: "Abitibi Gold", Exchange: "TSX", Commodity: "Gold", CurrentPrice: fp(12.50), DayChangePercent: fp(2.1), MarketCap: fp(100), Volume: fp(50000), Week52High: fp(13.00), Week52Low: fp(6.00), ProjectCount: 2},
		{Ticker: "BBB", Name: "Borden Copper", Exchange: "TSXV", Commodity: "Copper", CurrentPrice: fp(0.45), DayChangePercent: fp(-3.4), MarketCap: nil, Volume: fp(120000), Week52High: fp(1.20), Week52Low: fp(0.40), ProjectCount: 1},
		{Ticker: "CCC", Name: "Cariboo Silver", Exchange: "TSX", Commodity: "Silver", CurrentPrice: fp(3.10), DayChangePercent: fp(0), MarketCap: fp(50), Volume: nil, Week52High: fp(5.00), Week52Low: fp(3.00), ProjectCount: 0},
		{Ticker: "DDD", Name: "Dawson Lithium", Exchange: "CSE", Commodity: "Lithium", CurrentPrice: nil, DayChangePercent: nil, MarketCap: fp(20), Volume: fp(800), Week52High: nil, Week52Low: nil, ProjectCount: 3},
		{Ticker: "EEE", Name: "Eagle Gold Mines", Exchange: "TSX", Commodity: "Gold", CurrentPrice: fp(45.00), DayChangePercent: fp(-0.8), MarketCap: fp(900), Volume: fp(30000), Week52High: fp(46.00), Week52Low: fp(22.00), ProjectCount: 5},
	}
}

func TestFilterIsSubset(t *testing.T) {
	input := fixture()
	states := []FilterState{
		{Search: "gold"},
		{Commodities: []string{"Gold", "Silver"}},
		{Exchanges: []string{"TSXV"}},
		{MinPrice: fp(1)},
		{MaxMarketCap: fp(100)},
		{NearHigh: true},
		{NearLow: true},
		{HasProjects: true},
	}

	inInput := make(map[string]bool, len(input))
	for _, c := range input {
		inInput[c.Ticker] = true
	}

	for i, state := range states {
		out := Filter(input, state)
		if len(out) > len(input) {
			t.Fatalf("state %d: filter grew the set: %d > %d", i, len(out), len(input))
		}
		for _, c := range out {
			if !inInput[c.Ticker] {
				t.Fatalf("state %d: filter invented record %q", i, c.Ticker)
			}
		}
	}
}

func TestDisjointRangesYieldEmpty(t *testing.T) {
	out := Filter(fixture(), FilterState{MinPrice: fp(10), MaxPrice: fp(5)})
	if len(out) != 0 {
		t.Fatalf("expected empty result for disjoint price range, got %d rows", len(out))
	}
}

func TestNumericFilterExcludesNulls(t *testing.T) {
	// DDD has no price; any price bound must drop it
	out := Filter(fixture(), FilterState{MinPrice: fp(0)})
	for _, c := range out {
		if c.Ticker == "DDD" {
			t.Fatal("company with NULL price satisfied a price filter")
		}
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 rows with a price, got %d", len(out))
	}
}

func TestSearchMatchesTickerAndName(t *testing.T) {
	out := Filter(fixture(), FilterState{Search: "gold"})
	if len(out) != 2 {
		t.Fatalf("expected 2 gold matches, got %d", len(out))
	}
	for _, c := range out {
		if c.Ticker != "AAA" && c.Ticker != "EEE" {
			t.Fatalf("unexpected match %q", c.Ticker)
		}
	}

	out = Filter(fixture(), FilterState{Search: "bbb"})
	if len(out) != 1 || out[0].Ticker != "BBB" {
		t.Fatalf("ticker search failed: %+v", out)
	}
}

func TestNearHighAndLowProximity(t *testing.T) {
	out := Filter(fixture(), FilterState{NearHigh: true})
	// AAA: (13-12.5)/13*100 = 3.8%  -> in
	// EEE: (46-45)/46*100 = 2.2%    -> in
	// BBB: (1.2-0.45)/1.2*100 = 62% -> out
	// DDD: missing bounds           -> out
	if len(out) != 2 {
		t.Fatalf("near-high expected 2 rows, got %d", len(out))
	}

	out = Filter(fixture(), FilterState{NearLow: true})
	// BBB: (0.45-0.40)/0.40*100 = 12.5% -> out
	// CCC: (3.10-3.00)/3.00*100 = 3.3%  -> in
	if len(out) != 1 || out[0].Ticker != "CCC" {
		t.Fatalf("near-low expected only CCC, got %+v", out)
	}
}

func TestSortNullsAlwaysLast(t *testing.T) {
	companies := []models.Company{
		{Ticker: "AAA", MarketCap: fp(100)},
		{Ticker: "BBB", MarketCap: nil},
		{Ticker: "CCC", MarketCap: fp(50)},
	}

	Sort(companies, SortSpec{Column: "market_cap", Descending: true})
	got := []string{companies[0].Ticker, companies[1].Ticker, companies[2].Ticker}
	want := []string{"AAA", "CCC", "BBB"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending order: got %v, want %v", got, want)
		}
	}

	Sort(companies, SortSpec{Column: "market_cap", Descending: false})
	got = []string{companies[0].Ticker, companies[1].Ticker, companies[2].Ticker}
	want = []string{"CCC", "AAA", "BBB"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending order: got %v, want %v", got, want)
		}
	}
}

func TestOppositeSortReversesNonNullPortion(t *testing.T) {
	companies := fixture()
	Sort(companies, SortSpec{Column: "current_price", Descending: false})

	var ascending []string
	for _, c := range companies {
		if c.CurrentPrice != nil {
			ascending = append(ascending, c.Ticker)
		}
	}
	if companies[len(companies)-1].CurrentPrice != nil {
		t.Fatal("NULL price row should be last after ascending sort")
	}

	Sort(companies, SortSpec{Column: "current_price", Descending: true})
	var descending []string
	for _, c := range companies {
		if c.CurrentPrice != nil {
			descending = append(descending, c.Ticker)
		}
	}
	if companies[len(companies)-1].CurrentPrice != nil {
		t.Fatal("NULL price row should be last after descending sort")
	}

	if len(ascending) != len(descending) {
		t.Fatalf("non-null portion changed size: %d vs %d", len(ascending), len(descending))
	}
	for i := range ascending {
		if ascending[i] != descending[len(descending)-1-i] {
			t.Fatalf("descending is not the reverse of ascending: %v vs %v", ascending, descending)
		}
	}
}

func TestLocaleAwareStringSort(t *testing.T) {
	companies := []models.Company{
		{Ticker: "BBB", Name: "zinc one"},
		{Ticker: "AAA", Name: "Éléonore Gold"},
		{Ticker: "CCC", Name: "eagle ridge"},
	}
	Sort(companies, SortSpec{Column: "name", Descending: false})

	// Accented É collates with E, ahead of z
	if companies[2].Ticker != "BBB" {
		t.Fatalf("expected zinc one last, got order %s %s %s",
			companies[0].Ticker, companies[1].Ticker, companies[2].Ticker)
	}
}

func TestPaginationConcatReproducesFullSet(t *testing.T) {
	var companies []models.Company
	for i := 0; i < 60; i++ {
		companies = append(companies, models.Company{
			Ticker:       fmt.Sprintf("T%03d", i),
			CurrentPrice: fp(float64(60 - i)),
		})
	}

	full := Filter(companies, FilterState{})
	Sort(full, SortSpec{Column: "current_price", Descending: false})

	var concat []models.Company
	first := Apply(companies, FilterState{}, SortSpec{Column: "current_price"}, 1)
	if first.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 60 rows, got %d", first.TotalPages)
	}
	for page := 1; page <= first.TotalPages; page++ {
		r := Apply(companies, FilterState{}, SortSpec{Column: "current_price"}, page)
		concat = append(concat, r.Companies...)
	}

	if len(concat) != len(full) {
		t.Fatalf("concatenated pages have %d rows, want %d", len(concat), len(full))
	}
	for i := range full {
		if concat[i].Ticker != full[i].Ticker {
			t.Fatalf("row %d: got %q, want %q", i, concat[i].Ticker, full[i].Ticker)
		}
	}
}

func TestApplyClampsPage(t *testing.T) {
	r := Apply(fixture(), FilterState{}, SortSpec{}, 99)
	if r.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", r.Page)
	}
	r = Apply(fixture(), FilterState{}, SortSpec{}, -5)
	if r.Page != 1 {
		t.Fatalf("expected negative page clamped to 1, got %d", r.Page)
	}
}

func TestAggregates(t *testing.T) {
	r := Apply(fixture(), FilterState{}, SortSpec{}, 1)

	if r.MatchCount != 5 {
		t.Fatalf("match count: got %d, want 5", r.MatchCount)
	}
	// Market caps present: 100, 50, 20, 900 -> avg 267.5
	if r.AvgMarketCap != 267.5 {
		t.Fatalf("avg market cap: got %v, want 267.5", r.AvgMarketCap)
	}
	if r.Gainers != 1 {
		t.Fatalf("gainers: got %d, want 1", r.Gainers)
	}
	// Negative day change: BBB, EEE. CCC is exactly 0 and counts for neither.
	if r.Losers != 2 {
		t.Fatalf("losers: got %d, want 2", r.Losers)
	}
}

func TestHasProjectsFlag(t *testing.T) {
	out := Filter(fixture(), FilterState{HasProjects: true})
	for _, c := range out {
		if c.ProjectCount == 0 {
			t.Fatalf("company %q has no projects but passed the filter", c.Ticker)
		}
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 companies with projects, got %d", len(out))
	}
}
