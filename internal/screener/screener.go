/**
 * @description
 * In-memory screening pipeline for the stock screener.
 * Given the bulk company list (one fetch per request, at most a few hundred rows),
 * applies the active filter predicates, sorts, paginates and computes the
 * aggregate counters shown above the table.
 *
 * Filter semantics:
 * - All active predicates are ANDed; a row must satisfy every one.
 * - Numeric range filters exclude rows whose field is NULL (a listing with no
 *   price cannot satisfy a price filter).
 * - 52-week proximity: (high - price) / high * 100 <= 10, symmetric for the low.
 * - Sorting is single-column; NULLs always sort last regardless of direction.
 *
 * @dependencies
 * - golang.org/x/text/collate: locale-aware string comparison
 * - internal/models
 */

package screener

import (
	"sort"
	"strings"

	"github.com/resource-capital/backend/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the fixed number of rows per screener page
const PageSize = 25

// proximityThreshold is the percent distance used by the 52-week high/low filters
const proximityThreshold = 10.0

// FilterState mirrors the screener's filter panel. Pointer fields are inactive
// when nil; unparseable user input never reaches this struct (the HTTP boundary
// drops it), so a malformed bound means "no constraint" rather than "match nothing".
type FilterState struct {
	Search      string   `json:"search"`
	Commodities []string `json:"commodities"`
	Exchanges   []string `json:"exchanges"`

	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	MinMarketCap *float64 `json:"min_market_cap"`
	MaxMarketCap *float64 `json:"max_market_cap"`
	MinChange    *float64 `json:"min_change"`
	MaxChange    *float64 `json:"max_change"`
	MinVolume    *float64 `json:"min_volume"`
	MaxVolume    *float64 `json:"max_volume"`

	NearHigh    bool `json:"near_high"`
	NearLow     bool `json:"near_low"`
	HasProjects bool `json:"has_projects"`
}

// SortSpec selects the sort column and direction
type SortSpec struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending"`
}

// Result is one page of the filtered+sorted view plus aggregates over the full
// filtered set
type Result struct {
	Companies  []models.Company `json:"companies"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	MatchCount int              `json:"match_count"`

	AvgMarketCap float64 `json:"avg_market_cap"`
	Gainers      int     `json:"gainers"`
	Losers       int     `json:"losers"`
}

// Apply runs the full pipeline: filter, sort, aggregate, paginate.
// The input slice is never mutated.
func Apply(companies []models.Company, filters FilterState, sortSpec SortSpec, page int) Result {
	filtered := Filter(companies, filters)
	Sort(filtered, sortSpec)

	result := Result{
		MatchCount: len(filtered),
	}

	var capSum float64
	var capCount int
	for _, c := range filtered {
		if c.MarketCap != nil {
			capSum += *c.MarketCap
			capCount++
		}
		if c.DayChangePercent != nil {
			if *c.DayChangePercent > 0 {
				result.Gainers++
			} else if *c.DayChangePercent < 0 {
				result.Losers++
			}
		}
	}
	if capCount > 0 {
		result.AvgMarketCap = capSum / float64(capCount)
	}

	result.TotalPages = (len(filtered) + PageSize - 1) / PageSize
	if result.TotalPages == 0 {
		result.TotalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > result.TotalPages {
		page = result.TotalPages
	}
	result.Page = page

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	result.Companies = filtered[start:end]

	return result
}

// Filter returns the subset of companies satisfying every active predicate
func Filter(companies []models.Company, f FilterState) []models.Company {
	out := make([]models.Company, 0, len(companies))
	for _, c := range companies {
		if Matches(c, f) {
			out = append(out, c)
		}
	}
	return out
}

// Matches evaluates the filter state against one company
func Matches(c models.Company, f FilterState) bool {
	if f.Search != "" {
		needle := strings.ToLower(strings.TrimSpace(f.Search))
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Ticker), needle) &&
			!strings.Contains(strings.ToLower(c.Name), needle) {
			return false
		}
	}

	if len(f.Commodities) > 0 && !containsFold(f.Commodities, c.Commodity) {
		return false
	}
	if len(f.Exchanges) > 0 && !containsFold(f.Exchanges, c.Exchange) {
		return false
	}

	if !inRange(c.CurrentPrice, f.MinPrice, f.MaxPrice) {
		return false
	}
	if !inRange(c.MarketCap, f.MinMarketCap, f.MaxMarketCap) {
		return false
	}
	if !inRange(c.DayChangePercent, f.MinChange, f.MaxChange) {
		return false
	}
	if !inRange(c.Volume, f.MinVolume, f.MaxVolume) {
		return false
	}

	if f.NearHigh {
		if c.CurrentPrice == nil || c.Week52High == nil || *c.Week52High <= 0 {
			return false
		}
		if (*c.Week52High-*c.CurrentPrice)/(*c.Week52High)*100 > proximityThreshold {
			return false
		}
	}
	if f.NearLow {
		if c.CurrentPrice == nil || c.Week52Low == nil || *c.Week52Low <= 0 {
			return false
		}
		if (*c.CurrentPrice-*c.Week52Low)/(*c.Week52Low)*100 > proximityThreshold {
			return false
		}
	}

	if f.HasProjects && c.ProjectCount == 0 {
		return false
	}

	return true
}

// inRange checks a nullable field against optional min/max bounds.
// A nil field fails any active bound.
func inRange(value, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if value == nil {
		return false
	}
	if min != nil && *value < *min {
		return false
	}
	if max != nil && *value > *max {
		return false
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

// Sort orders companies in place by the requested column. String columns use
// locale-aware comparison; rows with a NULL sort key always land at the end.
func Sort(companies []models.Company, spec SortSpec) {
	if spec.Column == "" {
		return
	}

	if key := stringKey(spec.Column); key != nil {
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(companies, func(i, j int) bool {
			cmp := coll.CompareString(key(companies[i]), key(companies[j]))
			if spec.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
		return
	}

	key := numericKey(spec.Column)
	if key == nil {
		return
	}

	sort.SliceStable(companies, func(i, j int) bool {
		a, b := key(companies[i]), key(companies[j])
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false // NULLs stay last in both directions
		case b == nil:
			return true
		}
		if spec.Descending {
			return *a > *b
		}
		return *a < *b
	})
}

func stringKey(column string) func(models.Company) string {
	switch column {
	case "ticker":
		return func(c models.Company) string { return c.Ticker }
	case "name":
		return func(c models.Company) string { return c.Name }
	case "exchange":
		return func(c models.Company) string { return c.Exchange }
	case "commodity":
		return func(c models.Company) string { return c.Commodity }
	}
	return nil
}

func numericKey(column string) func(models.Company) *float64 {
	switch column {
	case "current_price":
		return func(c models.Company) *float64 { return c.CurrentPrice }
	case "day_change_percent":
		return func(c models.Company) *float64 { return c.DayChangePercent }
	case "market_cap":
		return func(c models.Company) *float64 { return c.MarketCap }
	case "volume":
		return func(c models.Company) *float64 { return c.Volume }
	case "week_52_high":
		return func(c models.Company) *float64 { return c.Week52High }
	case "week_52_low":
		return func(c models.Company) *float64 { return c.Week52Low }
	}
	return nil
}
