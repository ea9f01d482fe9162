// Package market builds and queries the marketplace listing.
package market

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"valu/internal/domain"
)

// AllCategories selects every item in Filter.
const AllCategories = "All"

const (
	jitterSpan = 500
	minPrice   = 100
)

// SortMode orders a listing.
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortPotential SortMode = "potential"
)

// SortModes lists every mode in menu order.
var SortModes = []SortMode{SortNewest, SortPriceAsc, SortPriceDesc, SortPotential}

// ParseSortMode accepts the mode names used on the command line.
func ParseSortMode(s string) (SortMode, error) {
	for _, m := range SortModes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// Label is the human readable name of the mode.
func (m SortMode) Label() string {
	switch m {
	case SortPriceAsc:
		return "Value: low to high"
	case SortPriceDesc:
		return "Value: high to low"
	case SortPotential:
		return "Highest potential"
	default:
		return "Newest"
	}
}

// Generate produces count listings by cycling through base and shifting the
// price and estimate of each by the same random amount in [-250, 250). Prices
// never drop below 100.
func Generate(base []domain.MarketItem, count int, rng *rand.Rand) []domain.MarketItem {
	if len(base) == 0 || count <= 0 {
		return nil
	}
	items := make([]domain.MarketItem, 0, count)
	for i := 0; i < count; i++ {
		item := base[i%len(base)]
		variation := rng.Intn(jitterSpan) - jitterSpan/2
		item.ID = i
		item.Price = max(minPrice, item.Price+variation)
		item.Est = max(minPrice, item.Est+variation)
		items = append(items, item)
	}
	return items
}

// Filter keeps items in category. AllCategories or "" keeps everything.
func Filter(items []domain.MarketItem, category string) []domain.MarketItem {
	out := make([]domain.MarketItem, 0, len(items))
	for _, item := range items {
		if category == "" || category == AllCategories || item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a sorted copy. Price modes order by estimated value. Equal
// keys keep their input order.
func Sort(items []domain.MarketItem, mode SortMode) []domain.MarketItem {
	out := append([]domain.MarketItem(nil), items...)
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Est < out[j].Est })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Est > out[j].Est })
	case SortPotential:
		sort.SliceStable(out, func(i, j int) bool {
			return Potential(out[i]) > Potential(out[j])
		})
	}
	return out
}

// Potential parses a listing's "+7.2%" annotation. Missing or malformed
// values count as zero.
func Potential(item domain.MarketItem) float64 {
	s := strings.TrimSpace(item.Potential)
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

type titles []domain.MarketItem

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// Search fuzzy-matches query against titles, best match first. An empty
// query returns items unchanged.
func Search(items []domain.MarketItem, query string) []domain.MarketItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]domain.MarketItem(nil), items...)
	}
	matches := fuzzy.FindFrom(query, titles(items))
	out := make([]domain.MarketItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}

// Categories returns AllCategories followed by each category in first-seen
// order.
func Categories(items []domain.MarketItem) []string {
	out := []string{AllCategories}
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Query selects a view of the listing.
type Query struct {
	Category string
	Sort     SortMode
	Search   string
}

// Apply filters, searches and sorts items. With SortNewest and a search the
// fuzzy ranking is kept.
func (q Query) Apply(items []domain.MarketItem) []domain.MarketItem {
	out := Filter(items, q.Category)
	out = Search(out, q.Search)
	return Sort(out, q.Sort)
}
