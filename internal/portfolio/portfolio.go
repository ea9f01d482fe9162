// Package portfolio computes the dashboard figures from the user's assets and
// persists the asset list.
package portfolio

import (
	"fmt"
	"strconv"
	"strings"

	"valu/internal/domain"
)

// Portfolio is the user's assets plus the read-only activity data shown
// alongside them.
type Portfolio struct {
	Assets       []domain.Asset
	Transactions []domain.Transaction
	History      []domain.ValuePoint
}

// Allocation is the total current value held in one category.
type Allocation struct {
	Category string
	Value    int
}

func (p *Portfolio) TotalValue() int {
	total := 0
	for _, a := range p.Assets {
		total += a.CurrentValue
	}
	return total
}

func (p *Portfolio) TotalCost() int {
	total := 0
	for _, a := range p.Assets {
		total += a.PurchasePrice
	}
	return total
}

// Gain is the unrealised gain across all assets.
func (p *Portfolio) Gain() int {
	return p.TotalValue() - p.TotalCost()
}

// GainPercent is Gain relative to TotalCost, or 0 for an empty portfolio.
func (p *Portfolio) GainPercent() float64 {
	cost := p.TotalCost()
	if cost == 0 {
		return 0
	}
	return float64(p.Gain()) / float64(cost) * 100
}

// BestPerformer returns the asset with the highest relative gain. Ties keep
// the earlier asset.
func (p *Portfolio) BestPerformer() (domain.Asset, bool) {
	var (
		best     domain.Asset
		bestRate float64
		found    bool
	)
	for _, a := range p.Assets {
		if a.PurchasePrice <= 0 {
			continue
		}
		rate := float64(a.CurrentValue-a.PurchasePrice) / float64(a.PurchasePrice)
		if !found || rate > bestRate {
			best, bestRate, found = a, rate, true
		}
	}
	return best, found
}

// MostValuable returns the asset with the highest current value. Ties keep
// the earlier asset.
func (p *Portfolio) MostValuable() (domain.Asset, bool) {
	if len(p.Assets) == 0 {
		return domain.Asset{}, false
	}
	best := p.Assets[0]
	for _, a := range p.Assets[1:] {
		if a.CurrentValue > best.CurrentValue {
			best = a
		}
	}
	return best, true
}

// Find returns the first asset whose title or category appears in text,
// ignoring case.
func (p *Portfolio) Find(text string) (domain.Asset, bool) {
	lower := strings.ToLower(text)
	for _, a := range p.Assets {
		if strings.Contains(lower, strings.ToLower(a.Title)) ||
			strings.Contains(lower, strings.ToLower(a.Category)) {
			return a, true
		}
	}
	return domain.Asset{}, false
}

// ByCategory totals current value per category in first-seen order.
func (p *Portfolio) ByCategory() []Allocation {
	var out []Allocation
	pos := make(map[string]int)
	for _, a := range p.Assets {
		i, ok := pos[a.Category]
		if !ok {
			i = len(out)
			pos[a.Category] = i
			out = append(out, Allocation{Category: a.Category})
		}
		out[i].Value += a.CurrentValue
	}
	return out
}

// Trend reports whether the value history ended at or above where it
// started. An empty history counts as up.
func (p *Portfolio) Trend() bool {
	if len(p.History) == 0 {
		return true
	}
	return p.History[len(p.History)-1].Value >= p.History[0].Value
}

// HistoryValues returns the history as a plain series for charting.
func (p *Portfolio) HistoryValues() []float64 {
	out := make([]float64, len(p.History))
	for i, v := range p.History {
		out[i] = v.Value
	}
	return out
}

// StatSlides builds the cards of the statistics carousel.
func (p *Portfolio) StatSlides() []domain.StatSlide {
	gain := p.Gain()
	slides := []domain.StatSlide{
		{
			Label:  "Total Value",
			Value:  FormatUSD(p.TotalValue()),
			Detail: fmt.Sprintf("%+.1f%% all time", p.GainPercent()),
			Up:     gain >= 0,
		},
		{
			Label:  "Total Gain",
			Value:  FormatSigned(gain),
			Detail: "on " + FormatUSD(p.TotalCost()) + " invested",
			Up:     gain >= 0,
		},
	}

	if best, ok := p.BestPerformer(); ok {
		slides = append(slides, domain.StatSlide{
			Label:  "Best Performer",
			Value:  best.Title,
			Detail: best.Change,
			Up:     best.Appreciated(),
		})
	} else {
		slides = append(slides, domain.StatSlide{Label: "Best Performer", Value: "n/a", Up: true})
	}

	categories := p.ByCategory()
	slides = append(slides, domain.StatSlide{
		Label:  "Assets",
		Value:  strconv.Itoa(len(p.Assets)),
		Detail: fmt.Sprintf("in %d categories", len(categories)),
		Up:     true,
	})

	if len(categories) > 0 {
		top := categories[0]
		for _, c := range categories[1:] {
			if c.Value > top.Value {
				top = c
			}
		}
		share := 0.0
		if total := p.TotalValue(); total > 0 {
			share = float64(top.Value) / float64(total) * 100
		}
		slides = append(slides, domain.StatSlide{
			Label:  "Top Category",
			Value:  top.Category,
			Detail: fmt.Sprintf("%s (%.0f%%)", FormatUSD(top.Value), share),
			Up:     true,
		})
	}
	return slides
}
