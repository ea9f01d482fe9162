package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valu/internal/domain"
	"valu/internal/fixtures"
)

func fixturePortfolio(t *testing.T) *Portfolio {
	t.Helper()
	d, err := fixtures.Load()
	require.NoError(t, err)
	return &Portfolio{Assets: d.Assets, Transactions: d.Transactions, History: d.History}
}

func TestPortfolio_Totals(t *testing.T) {
	p := fixturePortfolio(t)

	assert.Equal(t, 14100, p.TotalValue())
	assert.Equal(t, 12450, p.TotalCost())
	assert.Equal(t, 1650, p.Gain())
	assert.InDelta(t, 13.25, p.GainPercent(), 0.01)
}

func TestPortfolio_Empty(t *testing.T) {
	p := &Portfolio{}

	assert.Zero(t, p.TotalValue())
	assert.Zero(t, p.GainPercent())
	_, ok := p.BestPerformer()
	assert.False(t, ok)
	_, ok = p.MostValuable()
	assert.False(t, ok)
	assert.Empty(t, p.ByCategory())
	assert.True(t, p.Trend())

	slides := p.StatSlides()
	require.Len(t, slides, 4)
	assert.Equal(t, "$0", slides[0].Value)
	assert.Equal(t, "n/a", slides[2].Value)
}

func TestPortfolio_Rankings(t *testing.T) {
	p := fixturePortfolio(t)

	best, ok := p.BestPerformer()
	require.True(t, ok)
	assert.Equal(t, "Abstract Art Painting", best.Title)

	top, ok := p.MostValuable()
	require.True(t, ok)
	assert.Equal(t, "Designer Watch", top.Title)
}

func TestPortfolio_MostValuableTieKeepsFirst(t *testing.T) {
	p := &Portfolio{Assets: []domain.Asset{
		{Title: "a", CurrentValue: 10},
		{Title: "b", CurrentValue: 10},
	}}
	top, _ := p.MostValuable()
	assert.Equal(t, "a", top.Title)
}

func TestPortfolio_Find(t *testing.T) {
	p := fixturePortfolio(t)

	tests := []struct {
		text  string
		want  string
		found bool
	}{
		{"how is my DESIGNER WATCH doing", "Designer Watch", true},
		{"anything in music?", "Rare Vinyl Records", true},
		{"tell me about fashion", "Limited Edition Sneakers", true},
		{"what about stamps", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			a, ok := p.Find(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, a.Title)
		})
	}
}

func TestPortfolio_ByCategory(t *testing.T) {
	p := &Portfolio{Assets: []domain.Asset{
		{Category: "Art", CurrentValue: 100},
		{Category: "Music", CurrentValue: 50},
		{Category: "Art", CurrentValue: 25},
	}}
	assert.Equal(t, []Allocation{{"Art", 125}, {"Music", 50}}, p.ByCategory())
}

func TestPortfolio_Trend(t *testing.T) {
	p := fixturePortfolio(t)
	assert.True(t, p.Trend())
	assert.Equal(t, []float64{4500, 6800, 8200, 13200, 14600, 16100, 16850}, p.HistoryValues())

	p.History = []domain.ValuePoint{{Value: 10}, {Value: 9}}
	assert.False(t, p.Trend())
}

func TestPortfolio_StatSlides(t *testing.T) {
	slides := fixturePortfolio(t).StatSlides()
	require.Len(t, slides, 5)

	assert.Equal(t, domain.StatSlide{Label: "Total Value", Value: "$14,100", Detail: "+13.3% all time", Up: true}, slides[0])
	assert.Equal(t, "+$1,650", slides[1].Value)
	assert.Equal(t, "on $12,450 invested", slides[1].Detail)
	assert.Equal(t, "Abstract Art Painting", slides[2].Value)
	assert.Equal(t, "+41.2%", slides[2].Detail)
	assert.Equal(t, "6", slides[3].Value)
	assert.Equal(t, "Jewelry", slides[4].Value)
	assert.Equal(t, "$5,000 (35%)", slides[4].Detail)
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0", FormatUSD(0))
	assert.Equal(t, "$999", FormatUSD(999))
	assert.Equal(t, "$16,850", FormatUSD(16850))
	assert.Equal(t, "$1,234,567", FormatUSD(1234567))
	assert.Equal(t, "-$200", FormatUSD(-200))
	assert.Equal(t, "+$150", FormatSigned(150))
	assert.Equal(t, "-$2,400", FormatSigned(-2400))
	assert.Equal(t, "$0", FormatSigned(0))
}
