package domain

import "time"

// Asset represents an item in the user's portfolio
type Asset struct {
	ID            int       `yaml:"id" json:"id" cbor:"id"`
	Title         string    `yaml:"title" json:"title" cbor:"title"`
	Category      string    `yaml:"category" json:"category" cbor:"category"`
	PurchasePrice int       `yaml:"purchase_price" json:"purchasePrice" cbor:"purchasePrice"`
	CurrentValue  int       `yaml:"current_value" json:"currentValue" cbor:"currentValue"`
	Change        string    `yaml:"change" json:"change" cbor:"change"`
	Insight       string    `yaml:"insight" json:"aiDesc" cbor:"aiDesc"`
	ChartData     []float64 `yaml:"chart" json:"chartData" cbor:"chartData"`
}

// Appreciated reports whether the asset is worth at least what was paid
func (a Asset) Appreciated() bool {
	return a.CurrentValue >= a.PurchasePrice
}

// MarketItem represents a marketplace listing
type MarketItem struct {
	ID        int    `yaml:"id" json:"id" cbor:"id"`
	Title     string `yaml:"title" json:"title" cbor:"title"`
	Category  string `yaml:"category" json:"category" cbor:"category"`
	Price     int    `yaml:"price" json:"price" cbor:"price"`
	Est       int    `yaml:"est" json:"est" cbor:"est"`
	Badge     string `yaml:"badge" json:"badge" cbor:"badge"`
	User      string `yaml:"user" json:"user" cbor:"user"`
	Potential string `yaml:"potential,omitempty" json:"potential,omitempty" cbor:"potential,omitempty"`
	IsNew     bool   `yaml:"is_new,omitempty" json:"isNew,omitempty" cbor:"isNew,omitempty"`
}

// Transaction represents an entry in the asset history log
type Transaction struct {
	Title  string `yaml:"title" json:"title"`
	Kind   string `yaml:"kind" json:"kind"`
	Amount int    `yaml:"amount" json:"amount"`
	Date   string `yaml:"date" json:"date"`
}

// ValuePoint is one sample of the portfolio value history
type ValuePoint struct {
	Date  time.Time `yaml:"date" json:"date"`
	Value float64   `yaml:"value" json:"value"`
}

// StatSlide is one card of the statistics carousel
type StatSlide struct {
	Label  string
	Value  string
	Detail string
	Up     bool
}
