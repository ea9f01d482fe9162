// Package fixtures holds the embedded mock data set.
package fixtures

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"valu/internal/domain"
)

//go:embed fixtures.yaml
var raw []byte

// Data is the decoded fixture file.
type Data struct {
	Assets       []domain.Asset       `yaml:"assets"`
	Transactions []domain.Transaction `yaml:"transactions"`
	History      []domain.ValuePoint  `yaml:"history"`
	Market       []domain.MarketItem  `yaml:"market"`
}

// Load decodes the embedded fixtures. Each call returns fresh slices.
func Load() (*Data, error) {
	return decode(raw)
}

// MustLoad is Load for callers that cannot proceed without fixtures.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

func decode(data []byte) (*Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	return &d, nil
}
