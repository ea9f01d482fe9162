package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Zones marks clickable regions while rendering and resolves mouse
// positions against the last scanned frame.
type Zones interface {
	Mark(id, v string) string
	Scan(v string) string
	InBounds(id string, msg tea.MouseMsg) bool
	Close()
}

// bubbleZones is the bubblezone-backed implementation
type bubbleZones struct {
	manager *zone.Manager
}

// NewZones creates a zone manager owned by one program
func NewZones() Zones {
	return &bubbleZones{manager: zone.New()}
}

func (z *bubbleZones) Mark(id, v string) string {
	return z.manager.Mark(id, v)
}

func (z *bubbleZones) Scan(v string) string {
	return z.manager.Scan(v)
}

func (z *bubbleZones) InBounds(id string, msg tea.MouseMsg) bool {
	info := z.manager.Get(id)
	return info != nil && info.InBounds(msg)
}

func (z *bubbleZones) Close() {
	z.manager.Close()
}
