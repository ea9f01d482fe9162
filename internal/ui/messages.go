package ui

import (
	"valu/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// advisorReplyMsg delivers a reply after the typing delay
type advisorReplyMsg struct {
	question string
	reply    string
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}
