package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep     EventType = "step"
	EventOutcome  EventType = "outcome"
	EventTapeGrow EventType = "tape_grow"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"` // Program name, when known
}

// StepEvent describes one successful transition.
type StepEvent struct {
	EventBase
	Step  int       `json:"step"`
	From  StateID   `json:"from"`
	To    StateID   `json:"to"`
	Read  Symbol    `json:"read"`
	Write Symbol    `json:"write"`
	Move  Direction `json:"move"`
	Head  int       `json:"head"` // Head position after the move
}

// OutcomeEvent is emitted when a step or run ends in a terminal or budget outcome.
type OutcomeEvent struct {
	EventBase
	Outcome Outcome `json:"outcome"`
	State   StateID `json:"state"`
}

// Side is the tape end that grew.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// GrowthEvent records a tape extension.
type GrowthEvent struct {
	EventBase
	Side  Side `json:"side"`
	Cells int  `json:"cells"`
	Len   int  `json:"len"` // Materialized length after growth
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep     func(*StepEvent)
	OnOutcome  func(*OutcomeEvent)
	OnTapeGrow func(*GrowthEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(e *StepEvent) {
			if h.OnStep != nil {
				h.OnStep(e)
			}
			if other.OnStep != nil {
				other.OnStep(e)
			}
		},
		OnOutcome: func(e *OutcomeEvent) {
			if h.OnOutcome != nil {
				h.OnOutcome(e)
			}
			if other.OnOutcome != nil {
				other.OnOutcome(e)
			}
		},
		OnTapeGrow: func(e *GrowthEvent) {
			if h.OnTapeGrow != nil {
				h.OnTapeGrow(e)
			}
			if other.OnTapeGrow != nil {
				other.OnTapeGrow(e)
			}
		},
	}
}
