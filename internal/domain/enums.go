package domain

// WatchStatus represents the user's progress on a bookmark.
type WatchStatus string

const (
	WatchStatusUnwatched WatchStatus = "unwatched"
	WatchStatusWatching  WatchStatus = "watching"
	WatchStatusWatched   WatchStatus = "watched"
)

func (s WatchStatus) String() string { return string(s) }

func (s WatchStatus) IsValid() bool {
	switch s {
	case WatchStatusUnwatched, WatchStatusWatching, WatchStatusWatched:
		return true
	}
	return false
}

// EventAction is the kind of bookmark mutation recorded in the analytics log.
type EventAction string

const (
	EventActionCreate          EventAction = "create"
	EventActionUpdate          EventAction = "update"
	EventActionDelete          EventAction = "delete"
	EventActionGenerateSummary EventAction = "generate_summary"
)

// EventActionStatusUpdate builds the action label for a bulk status change,
// e.g. "update_status_watched".
func EventActionStatusUpdate(status WatchStatus) EventAction {
	return EventAction("update_status_" + string(status))
}

func (a EventAction) String() string { return string(a) }

// SelectorPricing is the smart-selector preference for the AI gateway:
// it picks a model automatically by quality, balance, or budget.
type SelectorPricing string

const (
	SelectorQuality SelectorPricing = "quality"
	SelectorBalance SelectorPricing = "balance"
	SelectorBudget  SelectorPricing = "budget"
)

func (p SelectorPricing) String() string { return string(p) }

func (p SelectorPricing) IsValid() bool {
	switch p {
	case SelectorQuality, SelectorBalance, SelectorBudget:
		return true
	}
	return false
}
