package model

// EntityCount is the number of enabled rows for one entity kind.
type EntityCount struct {
	Kind  EntityKind
	Count int
}

// StatusItem is one line of the static system-status panel.
type StatusItem struct {
	Label string
	State string
	Tone  StatusTone
}

// ActivityItem is one entry of the static recent-activity list. Text is markdown.
type ActivityItem struct {
	When string
	Text string
}
