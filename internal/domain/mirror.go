package domain

import "time"

type MirrorAction string

const (
	ActionPublished MirrorAction = "published"
	ActionFallback  MirrorAction = "fallback"
)

// MirrorRecord links a source post to its copy on the destination.
type MirrorRecord struct {
	ID            int
	SourceID      string
	DestinationID string
	Shape         string
	Action        MirrorAction
	Degradations  []string
	CreatedAt     time.Time
	RemovedAt     *time.Time
	RemovalReason string
}
