package api

import (
	"kuesioner/app"
	"kuesioner/domain/core"
)

// SnapshotBroadcaster turns tally snapshots into hub events
type SnapshotBroadcaster struct {
	sseHub *SSEHub
	clock  core.Clock
}

// NewSnapshotBroadcaster creates a broadcaster publishing to sseHub
func NewSnapshotBroadcaster(sseHub *SSEHub) *SnapshotBroadcaster {
	return &SnapshotBroadcaster{sseHub: sseHub, clock: core.SystemClock}
}

// Publish sends the snapshot to every client. It matches the Poller's publish signature.
func (sb *SnapshotBroadcaster) Publish(snapshot app.Snapshot) {
	sb.sseHub.Broadcast(TallyEvent{
		ID:        core.NewID().String(),
		EventType: EventTally,
		Data:      snapshot,
		Timestamp: sb.clock(),
	})
}
