package reconcile

import "github.com/yourusername/gridiron-prophet/internal/models"

// Transition is the action a reconciliation pass takes for one player's
// injury state.
type Transition string

const (
	// TransitionNew inserts a record for a player with no current injury.
	TransitionNew Transition = "new"
	// TransitionUpdated rewrites a record whose status or week moved.
	TransitionUpdated Transition = "updated"
	// TransitionUnchanged leaves an identical record untouched.
	TransitionUnchanged Transition = "unchanged"
	// TransitionResolved expires a current-week record absent from the snapshot.
	TransitionResolved Transition = "resolved"
)

// classify decides the transition for a snapshot row against the player's
// persisted record. A change to body part or notes alone is not a transition;
// only status and week drive writes.
func classify(existing *models.InjuryRecord, status models.InjuryStatus, week int) Transition {
	if existing == nil {
		return TransitionNew
	}
	if existing.Status != status || existing.Week != week {
		return TransitionUpdated
	}
	return TransitionUnchanged
}
