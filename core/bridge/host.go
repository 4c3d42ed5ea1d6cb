package bridge

import (
	"context"
	"errors"

	"github.com/nuckecy/sidekick/core/snapshot"
)

// =============================================================================
// Host Interface
// =============================================================================

var (
	// ErrNodeNotFound indicates a selection id with no matching node.
	ErrNodeNotFound = errors.New("node not found in scene document")

	// ErrNoSelection indicates an operation that needs a selection ran
	// without one.
	ErrNoSelection = errors.New("nothing is selected")
)

// Host is the canvas runtime as seen from the core: it owns the scene
// graph and the selection, answers snapshot requests, and pushes
// selection-changed notifications. The core never mutates the scene
// except through PlaceComponent.
type Host interface {
	// GetSelection returns the shallow snapshot of the first selected node
	// (nil when nothing is selected) and the count of additionally
	// selected nodes.
	GetSelection(ctx context.Context) (*snapshot.InspectSnapshot, int, error)

	// SerializeToJSON deep-exports the whole scene under the budget.
	SerializeToJSON(ctx context.Context) (*ExportPayload, error)

	// Select replaces the current selection with the given node ids.
	Select(ctx context.Context, ids ...string) error

	// PlaceComponent instantiates a component on the canvas near the
	// current selection.
	PlaceComponent(ctx context.Context, placement PlaceComponentPayload) error

	// Notify shows a transient message to the user.
	Notify(ctx context.Context, message string) error

	// SelectionChanges returns the channel of host-pushed selection
	// snapshots. The payload snapshot is nil when selection clears.
	SelectionChanges() <-chan Envelope[SelectionPayload]

	// Close stops watchers and releases resources.
	Close() error
}
