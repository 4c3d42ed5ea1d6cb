package bridge

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/nuckecy/sidekick/core/scene"
	"github.com/nuckecy/sidekick/core/snapshot"
)

// reloadDebounce coalesces bursts of file events into one reload.
const reloadDebounce = 100 * time.Millisecond

// selectionBuffer bounds the push channel. Pushes beyond the buffer are
// dropped; selection-changed is advisory and the UI re-requests on demand.
const selectionBuffer = 8

// =============================================================================
// DocumentHost
// =============================================================================

// DocumentHost serves the Host contract from a scene document file. It
// stands in for the live canvas runtime: the document's selection ids act
// as the canvas selection, and a file watcher turns edits to the document
// into selection-changed pushes.
type DocumentHost struct {
	path string

	mu  sync.Mutex
	doc *scene.Document

	changes chan Envelope[SelectionPayload]

	notifyMu      sync.Mutex
	notifications []string

	watcher   *fsnotify.Watcher
	stopOnce  sync.Once
	stopped   chan struct{}
	debouncer *time.Timer
}

// NewDocumentHost loads the scene document at path.
func NewDocumentHost(path string) (*DocumentHost, error) {
	doc, err := scene.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return &DocumentHost{
		path:    path,
		doc:     doc,
		changes: make(chan Envelope[SelectionPayload], selectionBuffer),
		stopped: make(chan struct{}),
	}, nil
}

// NewDocumentHostFromDocument wraps an already-parsed document. No file
// watching is available in this mode.
func NewDocumentHostFromDocument(doc *scene.Document) *DocumentHost {
	return &DocumentHost{
		doc:     doc,
		changes: make(chan Envelope[SelectionPayload], selectionBuffer),
		stopped: make(chan struct{}),
	}
}

// Document returns the underlying scene document.
func (h *DocumentHost) Document() *scene.Document {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.doc
}

// GetSelection snapshots the first selected node.
func (h *DocumentHost) GetSelection(_ context.Context) (*snapshot.InspectSnapshot, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	selected := h.doc.SelectedNodes()
	if len(selected) == 0 {
		return nil, 0, nil
	}
	snap := snapshot.Inspect(selected[0])
	if len(selected) > 1 {
		snap.AdditionalCount = len(selected) - 1
	}
	return snap, len(selected) - 1, nil
}

// SerializeToJSON deep-exports the document root.
func (h *DocumentHost) SerializeToJSON(_ context.Context) (*ExportPayload, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := snapshot.Serialize(h.doc.Root)
	return &ExportPayload{
		Root:      result.Root,
		NodeCount: result.NodeCount,
		Truncated: result.Truncated,
	}, nil
}

// Select replaces the selection, validating every id first.
func (h *DocumentHost) Select(_ context.Context, ids ...string) error {
	h.mu.Lock()
	for _, id := range ids {
		if _, ok := h.doc.FindByID(id); !ok {
			h.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
	}
	h.doc.Selection = ids
	h.mu.Unlock()

	h.pushSelection()
	return nil
}

// PlaceComponent appends a component instance under the first selected
// container (or the root) and moves the selection onto it.
func (h *DocumentHost) PlaceComponent(_ context.Context, placement PlaceComponentPayload) error {
	if placement.ComponentName == "" || placement.ComponentKey == "" {
		return fmt.Errorf("placement requires a component name and key")
	}

	h.mu.Lock()
	parent := h.doc.Root
	for _, n := range h.doc.SelectedNodes() {
		if _, ok := n.Children(); ok {
			parent = n
			break
		}
	}

	instance := &scene.DocumentNode{
		NodeID:   uuid.NewString(),
		NodeName: placement.ComponentName,
		NodeType: scene.TypeInstance,
	}
	instance.SetComponent(placement.ComponentName, placement.ComponentKey, placement.Variant)
	parent.ChildNodes = append(parent.ChildNodes, instance)
	h.doc.Selection = []string{instance.NodeID}
	h.mu.Unlock()

	h.pushSelection()
	return nil
}

// Notify records a transient message for the UI layer to display.
func (h *DocumentHost) Notify(_ context.Context, message string) error {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()
	h.notifications = append(h.notifications, message)
	return nil
}

// Notifications drains and returns the queued notification messages.
func (h *DocumentHost) Notifications() []string {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()
	out := h.notifications
	h.notifications = nil
	return out
}

// SelectionChanges returns the push channel.
func (h *DocumentHost) SelectionChanges() <-chan Envelope[SelectionPayload] {
	return h.changes
}

// Watch starts watching the backing file and reloading it on change. Each
// reload pushes a selection-changed message. Returns an error when the
// host was built from an in-memory document.
func (h *DocumentHost) Watch(ctx context.Context) error {
	if h.path == "" {
		return fmt.Errorf("document host has no backing file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory: editors commonly replace the file, which drops
	// a direct file watch.
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", h.path, err)
	}
	h.watcher = watcher

	go h.watchLoop(ctx)
	return nil
}

func (h *DocumentHost) watchLoop(ctx context.Context) {
	target := filepath.Clean(h.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.stopped:
			return
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			h.scheduleReload()
		case _, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// scheduleReload debounces reloads so editor write bursts load once.
func (h *DocumentHost) scheduleReload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.debouncer != nil {
		h.debouncer.Stop()
	}
	h.debouncer = time.AfterFunc(reloadDebounce, h.reload)
}

func (h *DocumentHost) reload() {
	doc, err := scene.LoadDocument(h.path)
	if err != nil {
		// Partial writes parse as garbage; keep the last good document.
		return
	}

	h.mu.Lock()
	h.doc = doc
	h.mu.Unlock()

	h.pushSelection()
}

// pushSelection emits a selection-changed envelope, dropping it when the
// buffer is full.
func (h *DocumentHost) pushSelection() {
	snap, additional, _ := h.GetSelection(context.Background())
	payload := SelectionPayload{Snapshot: snap, AdditionalCount: additional}

	select {
	case h.changes <- NewEnvelope(KindSelectionChanged, payload):
	default:
	}
}

// Close stops the watcher.
func (h *DocumentHost) Close() error {
	h.stopOnce.Do(func() {
		close(h.stopped)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
	return nil
}
