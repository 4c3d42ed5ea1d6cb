// Package bridge defines the message contract between the core and the
// host canvas runtime, and a file-backed host implementation for running
// the core outside a live canvas.
package bridge

import (
	"time"

	"github.com/google/uuid"

	"github.com/nuckecy/sidekick/core/snapshot"
)

// =============================================================================
// Message Kinds
// =============================================================================

// Kind identifies a message type on the host channel. Request/response
// pairs are correlated by kind only — the protocol assumes at most one
// outstanding request per kind.
type Kind string

const (
	// UI -> host requests.
	KindGetSelection    Kind = "get-selection"
	KindSerializeToJSON Kind = "serialize-to-json"
	KindStorageGet      Kind = "storage-get"
	KindStorageSet      Kind = "storage-set"
	KindStorageDelete   Kind = "storage-delete"
	KindResize          Kind = "resize"
	KindNotify          Kind = "notify"
	KindPlaceComponent  Kind = "place-component"

	// Host -> UI responses and pushes.
	KindSelection             Kind = "selection"
	KindSelectionChanged      Kind = "selection-changed"
	KindSerializeToJSONResult Kind = "serialize-to-json-result"
	KindStorageGetResult      Kind = "storage-get-result"
	KindReady                 Kind = "ready"
)

// =============================================================================
// Envelope
// =============================================================================

// Envelope wraps a typed payload with the identity and timing metadata
// every channel message carries.
type Envelope[T any] struct {
	// ID is the unique message identifier.
	ID string `json:"id"`

	// Kind is the message type, the only correlation key on the channel.
	Kind Kind `json:"kind"`

	// Timestamp is when the message was created.
	Timestamp time.Time `json:"timestamp"`

	// Payload is the typed message content.
	Payload T `json:"payload"`
}

// NewEnvelope wraps a payload in a freshly stamped envelope.
func NewEnvelope[T any](kind Kind, payload T) Envelope[T] {
	return Envelope[T]{
		ID:        uuid.NewString(),
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// =============================================================================
// Payloads
// =============================================================================

// SelectionPayload answers a get-selection request. Snapshot is nil when
// nothing is selected; AdditionalCount reports how many further nodes are
// selected beyond the snapshotted one.
type SelectionPayload struct {
	Snapshot        *snapshot.InspectSnapshot `json:"snapshot"`
	AdditionalCount int                       `json:"additionalCount,omitempty"`
}

// ExportPayload answers a serialize-to-json request.
type ExportPayload struct {
	Root      snapshot.DeepChild `json:"root"`
	NodeCount int                `json:"nodeCount"`
	Truncated bool               `json:"truncated"`
}

// StoragePayload carries an opaque key-value operation.
type StoragePayload struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
	Found bool   `json:"found,omitempty"`
}

// ResizePayload asks the host to resize the plugin viewport.
type ResizePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NotifyPayload asks the host to show a transient notification.
type NotifyPayload struct {
	Message string `json:"message"`
}

// PlaceComponentPayload asks the host to instantiate a component on the
// canvas.
type PlaceComponentPayload struct {
	ComponentName string `json:"componentName"`
	ComponentKey  string `json:"componentKey"`
	Variant       string `json:"variant,omitempty"`
}
