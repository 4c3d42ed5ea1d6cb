package bridge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuckecy/sidekick/core/scene"
)

const testDocument = `{
	"name": "Checkout",
	"selection": ["2"],
	"root": {
		"id": "1", "name": "Screen", "type": "FRAME",
		"width": 375, "height": 812,
		"children": [
			{"id": "2", "name": "Card", "type": "FRAME", "width": 327, "height": 180, "children": [
				{"id": "3", "name": "Title", "type": "TEXT", "width": 200, "height": 24,
				 "text": {"characters": "Order summary"}}
			]},
			{"id": "4", "name": "Pay button", "type": "INSTANCE", "width": 327, "height": 48,
			 "component": {"name": "Button", "key": "btn-key"}}
		]
	}
}`

func writeTestDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))
	return path
}

func newTestHost(t *testing.T) *DocumentHost {
	t.Helper()
	host, err := NewDocumentHost(writeTestDocument(t))
	require.NoError(t, err)
	t.Cleanup(func() { host.Close() })
	return host
}

func TestGetSelection(t *testing.T) {
	host := newTestHost(t)
	ctx := context.Background()

	snap, additional, err := host.GetSelection(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "2", snap.ID)
	assert.Equal(t, "Card", snap.Name)
	assert.Equal(t, 0, additional)
}

func TestGetSelectionEmpty(t *testing.T) {
	doc, err := scene.ParseDocument([]byte(`{"name": "d", "root": {"id": "1", "name": "r", "type": "FRAME"}}`))
	require.NoError(t, err)
	host := NewDocumentHostFromDocument(doc)
	defer host.Close()

	snap, additional, err := host.GetSelection(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, 0, additional)
}

func TestGetSelectionAdditionalCount(t *testing.T) {
	host := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, host.Select(ctx, "2", "4", "3"))
	snap, additional, err := host.GetSelection(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "2", snap.ID)
	assert.Equal(t, 2, additional)
	assert.Equal(t, 2, snap.AdditionalCount)
}

func TestSelectUnknownID(t *testing.T) {
	host := newTestHost(t)

	err := host.Select(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestSelectPushesChange(t *testing.T) {
	host := newTestHost(t)

	require.NoError(t, host.Select(context.Background(), "3"))

	select {
	case env := <-host.SelectionChanges():
		assert.Equal(t, KindSelectionChanged, env.Kind)
		assert.NotEmpty(t, env.ID)
		require.NotNil(t, env.Payload.Snapshot)
		assert.Equal(t, "3", env.Payload.Snapshot.ID)
	case <-time.After(time.Second):
		t.Fatal("no selection-changed push")
	}
}

func TestSerializeToJSON(t *testing.T) {
	host := newTestHost(t)

	export, err := host.SerializeToJSON(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, export.NodeCount)
	assert.False(t, export.Truncated)
	require.NotNil(t, export.Root.Node)
	assert.Equal(t, "Screen", export.Root.Node.Name)
}

func TestPlaceComponent(t *testing.T) {
	host := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, host.PlaceComponent(ctx, PlaceComponentPayload{
		ComponentName: "Button",
		ComponentKey:  "btn-key",
		Variant:       "variant=destructive",
	}))

	// Selection moved onto the new instance.
	snap, _, err := host.GetSelection(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Button", snap.Name)
	require.NotNil(t, snap.ComponentInfo)
	assert.Equal(t, "Button", snap.ComponentInfo.ComponentName)
	assert.Equal(t, "btn-key", snap.ComponentInfo.Key)
	assert.Equal(t, map[string]string{"variant": "destructive"}, snap.ComponentInfo.VariantProperties)

	// Placed under the originally selected frame.
	node, ok := host.Document().FindByID(snap.ID)
	require.True(t, ok)
	assert.Equal(t, scene.TypeInstance, node.Type())
}

func TestPlaceComponentValidation(t *testing.T) {
	host := newTestHost(t)

	err := host.PlaceComponent(context.Background(), PlaceComponentPayload{ComponentName: "Button"})
	assert.Error(t, err)
}

func TestNotifyQueue(t *testing.T) {
	host := newTestHost(t)
	ctx := context.Background()

	require.NoError(t, host.Notify(ctx, "first"))
	require.NoError(t, host.Notify(ctx, "second"))

	assert.Equal(t, []string{"first", "second"}, host.Notifications())
	assert.Empty(t, host.Notifications())
}

func TestReloadPicksUpFileChanges(t *testing.T) {
	path := writeTestDocument(t)
	host, err := NewDocumentHost(path)
	require.NoError(t, err)
	defer host.Close()

	updated := `{
		"name": "Checkout",
		"selection": ["4"],
		"root": {
			"id": "1", "name": "Screen", "type": "FRAME",
			"children": [
				{"id": "4", "name": "Pay button", "type": "INSTANCE",
				 "component": {"name": "Button", "key": "btn-key"}}
			]
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	host.reload()

	snap, _, err := host.GetSelection(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "4", snap.ID)
}

func TestReloadKeepsLastGoodDocumentOnParseError(t *testing.T) {
	path := writeTestDocument(t)
	host, err := NewDocumentHost(path)
	require.NoError(t, err)
	defer host.Close()

	require.NoError(t, os.WriteFile(path, []byte("{half a docu"), 0o644))
	host.reload()

	snap, _, err := host.GetSelection(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "2", snap.ID)
}

func TestWatchRequiresBackingFile(t *testing.T) {
	doc, err := scene.ParseDocument([]byte(`{"name": "d", "root": {"id": "1", "name": "r", "type": "FRAME"}}`))
	require.NoError(t, err)
	host := NewDocumentHostFromDocument(doc)
	defer host.Close()

	assert.Error(t, host.Watch(context.Background()))
}

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope(KindNotify, NotifyPayload{Message: "hi"})
	assert.Equal(t, KindNotify, env.Kind)
	assert.NotEmpty(t, env.ID)
	assert.False(t, env.Timestamp.IsZero())
	assert.Equal(t, "hi", env.Payload.Message)
}
