package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuckecy/sidekick/core/providers"
	"github.com/nuckecy/sidekick/core/scene"
)

func TestParseProviderArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    providers.ID
		wantErr bool
	}{
		{arg: "gemini", want: providers.IDGemini},
		{arg: "Anthropic", want: providers.IDAnthropic},
		{arg: "OPENAI", want: providers.IDOpenAI},
		{arg: "cohere", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			id, err := parseProviderArg(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

const inspectTestDocument = `{
	"root": {
		"id": "1",
		"name": "Screen",
		"type": "FRAME",
		"width": 375,
		"height": 812,
		"children": [
			{"id": "2", "name": "Card", "type": "FRAME", "width": 343, "height": 180}
		]
	},
	"selection": ["2"]
}`

func TestResolveInspectTarget(t *testing.T) {
	doc, err := scene.ParseDocument([]byte(inspectTestDocument))
	require.NoError(t, err)

	t.Run("selection", func(t *testing.T) {
		inspectNodeFlag = ""
		node, err := resolveInspectTarget(doc)
		require.NoError(t, err)
		require.NotNil(t, node)
		assert.Equal(t, "2", node.ID())
	})

	t.Run("explicit node", func(t *testing.T) {
		inspectNodeFlag = "1"
		defer func() { inspectNodeFlag = "" }()

		node, err := resolveInspectTarget(doc)
		require.NoError(t, err)
		require.NotNil(t, node)
		assert.Equal(t, "1", node.ID())
	})

	t.Run("unknown node", func(t *testing.T) {
		inspectNodeFlag = "99"
		defer func() { inspectNodeFlag = "" }()

		_, err := resolveInspectTarget(doc)
		assert.Error(t, err)
	})
}
