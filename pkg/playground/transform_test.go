package playground

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTrace(t *testing.T) {
	result, err := RenderTrace(context.Background(), feverLogYAML, false)
	require.NoError(t, err)

	assert.Contains(t, result.Panel1, "kind: store")
	assert.Equal(t, "if (temperature > 37.5000) (=True):\n  return (temperature > 37.5000)", result.Panel2)
	assert.False(t, result.Partial)
	assert.Empty(t, result.Warnings)

	// Panel3 carries the same lines, modulo alignment padding.
	for _, line := range strings.Split(result.Panel3, "\n") {
		assert.True(t,
			strings.Contains(line, "if (temperature > 37.5000)") || strings.Contains(line, "return (temperature > 37.5000)"),
			"unexpected formatted line: %q", line)
	}
}

func TestRenderTrace_InvalidLog(t *testing.T) {
	_, err := RenderTrace(context.Background(), "events: []\n", false)
	require.Error(t, err)
}

const unsupportedOpLogYAML = `events:
  - seq: 0
    kind: store
    tainted: true
    slot: {id: 1, name: x}
    val: {id: 1, v: 3}
  - seq: 1
    kind: binop
    tainted: true
    op: matmul
    left: {id: 1, v: 3}
    right: {v: 2}
    val: {id: 2, v: 9}
  - seq: 2
    kind: return
    tainted: true
    val: {id: 2, v: 9}
`

func TestRenderTrace_DegradesByDefault(t *testing.T) {
	result, err := RenderTrace(context.Background(), unsupportedOpLogYAML, false)
	require.NoError(t, err)

	assert.True(t, result.Partial)
	assert.Equal(t, "return <unknown>", result.Panel2)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "unsupported-op")
}

func TestRenderTrace_StrictModeFails(t *testing.T) {
	_, err := RenderTrace(context.Background(), unsupportedOpLogYAML, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operation")
}
