package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/pkg/adapters/memory"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graph = `
<TYPE:NODE><ID:0>
<TYPE:NODE><ID:1><ANSWER:one>
<TYPE:EDGE><ID:0><PARENT:0><CHILD:1><KEYWORD:hello>
<TYPE:EDGE><ID:1><PARENT:1><CHILD:0><KEYWORD:back>
`

func controller(t *testing.T, hooks domain.LifecycleHooks) *chatgraph.Controller {
	t.Helper()
	ctrl := chatgraph.New(chatgraph.WithLifecycleHooks(hooks))
	require.NoError(t, ctrl.Initialize(
		memory.NewDefinitionSource(graph),
		memory.NewAvatarSource("a.png", []byte{1}),
	))
	return ctrl
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	ctrl := controller(t, m.Hooks())

	for _, msg := range []string{"hello", "bakc", "nothing", "hellp"} {
		require.NoError(t, ctrl.RouteUserMessage(msg))
	}
	// "bakc" is two edits from "back", over its threshold of one.

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Matches.WithLabelValues("exact")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Matches.WithLabelValues("none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Relocations), "placement is not a relocation")
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Responses.WithLabelValues("false")))

	require.NoError(t, ctrl.RouteUserMessage("bac"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Matches.WithLabelValues("fuzzy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Relocations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Responses.WithLabelValues("true")), "root has no answers")
	assert.Equal(t, 1, testutil.CollectAndCount(m.Distance))

	n, err := testutil.GatherAndCount(reg, "chatgraph_matches_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestNewMetrics_Unregistered(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Hooks().OnMatch(&domain.MatchEvent{Kind: domain.MatchNone})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Matches.WithLabelValues("none")))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctrl := controller(t, observability.LogHooks(logger))

	require.NoError(t, ctrl.RouteUserMessage("hello secret"))

	out := buf.String()
	assert.Contains(t, out, "msg=agent_placed")
	assert.Contains(t, out, "msg=edge_matched")
	assert.Contains(t, out, "kind=exact")
	assert.Contains(t, out, "msg=agent_relocated")
	assert.Contains(t, out, "msg=response")
	assert.NotContains(t, out, "secret")
}
