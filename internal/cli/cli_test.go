package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/chatgraph/internal/config"
	"github.com/aretw0/chatgraph/internal/logging"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answergraph = `# test graph
<TYPE:NODE><ID:0><ANSWER:Welcome! Ask about **go**.>
<TYPE:NODE><ID:1><ANSWER:Go has goroutines.>
<TYPE:NODE><ID:2><ANSWER:Orphan.>
<TYPE:NODE><ID:3><ANSWER:Orphan too.>
<TYPE:EDGE><ID:0><PARENT:0><CHILD:1><KEYWORD:go>
<TYPE:EDGE><ID:1><PARENT:1><CHILD:0><KEYWORD:back>
<TYPE:EDGE><ID:2><PARENT:2><CHILD:3><KEYWORD:x>
<TYPE:EDGE><ID:3><PARENT:3><CHILD:2><KEYWORD:y>
`

const avatarSVG = `<svg xmlns="http://www.w3.org/2000/svg"/>`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Definition = filepath.Join(dir, "answergraph.txt")
	cfg.Avatar = filepath.Join(dir, "avatar.svg")
	cfg.Store.Path = filepath.Join(dir, "sessions")
	cfg.Store.DSN = filepath.Join(dir, "sessions.db")
	require.NoError(t, os.WriteFile(cfg.Definition, []byte(answergraph), 0644))
	require.NoError(t, os.WriteFile(cfg.Avatar, []byte(avatarSVG), 0644))
	return cfg
}

func newApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNewApp_Drivers(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name  string
		setup func(*config.Config)
	}{
		{"Memory", func(c *config.Config) {}},
		{"File", func(c *config.Config) { c.Store.Driver = config.DriverFile }},
		{"SQLite", func(c *config.Config) { c.Store.Driver = config.DriverSQLite }},
		{"Redis With Lock", func(c *config.Config) {
			c.Store.Driver = config.DriverRedis
			c.Store.Redis.Addr = mr.Addr()
			c.Store.Lock = true
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.setup(&cfg)
			app := newApp(t, cfg)
			ctx := context.Background()

			reply, err := app.Manager.Send(ctx, "s1", "go")
			require.NoError(t, err)
			assert.Equal(t, "Go has goroutines.", reply.Text)

			snap, err := app.Store.Load(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, domain.NodeID(1), snap.NodeID)
		})
	}
}

func TestNewApp_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Definition = filepath.Join(t.TempDir(), "missing.txt")
	_, err := NewApp(context.Background(), cfg, logging.NewNop())
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)

	cfg = testConfig(t)
	cfg.Avatar = ""
	_, err = NewApp(context.Background(), cfg, logging.NewNop())
	assert.ErrorIs(t, err, domain.ErrAvatarLoad)

	cfg = testConfig(t)
	cfg.Store.Driver = config.DriverRedis
	cfg.Store.Redis.Addr = "127.0.0.1:1"
	_, err = NewApp(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "failed to reach redis")
}

func TestNewApp_Metrics(t *testing.T) {
	app := newApp(t, testConfig(t))
	_, err := app.Manager.Send(context.Background(), "s1", "go")
	require.NoError(t, err)

	families, err := app.Registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "chatgraph_matches_total")
}

func TestRunChat_Headless(t *testing.T) {
	cfg := testConfig(t)
	cfg.Responses.Greet = true
	app := newApp(t, cfg)

	var out bytes.Buffer
	err := RunChat(context.Background(), app, ChatOptions{
		SessionID: "cli",
		Headless:  true,
		Input:     strings.NewReader("go\n/where\nback\n/quit\nignored\n"),
		Output:    &out,
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome! Ask about **go**.\n"+
		"Go has goroutines.\n"+
		"at node 1 after 1 turns\n"+
		"Welcome! Ask about **go**.\n", out.String())
}

func TestRunChat_JSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.Responses.Greet = true
	app := newApp(t, cfg)

	var out bytes.Buffer
	require.NoError(t, RunChat(context.Background(), app, ChatOptions{
		SessionID: "json",
		JSON:      true,
		Input:     strings.NewReader(`{"text":"go"}` + "\n"),
		Output:    &out,
	}))

	dec := json.NewDecoder(&out)
	var greeting, reply domain.Reply
	require.NoError(t, dec.Decode(&greeting))
	require.NoError(t, dec.Decode(&reply))
	assert.False(t, dec.More())

	assert.Equal(t, "json", greeting.SessionID)
	assert.Equal(t, domain.NodeID(0), greeting.NodeID)
	assert.Equal(t, "Go has goroutines.", reply.Text)
	assert.Equal(t, domain.MatchExact, reply.Match)
	assert.Equal(t, 1, reply.Turns)
}

func TestRunChat_ResumeAndFresh(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = config.DriverFile
	app := newApp(t, cfg)

	var out bytes.Buffer
	require.NoError(t, RunChat(context.Background(), app, ChatOptions{
		SessionID: "resume", Headless: true, Input: strings.NewReader("go\n"), Output: &out,
	}))

	out.Reset()
	require.NoError(t, RunChat(context.Background(), app, ChatOptions{
		SessionID: "resume", Input: strings.NewReader("/where\n"), Output: &out,
	}))
	assert.Contains(t, out.String(), "Resuming session 'resume' at node 1 after 1 turns.")
	assert.Contains(t, out.String(), "at node 1 after 1 turns\n")

	out.Reset()
	require.NoError(t, RunChat(context.Background(), app, ChatOptions{
		SessionID: "resume", Fresh: true, Input: strings.NewReader("/where\n"), Output: &out,
	}))
	assert.Contains(t, out.String(), "Session 'resume' active.")
	assert.Contains(t, out.String(), "at node 0 (new session)")
}

func TestValidate(t *testing.T) {
	cfg := testConfig(t)

	var out bytes.Buffer
	require.NoError(t, Validate(&out, cfg, false))
	assert.Contains(t, out.String(), "4 nodes, 4 edges, root 0")
	assert.Contains(t, out.String(), "image/svg+xml")
	assert.Contains(t, out.String(), "[warning] node 2:")

	err := Validate(&bytes.Buffer{}, cfg, true)
	assert.ErrorIs(t, err, ErrValidationWarnings)
}

func TestValidate_ConstructionError(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Definition, []byte(`
<TYPE:NODE><ID:1>
<TYPE:NODE><ID:2>
<TYPE:NODE><ID:1>
`), 0644))

	err := Validate(&bytes.Buffer{}, cfg, false)
	assert.ErrorIs(t, err, domain.ErrDuplicateNodeID)
}

func TestExportGraph(t *testing.T) {
	cfg := testConfig(t)

	var out bytes.Buffer
	require.NoError(t, ExportGraph(&out, cfg, FormatMermaid, nil))
	assert.Contains(t, out.String(), "graph TD")

	out.Reset()
	require.NoError(t, ExportGraph(&out, cfg, FormatJSON, nil))
	assert.Contains(t, out.String(), `"root": 0`)

	out.Reset()
	require.NoError(t, ExportGraph(&out, cfg, FormatDefinition, nil))
	assert.True(t, strings.HasPrefix(out.String(), "<TYPE:NODE><ID:0><ANSWER:Welcome! Ask about **go**.>\n"))

	assert.Error(t, ExportGraph(&out, cfg, "dot", nil))
}
