package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0.25, cfg.Matcher.FuzzyRatio)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
name: support-bot
definition: graphs/support.txt
matcher:
  fuzzy_ratio: 0.5
  max_distance: 2
responses:
  policy: random
  seed: "42"
  greet: true
log:
  level: debug
  format: json
store:
  driver: redis
  lock: true
  lock_ttl: 10
  redis:
    addr: redis:6379
    db: 3
    ttl: 24h
http:
  addr: 127.0.0.1:9000
  metrics: true
`))
	require.NoError(t, err)

	assert.Equal(t, "support-bot", cfg.Name)
	assert.Equal(t, "graphs/support.txt", cfg.Definition)
	assert.Equal(t, "avatar.svg", cfg.Avatar, "absent keys keep their defaults")
	assert.Equal(t, 0.5, cfg.Matcher.FuzzyRatio)
	assert.Equal(t, 2, cfg.Matcher.MaxDistance)
	assert.Equal(t, "random", cfg.Responses.Policy)
	assert.Equal(t, uint64(42), cfg.Responses.Seed)
	assert.True(t, cfg.Responses.Greet)
	assert.Equal(t, "Sorry, I have nothing to say about that.", cfg.Responses.Default)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.Metrics)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"Unknown Key", "colour: blue", "colour"},
		{"Bad YAML", "name: [", "failed to parse config"},
		{"Unknown Driver", "store: {driver: mongo}", "store.driver"},
		{"Unknown Policy", "responses: {policy: shuffle}", "unknown response policy"},
		{"Ratio Out Of Range", "matcher: {fuzzy_ratio: 2}", "fuzzy_ratio"},
		{"Negative Distance", "matcher: {max_distance: -1}", "max_distance"},
		{"Bad Level", "log: {level: loud}", "log.level"},
		{"Bad Format", "log: {format: xml}", "log.format"},
		{"Lock Without Redis", "store: {lock: true}", "requires the redis driver"},
		{"Empty Definition", `definition: ""`, "definition path is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// No file in the working directory: defaults.
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// An explicit path must exist.
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("name: from-file\n"), 0644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Name)

	require.NoError(t, os.WriteFile("bad.yaml", []byte("store: {driver: nope}\n"), 0644))
	_, err = Load("bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
