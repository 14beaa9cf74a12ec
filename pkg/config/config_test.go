package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-social/pkg/logging"
	"github.com/dd0wney/cluso-social/pkg/social"
	"github.com/dd0wney/cluso-social/pkg/visualization"
)

const sample = `
namespace: handle
seeds: ["@alice", "bob"]
provider:
  kind: memory
  path: testdata/recon.yaml
analysis:
  sample_threshold: 200
  resolution: 0.8
  top: 5
  parallel: false
  keywords: [acme, launch]
export:
  dir: out
  compress: true
  layout: circular
server:
  addr: ":8080"
  shutdown_timeout: 2s
log_level: debug
`

func TestParse(t *testing.T) {
	t.Setenv(logging.LevelEnv, "")
	t.Setenv(DSNEnv, "")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, social.NamespaceHandle, cfg.NamespaceValue())
	assert.Equal(t, []string{"acme", "launch"}, cfg.Analysis.Keywords)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, visualization.KindCircular, cfg.LayoutKind())
	assert.Equal(t, logging.DebugLevel, cfg.Level())

	opts := cfg.AnalysisOptions()
	assert.Equal(t, 200, opts.Betweenness.SampleThreshold)
	assert.Equal(t, 0.8, opts.Louvain.Resolution)
	assert.False(t, opts.Parallel)
	// untouched keys keep their defaults
	assert.Equal(t, Default().Analysis.EigenMaxIterations, opts.Eigenvector.MaxIterations)

	ids, err := cfg.Identifiers()
	require.NoError(t, err)
	assert.Equal(t, []social.Identifier{social.HandleKey("alice"), social.HandleKey("bob")}, ids)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv(logging.LevelEnv, "ERROR")
	t.Setenv(DSNEnv, "postgres://recon@localhost/recon")

	cfg, err := Parse([]byte("seeds: ['1']\nprovider:\n  kind: postgres\n"))
	require.NoError(t, err)

	assert.Equal(t, logging.ErrorLevel, cfg.Level())
	assert.Equal(t, "postgres://recon@localhost/recon", cfg.Provider.DSN)
	assert.True(t, cfg.Analysis.Parallel)
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv(logging.LevelEnv, "")
	t.Setenv(DSNEnv, "")

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no seeds", "provider: {kind: memory, path: x}", "Seeds"},
		{"bad namespace", "namespace: email\nseeds: ['1']\nprovider: {kind: memory, path: x}", "Namespace"},
		{"bad provider", "seeds: ['1']\nprovider: {kind: twitter}", "Kind"},
		{"postgres without dsn", "seeds: ['1']\nprovider: {kind: postgres}", "provider.dsn"},
		{"memory without path", "seeds: ['1']\nprovider: {kind: memory}", "provider.path"},
		{"non-numeric id seed", "seeds: ['alice']\nprovider: {kind: memory, path: x}", "config.seeds"},
		{"bad layout", "seeds: ['1']\nprovider: {kind: memory, path: x}\nexport: {layout: spiral}", "export.layout"},
		{"zero tolerance", "seeds: ['1']\nprovider: {kind: memory, path: x}\nanalysis: {eigen_tolerance: -1}", "eigen_tolerance"},
		{"short shutdown", "seeds: ['1']\nprovider: {kind: memory, path: x}\nserver: {addr: ':1', shutdown_timeout: 1ms}", "shutdown_timeout"},
		{"malformed", "seeds: [", "parse config"},
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
	t.Setenv(logging.LevelEnv, "")
	t.Setenv(DSNEnv, "")

	path := filepath.Join(t.TempDir(), "social.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Export.Dir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
