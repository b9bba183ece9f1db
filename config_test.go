package treekit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name:    "full config",
			content: "root: workspace_7\njitter_length: 6\n",
			want:    Config{Root: "workspace_7", JitterLength: 6},
		},
		{
			name:    "empty file gets defaults",
			content: "",
			want:    Config{Root: "root", JitterLength: 4},
		},
		{
			name:    "jitter disabled",
			content: "disable_jitter: true\n",
			want:    Config{Root: "root", JitterLength: 0, DisableJitter: true},
		},
		{
			name:    "invalid root segment",
			content: "root: \"has space\"\n",
			wantErr: true,
		},
		{
			name:    "negative jitter",
			content: "jitter_length: -2\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "root: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			got, err := LoadConfig(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg = Config{Root: "a.b"}
	assert.Error(t, cfg.Validate(), "the root must be a single segment")

	cfg = Config{Root: "-bad-"}
	assert.Error(t, cfg.Validate())

	cfg = Config{JitterLength: -1}
	assert.Error(t, cfg.Validate())
}
