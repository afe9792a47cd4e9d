package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost:8000"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-a", "http://localhost:8000"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash-starting token is not a value",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "multiple allowed flags keep order",
			args:         []string{"-a", "http://api", "-s", "memory", "--other", "x"},
			allowedFlags: []string{"-s", "-a"},
			want:         []string{"-a", "http://api", "-s", "memory"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigFilePath())
	})

	t.Run("long -config", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigFilePath())
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "/env/cfg.json")
		os.Args = []string{"testbin", "-c", "/flag/cfg.json"}
		assert.Equal(t, "/flag/cfg.json", ConfigFilePath())
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "/env/cfg.json")
		os.Args = []string{"testbin", "-x", "1"}
		assert.Equal(t, "/env/cfg.json", ConfigFilePath())
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "")
		os.Args = []string{"testbin"}
		assert.Empty(t, ConfigFilePath())
	})
}

func TestEnv(t *testing.T) {
	t.Setenv("FLAGX_TEST_SET", "value")
	t.Setenv("FLAGX_TEST_EMPTY", "")

	assert.Equal(t, "value", Env("FLAGX_TEST_SET", "def"))
	assert.Equal(t, "def", Env("FLAGX_TEST_EMPTY", "def"))
	assert.Equal(t, "def", Env("FLAGX_TEST_UNSET_12345", "def"))
}
