package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealtimeURLStripsVersionedPath(t *testing.T) {
	cases := []struct {
		name string
		base string
		want string
	}{
		{"versioned https", "https://api.storehub.dev/api/v1", "wss://api.storehub.dev"},
		{"versioned trailing slash", "https://api.storehub.dev/api/v1/", "wss://api.storehub.dev"},
		{"versioned http", "http://localhost:8080/api/v1", "ws://localhost:8080"},
		{"bare host", "https://api.storehub.dev", "wss://api.storehub.dev"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := APIConfig{BaseURL: tc.base}
			require.Equal(t, tc.want, cfg.RealtimeURL())
		})
	}
}

func TestAPIConfigValidate(t *testing.T) {
	require.NoError(t, APIConfig{BaseURL: "https://api.storehub.dev/api/v1"}.validate())
	require.Error(t, APIConfig{BaseURL: "ftp://api.storehub.dev"}.validate())
	require.Error(t, APIConfig{BaseURL: "https://"}.validate())
}

func TestCredentialsEnsurePathKeepsOverride(t *testing.T) {
	cfg := CredentialsConfig{Path: "/tmp/creds.json"}
	cfg.ensurePath()
	require.Equal(t, "/tmp/creds.json", cfg.Path)
}
