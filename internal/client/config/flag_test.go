package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr bool
	}{
		{
			name: "every flag",
			args: []string{"-a", "http://10.0.0.1:8000", "-g", "10.0.0.1:9090", "-s", "/tmp/ev", "-t", "3"},
			want: &Config{ServerURL: "http://10.0.0.1:8000", GRPCAddr: "10.0.0.1:9090", SessionDir: "/tmp/ev", RequestTimeout: 3 * time.Second},
		},
		{
			name: "double dash and inline values",
			args: []string{"--a=https://evento.example", "--t=7"},
			want: &Config{ServerURL: "https://evento.example", GRPCAddr: "g:1", SessionDir: "s", RequestTimeout: 7 * time.Second},
		},
		{
			name: "config and foreign flags left alone",
			args: []string{"-c", "cli.json", "-x", "1"},
			want: &Config{ServerURL: "http://u", GRPCAddr: "g:1", SessionDir: "s", RequestTimeout: 10 * time.Second},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			cfg := &Config{ServerURL: "http://u", GRPCAddr: "g:1", SessionDir: "s", RequestTimeout: 10 * time.Second}
			err := parseFlags(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}
}
