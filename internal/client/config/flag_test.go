package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "network and idle", args: []string{"cmd", "-n", "ic", "-idle", "10"}, expectPanic: false,
			expected: &Config{Network: NetworkIC, Host: "https://icp0.io", IdleTimeout: 10 * time.Minute}},
		{name: "explicit host wins", args: []string{"cmd", "-n", "ic", "-host", "http://replica.test:9999"}, expectPanic: false,
			expected: &Config{Network: NetworkIC, Host: "http://replica.test:9999"}},
		{name: "incorrect idle timeout", args: []string{"cmd", "-idle", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
