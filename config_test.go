package memfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRates(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Rates
		err  bool
	}{
		{"Empty", "", DefaultRates, false},
		{"Both", "openFailureRate: 0.5\ncloseFailureRate: 0.25\n", Rates{Open: 0.5, Close: 0.25}, false},
		{"OpenOnly", "openFailureRate: 0", Rates{Open: 0, Close: DefaultRates.Close}, false},
		{"JSON", `{"closeFailureRate": 1}`, Rates{Open: DefaultRates.Open, Close: 1}, false},
		{"OutOfRange", "openFailureRate: 3", Rates{}, true},
		{"UnknownKey", "openRate: 0.1", Rates{}, true},
		{"Garbage", "openFailureRate: [", Rates{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRates([]byte(tt.doc))
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRates(t *testing.T) {
	p := filepath.Join(t.TempDir(), "faults.yaml")
	require.NoError(t, os.WriteFile(p, []byte("closeFailureRate: 0.001\n"), 0o644))

	got, err := LoadRates(p)
	require.NoError(t, err)
	assert.Equal(t, Rates{Open: DefaultRates.Open, Close: 0.001}, got)

	_, err = LoadRates(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
