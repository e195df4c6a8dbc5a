package memfile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneIn(t *testing.T) {
	assert.Equal(t, 0.0001, OneIn(10_000))
	assert.Equal(t, 1.0, OneIn(1))
	assert.Zero(t, OneIn(0))
	assert.Zero(t, OneIn(-5))
}

func TestRatesValidate(t *testing.T) {
	tests := []struct {
		name  string
		rates Rates
		ok    bool
	}{
		{"Default", DefaultRates, true},
		{"Zero", Rates{}, true},
		{"One", Rates{Open: 1, Close: 1}, true},
		{"Negative", Rates{Open: -0.1}, false},
		{"TooLarge", Rates{Close: 1.5}, false},
		{"NaN", Rates{Open: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rates.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRatesBounds(t *testing.T) {
	for range 1000 {
		assert.False(t, Rates{}.Fail(OpOpen))
		assert.True(t, Rates{Open: 1, Close: 1}.Fail(OpClose))
	}
	assert.False(t, Rates{Open: 1, Close: 1}.Fail(Op("read")))
}

func TestSeededIsReproducible(t *testing.T) {
	r := Rates{Open: 0.5, Close: 0.5}
	a, b := r.Seeded(7), r.Seeded(7)
	for range 100 {
		assert.Equal(t, a.Fail(OpOpen), b.Fail(OpOpen))
	}
}

func TestAlways(t *testing.T) {
	p := Always(OpClose)
	assert.True(t, p.Fail(OpClose))
	assert.False(t, p.Fail(OpOpen))
	assert.False(t, Always().Fail(OpOpen))
	assert.False(t, Never.Fail(OpOpen))
}

func TestOptions(t *testing.T) {
	f, err := New("o", WithPolicy(Never), OpenFailureRate(1))
	require.NoError(t, err)
	_, err = Open(f)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	f, err = New("o", CloseFailureRate(1), OpenFailureRate(0))
	require.NoError(t, err)
	assert.Equal(t, Rates{Open: 0, Close: 1}, f.faults)

	_, err = New("o", OpenFailureRate(2))
	assert.Error(t, err)
	_, err = New("o", WithPolicy(Always()), CloseFailureRate(0.5))
	assert.Error(t, err)
	_, err = NewWithData("o", []byte("x"), WithPolicy(nil))
	assert.Error(t, err)
	_, err = New("o", WithPolicy(Rates{Open: -1}))
	assert.Error(t, err)
}
