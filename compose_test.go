package memfile

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	src := fstest.MapFS{
		"docs/a.txt": {Data: []byte("from mapfs")},
		"empty":      {Data: nil},
	}
	d := newTestFS(t, DefaultOptions(WithPolicy(Never)))
	require.NoError(t, d.FulfillWith(Compose(src)))

	b, err := d.ReadFile("docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "from mapfs", string(b))
	assert.Equal(t, 1, d.Len())

	b, err = d.ReadFile("empty")
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = d.ReadFile("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestComposeBilly(t *testing.T) {
	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "b.txt", []byte("from billy"), 0o644))

	d := newTestFS(t, DefaultOptions(OpenFailureRate(0), CloseFailureRate(0)))
	require.NoError(t, d.FulfillWith(ComposeBilly(bfs)))

	h, err := d.Open("b.txt")
	require.NoError(t, err)
	buf := make([]byte, 32)
	n, err := h.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "from billy", string(buf[:n]))
	require.NoError(t, h.Close())

	_, err = d.Open("other.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFulfillOrder(t *testing.T) {
	var calls []string
	named := func(tag string, content []byte, err error) Fulfiller {
		return func(string) ([]byte, *time.Time, error) {
			calls = append(calls, tag)
			return content, nil, err
		}
	}

	d := newTestFS(t, DefaultOptions(WithPolicy(Never)))
	require.NoError(t, d.FulfillWith(
		named("first", []byte("first"), nil),
		named("second", nil, nil),
	))

	b, err := d.ReadFile("x")
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))
	assert.Equal(t, []string{"second", "first"}, calls)

	// cached: no more calls
	_, err = d.ReadFile("x")
	require.NoError(t, err)
	assert.Len(t, calls, 2)

	boom := errors.New("boom")
	require.NoError(t, d.FulfillWith(named("third", nil, boom)))
	_, err = d.Open("y")
	assert.ErrorIs(t, err, boom)
}

func TestStatFulfills(t *testing.T) {
	src := fstest.MapFS{"s.txt": {Data: []byte("abc")}}
	d := newTestFS(t, StatFulfills(true))
	require.NoError(t, d.FulfillWith(Compose(src)))

	info, err := d.Stat("s.txt")
	require.NoError(t, err)
	assert.EqualValues(t, 3, info.Size())
	assert.Equal(t, 1, d.Len())

	f, err := d.Get("s.txt")
	require.NoError(t, err)
	assert.Equal(t, StateClosed, f.State())
}

func TestDefaultOptionsValidated(t *testing.T) {
	_, err := NewFS(DefaultOptions(OpenFailureRate(-1)))
	assert.Error(t, err)
}

func TestComposeModTime(t *testing.T) {
	mt := time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)
	src := fstest.MapFS{"dated.txt": {Data: []byte("old"), ModTime: mt}}
	d := newTestFS(t, StatFulfills(true))
	require.NoError(t, d.FulfillWith(Compose(src)))

	info, err := d.Stat("dated.txt")
	require.NoError(t, err)
	assert.True(t, mt.Equal(info.ModTime()), "got %v", info.ModTime())

	// without a modtime the time of fulfillment is used
	before := time.Now()
	require.NoError(t, d.FulfillWith(func(string) ([]byte, *time.Time, error) {
		return []byte("new"), nil, nil
	}))
	info, err = d.Stat("fresh.txt")
	require.NoError(t, err)
	assert.False(t, info.ModTime().Before(before))
}
