package storage

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct {
	*MemoryKV
	err error
}

func (f failingKV) Set(string, string) error { return f.err }

func TestLoadCookieStoreEmpty(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	kv := NewMemoryKV()

	s, err := LoadCookieStore(kv, logger)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	_, written, _ := kv.Get(CookieKey)
	assert.False(t, written, "loading alone must not write")
}

func TestCookieStoreWritesThrough(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	kv := NewMemoryKV()

	s, err := LoadCookieStore(kv, logger)
	require.NoError(t, err)
	require.NoError(t, s.Set("session", "abc"))
	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.Delete("theme"))

	raw, ok, _ := kv.Get(CookieKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"session":"abc"}`, raw)

	reloaded, err := LoadCookieStore(kv, logger)
	require.NoError(t, err)
	assert.Equal(t, CookieBlob{"session": "abc"}, reloaded.Blob())
}

func TestCookieStoreClear(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(CookieKey, `{"a":"1","b":"2"}`))

	s, err := LoadCookieStore(kv, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())

	raw, _, _ := kv.Get(CookieKey)
	assert.Equal(t, "{}", raw)

	reloaded, err := LoadCookieStore(kv, logger)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Blob())
}

func TestCookieStoreBlobIsCopy(t *testing.T) {
	s, err := LoadCookieStore(NewMemoryKV(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Set("a", "1"))

	b := s.Blob()
	b["a"] = "changed"
	v, _ := s.Get("a")
	assert.Equal(t, "1", v)
}

func TestLoadCookieStoreCorrupt(t *testing.T) {
	for _, raw := range []string{"not json", `["a"]`, `{"a":1}`} {
		t.Run(raw, func(t *testing.T) {
			logger, hook := logtest.NewNullLogger()
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(CookieKey, raw))

			s, err := LoadCookieStore(kv, logger)
			require.NoError(t, err)
			assert.Equal(t, 0, s.Len())

			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

			repaired, _, _ := kv.Get(CookieKey)
			assert.Equal(t, "{}", repaired)
		})
	}
}

func TestLoadCookieStoreNull(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(CookieKey, "null"))

	s, err := LoadCookieStore(kv, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set("a", "1"))
	assert.Equal(t, 1, s.Len())
}

func TestCookieStoreSaveError(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	boom := errors.New("disk full")

	s, err := LoadCookieStore(failingKV{MemoryKV: NewMemoryKV(), err: boom}, logger)
	require.NoError(t, err)

	err = s.Set("a", "1")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

type flakyKV struct {
	*MemoryKV
	err error
}

func (f *flakyKV) Set(key, value string) error {
	if f.err != nil {
		return f.err
	}
	return f.MemoryKV.Set(key, value)
}

func TestCookieStoreFailedWriteKeepsBlob(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	kv := &flakyKV{MemoryKV: NewMemoryKV()}

	s, err := LoadCookieStore(kv, logger)
	require.NoError(t, err)
	require.NoError(t, s.Set("session", "abc"))

	kv.err = errors.New("disk full")
	require.Error(t, s.Set("theme", "dark"))
	require.Error(t, s.Delete("session"))
	require.Error(t, s.Clear())

	assert.Equal(t, CookieBlob{"session": "abc"}, s.Blob())
	raw, _, _ := kv.Get(CookieKey)
	assert.JSONEq(t, `{"session":"abc"}`, raw)
}
