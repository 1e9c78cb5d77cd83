package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSetGet(t *testing.T) {
	st := openTestStore(t)

	_, ok, err := st.Get("lotto", "lastRound")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.Set("lotto", "lastRound", "1101"))

	value, ok, err := st.Get("lotto", "lastRound")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1101", value)

	// 덮어쓰기
	require.NoError(t, st.Set("lotto", "lastRound", "1102"))
	value, ok, err = st.Get("lotto", "lastRound")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1102", value)
}

func TestNamespaceIsolation(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.Set("lotto", "key", "a"))
	require.NoError(t, st.Set("other", "key", "b"))

	value, _, err := st.Get("lotto", "key")
	require.NoError(t, err)
	require.Equal(t, "a", value)

	value, _, err = st.Get("other", "key")
	require.NoError(t, err)
	require.Equal(t, "b", value)
}

func TestHas(t *testing.T) {
	st := openTestStore(t)

	ok, err := st.Has("lotto", "buyRounds.1101.tester")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.Set("lotto", "buyRounds.1101.tester", "[]"))

	ok, err = st.Has("lotto", "buyRounds.1101.tester")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	st := openTestStore(t)

	games := [][]int{
		{3, 7, 15, 22, 30, 41},
		{1, 2, 3, 4, 5, 6},
	}
	require.NoError(t, st.SetJSON("lotto", "buyRounds.1101.tester", games))

	var loaded [][]int
	ok, err := st.GetJSON("lotto", "buyRounds.1101.tester", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, games, loaded)

	// 없는 키는 false를 반환하고 대상은 건드리지 않습니다
	var missing [][]int
	ok, err = st.GetJSON("lotto", "buyRounds.9999.tester", &missing)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, missing)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.db")

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set("lotto", "key", "value"))
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("lotto", "lastBuyRound", "1101"))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	value, ok, err := st.Get("lotto", "lastBuyRound")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1101", value)
}
