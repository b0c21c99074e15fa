// internal/store/store_test.go
//
// Unit-tests for the in-memory application store.
//
// Run: go test ./internal/store -v

package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanizio/applyboard/internal/application"
)

func app(username string) application.Application {
	return application.Application{
		Username:        username,
		AboutYourself:   "writes tests for fun",
		WhyJoin:         "keeps the peace",
		Timezone:        "UTC+00:00",
		ActivityLevel:   "daily",
		Professionalism: 7,
		Joke:            "knock knock",
	}
}

func TestInsert_AssignsSequentialIDs(t *testing.T) {
	s := New()

	first := s.Insert(app("alice"))
	second := s.Insert(app("bob"))

	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
	require.False(t, first.CreatedAt.IsZero(), "CreatedAt not stamped")
	require.False(t, second.CreatedAt.Before(first.CreatedAt))
}

func TestInsert_IgnoresCallerIDAndTimestamp(t *testing.T) {
	s := New()

	in := app("alice")
	in.ID = 999

	out := s.Insert(in)
	require.Equal(t, int64(1), out.ID, "store must own ID assignment")
}

func TestInsert_ConcurrentIDsUnique(t *testing.T) {
	s := New()

	const n = 200
	var wg sync.WaitGroup
	ids := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids <- s.Insert(app(fmt.Sprintf("user-%d", i))).ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		require.GreaterOrEqual(t, id, int64(1))
		require.LessOrEqual(t, id, int64(n))
		seen[id] = true
	}
	require.Len(t, seen, n)
	require.Equal(t, n, s.Len())
}

func TestRecent_NewestFirst(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Insert(app(fmt.Sprintf("user-%d", i)))
	}

	got := s.Recent(3)
	require.Len(t, got, 3)
	require.Equal(t, int64(5), got[0].ID)
	require.Equal(t, int64(4), got[1].ID)
	require.Equal(t, int64(3), got[2].ID)
}

func TestRecent_Bounds(t *testing.T) {
	s := New()
	s.Insert(app("alice"))

	require.Empty(t, s.Recent(0))
	require.Empty(t, s.Recent(-3))
	require.Len(t, s.Recent(10), 1, "limit beyond size returns everything")
}

func TestByUsername_FiltersAndOrders(t *testing.T) {
	s := New()
	s.Insert(app("alice"))
	s.Insert(app("bob"))
	s.Insert(app("alice"))

	got := s.ByUsername("alice")
	require.Len(t, got, 2)
	require.Equal(t, int64(3), got[0].ID, "newest first")
	require.Equal(t, int64(1), got[1].ID)

	require.Empty(t, s.ByUsername("carol"))
}
