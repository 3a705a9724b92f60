package captcha

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(DefaultTTL, DefaultSweepInterval, nil)
}

func TestCreateAndVerify(t *testing.T) {
	s := newTestStore(t)

	id := s.Create("AbCd")
	require.NotEmpty(t, id)

	// Comparison is case-insensitive in both directions
	require.NoError(t, s.Verify(id, "aBcD"))
}

func TestVerifyIsSingleUse(t *testing.T) {
	t.Run("after success", func(t *testing.T) {
		s := newTestStore(t)
		id := s.Create("wxyz")

		require.NoError(t, s.Verify(id, "wxyz"))
		require.ErrorIs(t, s.Verify(id, "wxyz"), ErrNotFound)
	})

	t.Run("after failure", func(t *testing.T) {
		s := newTestStore(t)
		id := s.Create("wxyz")

		require.ErrorIs(t, s.Verify(id, "wrong"), ErrMismatch)
		// A failed attempt burns the challenge too, so there is no
		// retry-until-success against one rendered image
		require.ErrorIs(t, s.Verify(id, "wxyz"), ErrNotFound)
	})
}

func TestVerifyUnknownID(t *testing.T) {
	s := newTestStore(t)
	require.ErrorIs(t, s.Verify("01J0000000000000000000000A", "abcd"), ErrNotFound)
}

func TestVerifyExpired(t *testing.T) {
	s := newTestStore(t)

	id := s.Create("abcd")

	// Move the clock past the TTL
	s.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Second) }

	require.ErrorIs(t, s.Verify(id, "abcd"), ErrExpired)
	// Expiry deletes the entry as a side effect
	require.ErrorIs(t, s.Verify(id, "abcd"), ErrNotFound)
}

func TestSweepDeletesExpired(t *testing.T) {
	s := newTestStore(t)

	s.Create("aaaa")
	s.Create("bbbb")
	require.Equal(t, 2, s.Len())

	s.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Second) }
	fresh := s.Create("cccc") // created at the shifted clock, still live

	s.sweep()
	require.Equal(t, 1, s.Len())
	require.ErrorIs(t, s.Verify(fresh, "wrong"), ErrMismatch)
}

func TestConcurrentVerifySingleWinner(t *testing.T) {
	s := newTestStore(t)
	id := s.Create("abcd")

	const goroutines = 32
	var wg sync.WaitGroup
	results := make(chan error, goroutines)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Verify(id, "abcd")
		}()
	}
	wg.Wait()
	close(results)

	var ok, notFound int
	for err := range results {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, ErrNotFound)
			notFound++
		}
	}

	require.Equal(t, 1, ok, "exactly one concurrent verify may succeed")
	require.Equal(t, goroutines-1, notFound)
}

func TestSweeperLifecycle(t *testing.T) {
	s := NewStore(time.Millisecond, 5*time.Millisecond, nil)
	s.Start()

	s.Create("aaaa")
	require.Eventually(t, func() bool { return s.Len() == 0 },
		time.Second, 5*time.Millisecond)

	s.Stop()
}

func TestNewText(t *testing.T) {
	text, err := NewText()
	require.NoError(t, err)
	require.Len(t, text, TextLength)
	for _, c := range text {
		require.NotContains(t, "0o1il", string(c))
	}
}
