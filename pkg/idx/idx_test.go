package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewIsMonotonic(t *testing.T) {
	t.Parallel()

	prev := New()
	for range 100 {
		next := New()
		require.Greater(t, next.String(), prev.String())
		prev = next
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("roundtrips generated ids", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects empty and malformed input", func(t *testing.T) {
		_, err := Parse("")
		require.ErrorIs(t, err, ErrInvalid)

		_, err = Parse("not-a-ulid")
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestTimeExtraction(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)

	require.True(t, Zero.Time().IsZero())
}
