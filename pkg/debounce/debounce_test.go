package debounce_test

import (
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delay = 50 * time.Millisecond

func recv(t *testing.T, c <-chan string) string {
	t.Helper()
	select {
	case v := <-c:
		return v
	case <-time.After(10 * delay):
		t.Fatal("no value emitted")
		return ""
	}
}

func assertQuiet(t *testing.T, c <-chan string) {
	t.Helper()
	select {
	case v := <-c:
		t.Fatalf("unexpected value emitted: %q", v)
	case <-time.After(4 * delay):
	}
}

func TestDebouncer(t *testing.T) {

	t.Run("EmitsLastValueOnce", func(t *testing.T) {
		d := debounce.New[string](delay)
		defer d.Cancel()

		d.Push("i")
		d.Push("ip")
		d.Push("iph")
		d.Push("iphone")

		assert.Equal(t, "iphone", recv(t, d.C()))
		assertQuiet(t, d.C())
	})

	t.Run("PushRestartsDelay", func(t *testing.T) {
		d := debounce.New[string](delay)
		defer d.Cancel()

		d.Push("first")
		time.Sleep(delay / 2)
		d.Push("second")

		assert.Equal(t, "second", recv(t, d.C()))
	})

	t.Run("FlushResolvesImmediately", func(t *testing.T) {
		d := debounce.New[string](time.Minute)
		defer d.Cancel()

		d.Push("query")
		d.Flush()

		assert.Equal(t, "query", recv(t, d.C()))
	})

	t.Run("FlushWithoutPendingIsNoop", func(t *testing.T) {
		d := debounce.New[string](delay)
		defer d.Cancel()

		d.Flush()
		assertQuiet(t, d.C())
	})

	t.Run("CancelSuppressesPending", func(t *testing.T) {
		d := debounce.New[string](delay)

		d.Push("query")
		d.Cancel()

		assertQuiet(t, d.C())
	})

	t.Run("PushNearExpiryGetsFullDelay", func(t *testing.T) {
		d := debounce.New[string](delay)
		defer d.Cancel()

		for range 20 {
			d.Push("stale")
			// land the second push right around timer expiry
			time.Sleep(delay)
			d.Push("fresh")
			pushed := time.Now()

			for {
				v := recv(t, d.C())
				if v != "fresh" {
					continue
				}
				elapsed := time.Since(pushed)
				require.GreaterOrEqual(t, elapsed, delay-10*time.Millisecond,
					"value emitted before its own quiescent period",
				)
				break
			}
		}
	})

	t.Run("NewPeriodAfterEmit", func(t *testing.T) {
		d := debounce.New[string](delay)
		defer d.Cancel()

		d.Push("first")
		require.Equal(t, "first", recv(t, d.C()))

		d.Push("second")
		require.Equal(t, "second", recv(t, d.C()))
	})
}
