package scrape_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, scrape.DefaultRetryDelays(3, time.Second))
	assert.Empty(t, scrape.DefaultRetryDelays(0, time.Second))
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := scrape.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", bisscrape.Errorf(bisscrape.EFETCH, "timeout")
			}
			return "ok", nil
		}

		html, err := scrape.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when attempts are exhausted", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("boom")
		}

		_, err := scrape.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, []time.Duration{0})

		require.EqualError(t, err, "boom")
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry login gates", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", bisscrape.Errorf(bisscrape.EAUTH, "login required")
		}

		_, err := scrape.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0, 0})

		assert.True(t, bisscrape.NeedsInteractiveAuth(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry invalid URLs", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", bisscrape.Errorf(bisscrape.EINVALID, "bad url")
		}

		_, err := scrape.FetchWithRetry(context.Background(), "::", fetch, nil, []time.Duration{0, 0})

		assert.Equal(t, bisscrape.EINVALID, bisscrape.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", bisscrape.Errorf(bisscrape.EFETCH, "canceled")
		}

		_, err := scrape.FetchWithRetry(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
