package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	scrapererrors "sjsage522/contactscraper/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestFetchSuccessFirstAttempt(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	log := NewMockLogger()
	sleeper := &MockSleeper{}
	fetcher := NewFetcher(testPolicy(), log).WithSleep(sleeper.Sleep)

	body, err := fetcher.Fetch(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "ok")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Empty(t, sleeper.durations)
	assert.Equal(t, 1, log.Count("Status code: 200"))
}

func TestFetchAlways503(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	log := NewMockLogger()
	sleeper := &MockSleeper{}
	fetcher := NewFetcher(testPolicy(), log).WithSleep(sleeper.Sleep)

	body, err := fetcher.Fetch(context.Background(), server.URL)
	assert.Nil(t, body)
	assert.True(t, scrapererrors.IsType(err, scrapererrors.ErrorTypeExhausted))

	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
	assert.Equal(t, 5, log.Count("Requesting URL:"))
	assert.Equal(t, 5, log.Count("Non-200 response: 503"))
	assert.Equal(t, "!!! FINAL FAILURE: Could not fetch page even after retries.", log.Last())

	// a pause follows every failed attempt, the last one included
	assert.Len(t, sleeper.durations, 5)
	for _, d := range sleeper.durations {
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 3*time.Second)
	}
}

func TestFetchRecoversAfterFailures(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.WriteHeader(http.StatusNotFound)
		case 2:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte("third time lucky"))
		}
	}))
	defer server.Close()

	sleeper := &MockSleeper{}
	fetcher := NewFetcher(testPolicy(), NewMockLogger()).WithSleep(sleeper.Sleep)

	body, err := fetcher.Fetch(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Equal(t, "third time lucky", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Len(t, sleeper.durations, 2)
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	log := NewMockLogger()
	sleeper := &MockSleeper{}
	fetcher := NewFetcher(testPolicy(), log).WithSleep(sleeper.Sleep)

	_, err := fetcher.Fetch(context.Background(), url)
	assert.True(t, scrapererrors.IsType(err, scrapererrors.ErrorTypeExhausted))
	assert.Equal(t, 5, log.Count("Request failed:"))
	assert.Equal(t, 0, log.Count("Status code:"))
	assert.Len(t, sleeper.durations, 5)
}

func TestFetchTimeoutIsSoftFailure(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			time.Sleep(300 * time.Millisecond)
		}
		w.Write([]byte("late"))
	}))
	defer server.Close()

	policy := testPolicy()
	policy.Timeout = 100 * time.Millisecond
	sleeper := &MockSleeper{}
	fetcher := NewFetcher(policy, NewMockLogger()).WithSleep(sleeper.Sleep)

	body, err := fetcher.Fetch(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Equal(t, "late", string(body))
	assert.Len(t, sleeper.durations, 1)
}

func TestFetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sleeps := 0
	fetcher := NewFetcher(testPolicy(), NewMockLogger()).WithSleep(func(ctx context.Context, d time.Duration) error {
		sleeps++
		cancel()
		return ctx.Err()
	})

	_, err := fetcher.Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sleeps)
}
