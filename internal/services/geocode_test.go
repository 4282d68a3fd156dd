package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGeocodeSearchParsesResults(t *testing.T) {
	require := require.New(t)

	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"lat": "28.6139", "lon": "77.2090", "display_name": "New Delhi, India"},
			{"lat": "broken", "lon": "77.0", "display_name": "skipped"}
		]`))
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.URL, "TestAgent/1.0")
	results := client.Search(context.Background(), "new delhi", 5)

	require.Equal("new delhi", gotQuery)
	require.Equal("TestAgent/1.0", gotAgent)
	require.Len(results, 1)
	require.InDelta(28.6139, results[0].Lat, 0.0001)
	require.InDelta(77.2090, results[0].Lng, 0.0001)
	require.Equal("New Delhi, India", results[0].DisplayName)
}

func TestGeocodeSearchShortQuerySkipsNetwork(t *testing.T) {
	require := require.New(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.URL, "TestAgent/1.0")
	for _, q := range []string{"", "a", "ab", "  ab  "} {
		require.Empty(client.Search(context.Background(), q, 5))
	}
	require.Equal(int32(0), hits.Load())
}

func TestGeocodeSearchDegradesOnServerError(t *testing.T) {
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.URL, "TestAgent/1.0")
	results := client.Search(context.Background(), "some place", 5)
	require.NotNil(results)
	require.Empty(results)
}

func TestGeocodeTopCandidate(t *testing.T) {
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal("1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"lat": "19.0760", "lon": "72.8777", "display_name": "Mumbai"}]`))
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.URL, "TestAgent/1.0")
	top := client.Geocode(context.Background(), "mumbai")
	require.NotNil(top)
	require.Equal("Mumbai", top.DisplayName)

	bad := NewGeocodeClient("http://127.0.0.1:0", "TestAgent/1.0")
	require.Nil(bad.Geocode(context.Background(), "anywhere"))
}

func TestGeocodeSuggesterCollapsesRapidQueries(t *testing.T) {
	require := require.New(t)

	queries := make(chan string, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewGeocodeSuggester(NewGeocodeClient(srv.URL, "TestAgent/1.0"))
	defer s.Stop()

	delivered := make(chan []GeocodeResult, 1)
	s.Query("mai", 5, func(r []GeocodeResult) { delivered <- r })
	s.Query("main st", 5, func(r []GeocodeResult) { delivered <- r })

	select {
	case <-delivered:
	case <-time.After(3 * time.Second):
		t.Fatal("debounced lookup never ran")
	}

	require.Equal("main st", <-queries)
	select {
	case q := <-queries:
		t.Fatalf("superseded query still ran: %q", q)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestGeocodeSuggesterStopCancelsPending(t *testing.T) {
	require := require.New(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewGeocodeSuggester(NewGeocodeClient(srv.URL, "TestAgent/1.0"))
	s.Query("somewhere", 5, func([]GeocodeResult) {})
	s.Stop()

	time.Sleep(GeocodeDebounce + 200*time.Millisecond)
	require.Equal(int32(0), hits.Load())
}
