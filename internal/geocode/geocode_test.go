package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	country string
	err     error
	calls   int
}

func (s *stubGeocoder) LookupCountry(ctx context.Context, lat, lon float64) (string, error) {
	s.calls++
	return s.country, s.err
}

func TestCachePutGet(t *testing.T) {
	cache := NewCache(10)

	_, ok := cache.Get(35.68, 139.76)
	assert.False(t, ok)

	cache.Put(35.68, 139.76, "Japan")
	country, ok := cache.Get(35.68, 139.76)
	require.True(t, ok)
	assert.Equal(t, "Japan", country)

	// A nearby coordinate in the same grid cell hits the same entry.
	country, ok = cache.Get(35.6801, 139.7601)
	require.True(t, ok)
	assert.Equal(t, "Japan", country)
}

func TestCacheBounded(t *testing.T) {
	cache := NewCache(2)

	cache.Put(10.0, 10.0, "A")
	cache.Put(20.0, 20.0, "B")
	cache.Put(30.0, 30.0, "C") // dropped, cache full

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get(30.0, 30.0)
	assert.False(t, ok)

	// Existing cells can still be rewritten at capacity.
	cache.Put(10.0, 10.0, "A2")
	country, ok := cache.Get(10.0, 10.0)
	require.True(t, ok)
	assert.Equal(t, "A2", country)
}

func TestCachedGeocoderReusesLookups(t *testing.T) {
	stub := &stubGeocoder{country: "Finland"}
	cached := NewCachedGeocoder(stub, NewCache(10))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		country, err := cached.LookupCountry(ctx, 60.17, 24.94)
		require.NoError(t, err)
		assert.Equal(t, "Finland", country)
	}

	assert.Equal(t, 1, stub.calls)
}

func TestCachedGeocoderDoesNotCacheErrors(t *testing.T) {
	stub := &stubGeocoder{err: errors.New("timeout")}
	cached := NewCachedGeocoder(stub, NewCache(10))

	ctx := context.Background()
	_, err := cached.LookupCountry(ctx, 60.17, 24.94)
	assert.Error(t, err)
	_, err = cached.LookupCountry(ctx, 60.17, 24.94)
	assert.Error(t, err)

	assert.Equal(t, 2, stub.calls)
}

func TestHTTPGeocoderLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		w.Write([]byte(`{"address":{"country":"Japan"}}`))
	}))
	defer server.Close()

	g := NewHTTPGeocoder(server.URL, time.Second)
	country, err := g.LookupCountry(context.Background(), 35.68, 139.76)
	require.NoError(t, err)
	assert.Equal(t, "Japan", country)
}

func TestHTTPGeocoderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewHTTPGeocoder(server.URL, time.Second)
	_, err := g.LookupCountry(context.Background(), 35.68, 139.76)
	assert.Error(t, err)
}
