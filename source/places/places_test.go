package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/source"
)

var dest = schema.DestinationCandidate{Name: "Lisbon", Country: "Portugal"}

const fullBody = `{"results": [
	{"name": "Belém Tower", "category": "attraction", "lat": 38.69, "lng": -9.22},
	{"name": "Jerónimos Monastery", "category": "sight", "lat": 38.70, "lng": -9.21},
	{"name": "Time Out Market", "category": "restaurant", "lat": 38.71, "lng": -9.15},
	{"name": "Hotel Avenida", "category": "lodging", "lat": 38.72, "lng": -9.14}
]}`

func TestFetchOk(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/search", r.URL.Path)
		assert.Equal(t, "Lisbon, Portugal", r.URL.Query().Get("q"))
		assert.Equal(t, "beach,history", r.URL.Query().Get("interests"))
		fmt.Fprint(w, fullBody)
	}))
	defer srv.Close()

	adapter := New(WithBaseURL(srv.URL))
	res := adapter.Fetch(context.Background(), dest, []string{"beach", "history"})
	require.True(t, res.OK())

	info, _ := res.Value()
	require.Len(t, info.Places, 4)
	byCat := info.ByCategory()
	assert.Len(t, byCat[schema.PlaceAttraction], 2)
	assert.Len(t, byCat[schema.PlaceFood], 1)
	assert.Len(t, byCat[schema.PlaceLodging], 1)
}

func TestFetchDegraded(t *testing.T) {
	t.Parallel()

	t.Run("unknown categories dropped", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"results": [
				{"name": "Belém Tower", "category": "attraction", "lat": 38.69, "lng": -9.22},
				{"name": "Cable Car", "category": "transport", "lat": 38.76, "lng": -9.09},
				{"name": "Time Out Market", "category": "food", "lat": 38.71, "lng": -9.15},
				{"name": "Hotel Avenida", "category": "hotel", "lat": 38.72, "lng": -9.14}
			]}`)
		}))
		defer srv.Close()

		adapter := New(WithBaseURL(srv.URL))
		res := adapter.Fetch(context.Background(), dest, nil)
		require.True(t, res.Degraded())
		info, _ := res.Value()
		assert.Len(t, info.Places, 3)
	})

	t.Run("below minimum viable count", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"results": [{"name": "Belém Tower", "category": "attraction", "lat": 38.69, "lng": -9.22}]}`)
		}))
		defer srv.Close()

		adapter := New(WithBaseURL(srv.URL))
		res := adapter.Fetch(context.Background(), dest, nil)
		require.True(t, res.Degraded())
		assert.Contains(t, res.Reason(), "1 place")
	})

	t.Run("empty result set", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"results": []}`)
		}))
		defer srv.Close()

		adapter := New(WithBaseURL(srv.URL))
		res := adapter.Fetch(context.Background(), dest, nil)
		require.True(t, res.Degraded())
		info, ok := res.Value()
		require.True(t, ok)
		assert.Empty(t, info.Places)
	})
}

func TestFetchFailures(t *testing.T) {
	t.Parallel()

	t.Run("missing results field", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"error": "bad request"}`)
		}))
		defer srv.Close()

		adapter := New(WithBaseURL(srv.URL))
		res := adapter.Fetch(context.Background(), dest, nil)
		require.True(t, res.Failed())
		assert.Equal(t, source.MalformedResponse, res.Kind())
	})

	t.Run("throttled", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		adapter := New(WithBaseURL(srv.URL))
		res := adapter.Fetch(context.Background(), dest, nil)
		require.True(t, res.Failed())
		assert.Equal(t, source.RateLimited, res.Kind())
	})
}
