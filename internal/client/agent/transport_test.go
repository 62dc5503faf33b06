package agent

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPTransportInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/canister/asset-canister-id/query/getAsset", r.URL.Path)
		require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `["asset-1"]`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":{"id":"asset-1","price":250000000}}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, srv.Client())
	v, err := tr.Invoke(context.Background(), Request{
		CanisterID: "asset-canister-id",
		Method:     "getAsset",
		Kind:       KindQuery,
		Args:       []any{"asset-1"},
		Token:      "session-token",
	})
	require.NoError(t, err)

	unwrapped, err := unwrap(v)
	require.NoError(t, err)
	r, ok := unwrapped.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "asset-1", r["id"])
	require.Equal(t, float64(250000000), r["price"])
}

func TestHTTPTransportNoTokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, srv.Client())
	_, err := tr.Invoke(context.Background(), Request{CanisterID: "c", Method: "m", Kind: KindQuery})
	require.NoError(t, err)
}

func TestHTTPTransportErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such canister", http.StatusNotFound)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, srv.Client())
	_, err := tr.Invoke(context.Background(), Request{CanisterID: "bogus", Method: "m", Kind: KindCall})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no such canister")
}

func TestHTTPTransportNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	tr := NewHTTPTransport(srv.URL, nil)
	_, err := tr.Invoke(context.Background(), Request{CanisterID: "c", Method: "m", Kind: KindQuery})
	require.Error(t, err)
	require.True(t, IsNetworkError(err))
}
