// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "tester/1.0", r.Header.Get("User-Agent"))
		json.NewEncoder(w).Encode(map[string]string{"value": "ok"})
	}))
	defer ts.Close()

	var out struct {
		Value string `json:"value"`
	}
	header := http.Header{"User-Agent": {"tester/1.0"}}
	err := GetJSON(context.Background(), ts.Client(), ts.URL, header, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestPostJSONRoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(map[string]int{"doubled": in["n"] * 2})
	}))
	defer ts.Close()

	var out struct {
		Doubled int `json:"doubled"`
	}
	err := PostJSON(context.Background(), ts.Client(), ts.URL, nil, map[string]int{"n": 21}, &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Doubled)
}

func TestNon200IsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSingleAttemptOnRateLimit(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_ = GetJSON(context.Background(), ts.Client(), ts.URL, nil, nil)
	assert.Equal(t, 1, hits, "helpers never retry")
}

func TestMalformedResponseIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	var out map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, &out)
	require.Error(t, err)
}
