package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"eTEats_web/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		BaseURL:     baseURL,
		Sources:     []string{"a.json", "b.json"},
		HTTPTimeout: time.Second,
		Store:       config.StoreMemory,
	}
}

func TestListAndClear(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"name": "` + r.URL.Path + `"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL + "/")
	require.NoError(t, newApp(&cfg).Run(context.Background(), []string{"recipes", "list"}))
	assert.Equal(t, int32(2), hits.Load())

	require.NoError(t, newApp(&cfg).Run(context.Background(), []string{"recipes", "clear"}))
}

func TestListFetchFailureStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cfg := testConfig(srv.URL + "/")
	assert.NoError(t, newApp(&cfg).Run(context.Background(), []string{"recipes", "list"}))
}

func TestInvalidStoreFlag(t *testing.T) {
	cfg := testConfig("http://localhost/")
	err := newApp(&cfg).Run(context.Background(), []string{"recipes", "--store", "redis", "clear"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store")
}
