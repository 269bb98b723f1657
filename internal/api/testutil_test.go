package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/recordstore"
	"vehicle-market-lab/internal/storage/memory"
)

func ptr[T any](v T) *T {
	return &v
}

func fixtureListings() []*domain.Listing {
	return []*domain.Listing{
		{Price: 6000, Odometer: 140000, ModelYear: 2006, Condition: "fair", Type: "sedan", Is4WD: ptr(false)},
		{Price: 11000, Odometer: 95000, ModelYear: 2010, Condition: "good", Type: "sedan", Is4WD: ptr(false)},
		{Price: 17500, Odometer: 61000, ModelYear: 2014, Condition: "good", Type: "SUV", Is4WD: ptr(true)},
		{Price: 23000, Odometer: 35000, ModelYear: 2016, Condition: "excellent", Type: "SUV", Is4WD: ptr(false)},
		{Price: 29000, Odometer: 18000, ModelYear: 2018, Condition: "excellent", Type: "truck", Is4WD: ptr(true)},
	}
}

// newTestServer returns an httptest server over fixture data.
func newTestServer(t *testing.T, listings []*domain.Listing) *httptest.Server {
	t.Helper()

	mem := memory.NewListingStore("fixture")
	require.NoError(t, mem.InsertBulk(context.Background(), listings))

	svc := dashboard.NewService(recordstore.NewCache(mem, nil), nil, nil)
	srv := httptest.NewServer(NewServer(svc, nil, Options{IncludeRowsLimit: 100}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, header http.Header) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
