// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/metadata"
	"github.com/taibuivan/folio/internal/platform/resilience"
)

const openLibraryRecord = `{
  "ISBN:9780123456789": {
    "title": "Harbour Lights",
    "subtitle": "A Novel",
    "authors": [{"name": "Ann Lee", "url": "https://openlibrary.org/authors/OL1A"}, {"name": " Bo Chen "}],
    "identifiers": {"isbn_13": ["978-0-12-345678-9"], "isbn_10": ["012345678X", "0123456789"]},
    "publish_date": "June 2005"
  }
}`

func newProvider(t *testing.T, handler http.HandlerFunc) *metadata.OpenLibrary {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return metadata.NewOpenLibrary(server.URL+"/", resilience.HTTPClient{
		Client:      server.Client(),
		Breaker:     resilience.NewBreaker(10, 0.9, time.Second).WithTarget("openlibrary_test"),
		BaseBackoff: time.Millisecond,
		MaxAttempts: 2,
		Timeout:     time.Second,
	})
}

/*
TestOpenLibrary_Lookup extracts the record fields from a jscmd=data response.
*/
func TestOpenLibrary_Lookup(t *testing.T) {
	provider := newProvider(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/books", request.URL.Path)
		assert.Equal(t, "ISBN:9780123456789", request.URL.Query().Get("bibkeys"))
		assert.Equal(t, "data", request.URL.Query().Get("jscmd"))
		_, _ = io.WriteString(writer, openLibraryRecord)
	})

	record, err := provider.Lookup(context.Background(), "9780123456789")
	require.NoError(t, err)

	assert.Equal(t, "9780123456789", record.ISBN)
	assert.Equal(t, "Harbour Lights: A Novel", record.Title)
	assert.Equal(t, []string{"Ann Lee", "Bo Chen"}, record.Authors)
	require.NotNil(t, record.ISBN13)
	assert.Equal(t, "9780123456789", *record.ISBN13)
	require.NotNil(t, record.ISBN10)
	// "012345678X" drops its check character and is skipped for length.
	assert.Equal(t, "0123456789", *record.ISBN10)
	require.NotNil(t, record.PublicationYear)
	assert.Equal(t, 2005, *record.PublicationYear)
	assert.Equal(t, "06", *record.PublicationMonth)
}

func TestOpenLibrary_Lookup_NoRecord(t *testing.T) {
	provider := newProvider(t, func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(writer, `{}`)
	})

	_, err := provider.Lookup(context.Background(), "9780123456789")
	assert.ErrorIs(t, err, metadata.ErrNoRecord)
}

/*
TestOpenLibrary_Lookup_ServerError retries and then gives up.
*/
func TestOpenLibrary_Lookup_ServerError(t *testing.T) {
	var calls atomic.Int32
	provider := newProvider(t, func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writer.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := provider.Lookup(context.Background(), "9780123456789")
	require.Error(t, err)
	assert.NotErrorIs(t, err, metadata.ErrNoRecord)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenLibrary_Lookup_InvalidJSON(t *testing.T) {
	provider := newProvider(t, func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(writer, `<html>maintenance</html>`)
	})

	_, err := provider.Lookup(context.Background(), "9780123456789")
	require.Error(t, err)
	assert.NotErrorIs(t, err, metadata.ErrNoRecord)
}
