// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/resilience"
)

// ErrNoRecord is returned when the provider knows nothing about the ISBN.
var ErrNoRecord = errors.New("metadata: no record for isbn")

// maxResponseBytes bounds a provider response.
const maxResponseBytes = 1 << 20

// Provider fetches a record for a normalized ISBN.
type Provider interface {
	Lookup(context context.Context, isbn string) (*Record, error)
}

// OpenLibrary queries the Open Library books API
// (/api/books?bibkeys=ISBN:<isbn>&format=json&jscmd=data).
type OpenLibrary struct {
	baseURL string
	client  resilience.HTTPClient
}

func NewOpenLibrary(baseURL string, client resilience.HTTPClient) *OpenLibrary {
	return &OpenLibrary{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (provider *OpenLibrary) Lookup(context context.Context, isbn string) (*Record, error) {
	query := url.Values{}
	query.Set("bibkeys", "ISBN:"+isbn)
	query.Set("format", "json")
	query.Set("jscmd", "data")

	request, err := http.NewRequestWithContext(context, http.MethodGet, provider.baseURL+"/api/books?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("metadata: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := provider.client.Do(context, request)
	if err != nil {
		return nil, fmt.Errorf("metadata: lookup %s: %w", isbn, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, ErrNoRecord
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata: lookup %s: unexpected status %s", isbn, response.Status)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("metadata: read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("metadata: provider returned invalid json")
	}

	return parseRecord(isbn, body)
}

// parseRecord reads the first bibkey entry of a jscmd=data response.
func parseRecord(isbn string, body []byte) (*Record, error) {
	var entry gjson.Result
	gjson.ParseBytes(body).ForEach(func(_, value gjson.Result) bool {
		entry = value
		return false
	})
	if !entry.Exists() || !entry.IsObject() {
		return nil, ErrNoRecord
	}

	record := &Record{
		ISBN:    isbn,
		Title:   strings.TrimSpace(entry.Get("title").String()),
		Authors: []string{},
	}
	if subtitle := strings.TrimSpace(entry.Get("subtitle").String()); subtitle != "" && record.Title != "" {
		record.Title += ": " + subtitle
	}

	for _, name := range entry.Get("authors.#.name").Array() {
		if trimmed := strings.TrimSpace(name.String()); trimmed != "" {
			record.Authors = append(record.Authors, trimmed)
		}
	}

	record.ISBN13 = firstISBN(entry.Get("identifiers.isbn_13"), 13)
	record.ISBN10 = firstISBN(entry.Get("identifiers.isbn_10"), 10)
	record.PublicationYear, record.PublicationMonth = ParsePublishDate(entry.Get("publish_date").String())

	return record, nil
}

// firstISBN returns the first identifier that normalizes to the given length.
func firstISBN(values gjson.Result, length int) *string {
	for _, value := range values.Array() {
		if normalized := book.NormalizeISBN(value.String()); len(normalized) == length {
			return &normalized
		}
	}
	return nil
}
