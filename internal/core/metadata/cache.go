// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// Cache stores records as JSON under [constants.RedisPrefixMetadata].
//
// A nil client turns every call into a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get reports whether a record was cached for isbn.
func (cache *Cache) Get(context context.Context, isbn string) (*Record, bool, error) {
	if cache == nil || cache.client == nil {
		return nil, false, nil
	}

	data, err := cache.client.Get(context, constants.RedisPrefixMetadata+isbn).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, err
	}
	return &record, true, nil
}

func (cache *Cache) Set(context context.Context, record *Record) error {
	if cache == nil || cache.client == nil || cache.ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return cache.client.Set(context, constants.RedisPrefixMetadata+record.ISBN, data, cache.ttl).Err()
}
