// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package settings

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/clock"
	"k8s.io/utils/lru"
)

const allKey = "all"

type keyLookup string

type valueLookup string

type entry struct {
	value   any
	expires time.Time
}

// Cache is a read-through, size bounded cache in front of a settings Store.
// Entries expire after a TTL. Missing keys are never cached.
type Cache struct {
	store   Store
	entries *lru.Cache
	clock   clock.PassiveClock
	ttl     time.Duration

	mu     sync.Mutex
	values sets.Set[string]
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used for expiry.
func WithClock(c clock.PassiveClock) Option {
	return func(cache *Cache) {
		cache.clock = c
	}
}

// WithTTL sets how long entries are served. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(cache *Cache) {
		if ttl > 0 {
			cache.ttl = ttl
		}
	}
}

// WithSize sets the maximum number of cached lookups.
func WithSize(size int) Option {
	return func(cache *Cache) {
		if size > 0 {
			cache.entries = lru.New(size)
		}
	}
}

// NewCache returns a cache over store.
func NewCache(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		entries: lru.New(defaults.SettingsCacheSize),
		clock:   clock.RealClock{},
		ttl:     defaults.SettingsCacheTTL,
		values:  sets.New[string](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) load(key any) (any, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		cacheMisses.Inc()
		return nil, false
	}
	e := v.(entry)
	if !c.clock.Now().Before(e.expires) {
		c.entries.Remove(key)
		cacheMisses.Inc()
		return nil, false
	}
	cacheHits.Inc()
	return e.value, true
}

func (c *Cache) put(key, value any) {
	c.entries.Add(key, entry{value: value, expires: c.clock.Now().Add(c.ttl)})
}

// Get returns the value of key and whether it exists.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := c.load(keyLookup(key)); ok {
		return v.(string), true, nil
	}

	s, err := c.store.GetSetting(ctx, key)
	if err != nil {
		if recerrors.IsCode(err, recerrors.ErrCodeNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}

	c.put(keyLookup(key), s.Value)
	return s.Value, true, nil
}

// LookupByValue returns the first key whose value equals value.
func (c *Cache) LookupByValue(ctx context.Context, value string) (string, bool, error) {
	if value == "" {
		return "", false, nil
	}
	if v, ok := c.load(valueLookup(value)); ok {
		return v.(string), true, nil
	}

	s, err := c.store.FindSettingByValue(ctx, value)
	if err != nil {
		if recerrors.IsCode(err, recerrors.ErrCodeNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find setting by value: %w", err)
	}

	c.mu.Lock()
	c.put(valueLookup(value), s.Key)
	c.values.Insert(value)
	c.mu.Unlock()
	return s.Key, true, nil
}

// All returns every setting ordered by key.
func (c *Cache) All(ctx context.Context) ([]Setting, error) {
	if v, ok := c.load(allKey); ok {
		return slices.Clone(v.([]Setting)), nil
	}

	list, err := c.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	slices.SortFunc(list, func(a, b Setting) int { return strings.Compare(a.Key, b.Key) })

	c.put(allKey, list)
	return slices.Clone(list), nil
}

// Keys returns every setting key, sorted.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	list, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(list))
	for _, s := range list {
		keys = append(keys, s.Key)
	}
	return keys, nil
}

// Set updates an existing key and drops its cached lookups.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := ValidateValue(key, value); err != nil {
		return err
	}
	if err := c.store.UpdateSetting(ctx, key, value); err != nil {
		return err
	}
	c.ClearKey(key)
	slog.Info("setting updated", "key", key)
	return nil
}

// Save creates or replaces settings and clears the whole cache.
func (c *Cache) Save(ctx context.Context, list []Setting) error {
	for _, st := range list {
		if err := ValidateValue(st.Key, st.Value); err != nil {
			return err
		}
	}
	if err := c.store.SaveSettings(ctx, list); err != nil {
		return err
	}
	c.Clear()
	slog.Info("settings saved", "count", len(list))
	return nil
}

// ClearKey drops the cached value of key, the cached listing and every
// cached value lookup, since key may have held or now holds any of them.
func (c *Cache) ClearKey(key string) {
	c.entries.Remove(keyLookup(key))
	c.entries.Remove(allKey)

	c.mu.Lock()
	defer c.mu.Unlock()
	for v := range c.values {
		c.entries.Remove(valueLookup(v))
	}
	c.values.Clear()
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Clear()
	c.values.Clear()
}

// String returns the value of key, or def when it is missing or unreadable.
func (c *Cache) String(ctx context.Context, key, def string) string {
	v, ok, err := c.Get(ctx, key)
	if err != nil {
		slog.Warn("setting lookup failed", "key", key, "error", err)
		return def
	}
	if !ok || v == "" {
		return def
	}
	return v
}

// Int returns the integer value of key, or def.
func (c *Cache) Int(ctx context.Context, key string, def int) int {
	raw := c.String(ctx, key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("setting is not an integer", "key", key, "value", raw)
		return def
	}
	return n
}

// Float returns the numeric value of key, or def.
func (c *Cache) Float(ctx context.Context, key string, def float64) float64 {
	raw := c.String(ctx, key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		slog.Warn("setting is not a number", "key", key, "value", raw)
		return def
	}
	return f
}

// Bool returns the boolean value of key, or def. "1" and "true" are true.
func (c *Cache) Bool(ctx context.Context, key string, def bool) bool {
	raw := c.String(ctx, key, "")
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("setting is not a boolean", "key", key, "value", raw)
		return def
	}
	return b
}

// List returns the comma separated value of key, trimmed and lower-cased.
func (c *Cache) List(ctx context.Context, key string, def []string) []string {
	raw := c.String(ctx, key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// RateLimitEnabled reports whether per-client rate limiting is switched on.
func (c *Cache) RateLimitEnabled(ctx context.Context) bool {
	return c.Bool(ctx, KeyRateLimit, false)
}
