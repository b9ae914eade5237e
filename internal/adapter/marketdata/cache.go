package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"

	"marketbrief/internal/domain"
	"marketbrief/internal/port"
)

var (
	bucketHistory  = []byte("history")
	bucketEarnings = []byte("earnings")
)

// BoltCache is a TTL'd on-disk cache for quote and earnings lookups, so
// repeated briefs for the same symbols within the TTL skip the upstream API.
type BoltCache struct {
	db  *bbolt.DB
	ttl time.Duration
}

type envelope struct {
	StoredAt int64           `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

func NewBoltCache(path string, ttl time.Duration) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketHistory, bucketEarnings} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCache{db: db, ttl: ttl}, nil
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}

func (c *BoltCache) get(bucket []byte, key string, v interface{}) bool {
	var env envelope
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("cache miss: %s", key)
		}
		return json.Unmarshal(data, &env)
	})
	if err != nil {
		return false
	}
	if time.Since(time.Unix(env.StoredAt, 0)) > c.ttl {
		return false
	}
	return json.Unmarshal(env.Payload, v) == nil
}

func (c *BoltCache) put(bucket []byte, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{StoredAt: time.Now().Unix(), Payload: payload})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// CachedProvider wraps a MarketData source with the bolt cache.
type CachedProvider struct {
	next  port.MarketData
	cache *BoltCache
	log   *logrus.Entry
}

func NewCachedProvider(next port.MarketData, cache *BoltCache, log *logrus.Entry) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, log: log}
}

func (p *CachedProvider) History(ctx context.Context, symbols []string) (map[string]domain.Series, error) {
	out := make(map[string]domain.Series, len(symbols))
	var missing []string

	for _, symbol := range symbols {
		var series domain.Series
		if p.cache.get(bucketHistory, symbol, &series) {
			out[symbol] = series
			continue
		}
		missing = append(missing, symbol)
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := p.next.History(ctx, missing)
	for symbol, series := range fetched {
		out[symbol] = series
		if putErr := p.cache.put(bucketHistory, symbol, series); putErr != nil {
			p.log.WithError(putErr).WithField("symbol", symbol).Warn("failed to cache series")
		}
	}
	return out, err
}

func (p *CachedProvider) Earnings(ctx context.Context, symbol string) ([]domain.EarningsRow, error) {
	var rows []domain.EarningsRow
	if p.cache.get(bucketEarnings, symbol, &rows) {
		return rows, nil
	}

	rows, err := p.next.Earnings(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if putErr := p.cache.put(bucketEarnings, symbol, rows); putErr != nil {
		p.log.WithError(putErr).WithField("symbol", symbol).Warn("failed to cache earnings")
	}
	return rows, nil
}
