package zonelib

import (
	"strconv"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/paulmach/orb"
)

// resultCache keeps resolve results for exact points. Index never
// changes after it is built so cached results never become stale.
type resultCache struct {
	cache *ristretto.Cache[string, ResolveResult]
	ttl   time.Duration
}

func (r *resultCache) Get(p orb.Point) (ResolveResult, bool) {
	return r.cache.Get(r.key(p))
}

func (r *resultCache) Set(result ResolveResult) {
	r.cache.SetWithTTL(r.key(result.Point), result, 1, r.ttl)
}

func (r *resultCache) Close() {
	r.cache.Close()
}

func (r *resultCache) key(p orb.Point) string {
	return strconv.FormatFloat(p.Lon(), 'g', -1, 64) + "," + strconv.FormatFloat(p.Lat(), 'g', -1, 64)
}

func newResultCache(itemsCount uint, ttl time.Duration) (*resultCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, ResolveResult]{
		MaxCost:     int64(itemsCount),
		NumCounters: 10 * int64(itemsCount),
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &resultCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}
