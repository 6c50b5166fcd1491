package zonelib

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/paulmach/orb"
)

const (
	DefaultWorkerPoolSize = 4096

	workerPoolExpireTime = time.Minute
)

var errIncorrectFallbackDistance = errors.New("max fallback distance should be a finite non-negative number")

// Opts defines parameters of Zonographer.
type Opts struct {
	// MaxFallbackDistance is a distance in kilometers. If there is no
	// exact hit, a zone with the nearest boundary is chosen only if this
	// boundary is closer than MaxFallbackDistance. There is no default
	// value: this is a policy decision of the caller.
	MaxFallbackDistance float64

	// WorkerPoolSize is a size of the pool which is used by ResolveAll.
	// DefaultWorkerPoolSize is used if it is not positive.
	WorkerPoolSize int

	// CacheSize is a number of results to keep in cache. 0 disables
	// caching.
	CacheSize uint

	// CacheTTL is a time to live of cached results. 0 means forever.
	CacheTTL time.Duration
}

type Zonographer struct {
	logger              Logger
	loader              *IndexLoader
	maxFallbackDistance float64
	cache               *resultCache
	usageStats          *UsageStats
	httpHandler         http.Handler
	rwmutex             sync.RWMutex
	closeOnce           sync.Once
	workerPool          *ants.PoolWithFunc
	closed              bool
}

func (z *Zonographer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	z.httpHandler.ServeHTTP(w, req)
}

// Resolve classifies a single point. Dataset is loaded on the first call.
func (z *Zonographer) Resolve(ctx context.Context, point orb.Point) (ResolveResult, error) {
	z.rwmutex.RLock()
	defer z.rwmutex.RUnlock()

	if z.closed {
		return ResolveResult{Point: point, Method: MethodNone}, ErrZonographerShutdown
	}

	return z.resolve(ctx, point)
}

// ResolveAll classifies a batch of points on a worker pool. Results go in
// the same order as given points. If any point fails, the whole batch
// fails with the first error.
func (z *Zonographer) ResolveAll(ctx context.Context, points []orb.Point) ([]ResolveResult, error) {
	z.rwmutex.RLock()
	defer z.rwmutex.RUnlock()

	if z.closed {
		return nil, ErrZonographerShutdown
	}

	// a load failure fails the batch before any task is scheduled
	if _, err := z.loader.Get(ctx); err != nil {
		return nil, err
	}

	groupRequest := newPoolGroupRequest(ctx, len(points), z.workerPool)

	for i, v := range points {
		if err := groupRequest.Do(i, v); err != nil {
			groupRequest.Fail(err)

			break
		}
	}

	return groupRequest.Wait()
}

// Prepare loads a dataset without resolving anything.
func (z *Zonographer) Prepare(ctx context.Context) error {
	_, err := z.loader.Get(ctx)

	return err
}

// RetryLoad explicitly retries a failed dataset load.
func (z *Zonographer) RetryLoad(ctx context.Context) error {
	z.rwmutex.RLock()
	defer z.rwmutex.RUnlock()

	if z.closed {
		return ErrZonographerShutdown
	}

	_, err := z.loader.Retry(ctx)

	return err
}

// Index returns a loaded index or nil if it is not ready yet.
func (z *Zonographer) Index() *ZoneIndex {
	return z.loader.Loaded()
}

// UsageStats returns resolve counters together with load time of the
// current index.
func (z *Zonographer) UsageStats() *UsageStats {
	if index := z.loader.Loaded(); index != nil {
		z.usageStats.IndexLoaded(index.BuiltAt(), index.LoadDuration())
	}

	return z.usageStats
}

func (z *Zonographer) Shutdown() {
	z.rwmutex.Lock()
	defer z.rwmutex.Unlock()

	z.closed = true

	z.closeOnce.Do(func() {
		z.workerPool.Release()
		z.loader.Shutdown()

		if z.cache != nil {
			z.cache.Close()
		}
	})
}

func (z *Zonographer) resolve(ctx context.Context, point orb.Point) (ResolveResult, error) {
	select {
	case <-ctx.Done():
		return ResolveResult{Point: point, Method: MethodNone}, ErrContextIsClosed
	default:
	}

	if z.cache != nil {
		if result, ok := z.cache.Get(point); ok {
			z.usageStats.Used(result, nil)

			return result, nil
		}
	}

	result, err := z.doResolve(ctx, point)

	z.usageStats.Used(result, err)

	if err != nil {
		z.logger.ResolveError(point, err)

		return result, err
	}

	if z.cache != nil {
		z.cache.Set(result)
	}

	return result, nil
}

func (z *Zonographer) doResolve(ctx context.Context, point orb.Point) (ResolveResult, error) {
	index, err := z.loader.Get(ctx)
	if err != nil {
		return ResolveResult{Point: point, Method: MethodNone}, err
	}

	return Resolve(point, index, z.maxFallbackDistance)
}

func (z *Zonographer) resolveTask(args interface{}) {
	req := args.(*resolvePointRequest)
	group := req.group

	defer group.wg.Done()

	result, err := z.resolve(group.ctx, req.point)
	if err != nil {
		group.Fail(fmt.Errorf("cannot resolve point %d %v: %w", req.index, req.point, err))

		return
	}

	group.results[req.index] = result
}

func NewZonographer(loader *IndexLoader, logger Logger, opts Opts) (*Zonographer, error) {
	if math.IsNaN(opts.MaxFallbackDistance) || math.IsInf(opts.MaxFallbackDistance, 0) || opts.MaxFallbackDistance < 0 {
		return nil, errIncorrectFallbackDistance
	}

	rv := &Zonographer{
		logger:              logger,
		loader:              loader,
		maxFallbackDistance: opts.MaxFallbackDistance,
		usageStats:          &UsageStats{},
	}

	if opts.CacheSize > 0 {
		cache, err := newResultCache(opts.CacheSize, opts.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("cannot create a cache: %w", err)
		}

		rv.cache = cache
	}

	poolSize := opts.WorkerPoolSize
	if poolSize <= 0 {
		poolSize = DefaultWorkerPoolSize
	}

	pool, err := ants.NewPoolWithFunc(poolSize, rv.resolveTask,
		ants.WithExpiryDuration(workerPoolExpireTime))
	if err != nil {
		return nil, fmt.Errorf("cannot create a worker pool: %w", err)
	}

	rv.workerPool = pool
	rv.httpHandler = NewHTTPHandler(rv)

	return rv, nil
}
