package zonelib

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/paulmach/orb"
)

type resolvePointRequest struct {
	group *poolGroupRequest
	index int
	point orb.Point
}

// poolGroupRequest schedules a batch of points on a worker pool. Results
// are stored by position so a caller gets them in input order. The first
// error cancels the rest of the batch.
type poolGroupRequest struct {
	ctx     context.Context
	cancel  context.CancelFunc
	results []ResolveResult
	wg      sync.WaitGroup
	pool    *ants.PoolWithFunc

	errOnce sync.Once
	err     error
}

func (p *poolGroupRequest) Do(index int, point orb.Point) error {
	select {
	case <-p.ctx.Done():
		return ErrContextIsClosed
	default:
	}

	p.wg.Add(1)

	req := &resolvePointRequest{
		group: p,
		index: index,
		point: point,
	}

	if err := p.pool.Invoke(req); err != nil {
		p.wg.Done()
		p.cancel()

		return fmt.Errorf("cannot schedule a task: %w", err)
	}

	return nil
}

func (p *poolGroupRequest) Fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		p.cancel()
	})
}

func (p *poolGroupRequest) Wait() ([]ResolveResult, error) {
	p.wg.Wait()
	p.cancel()

	if p.err != nil {
		return nil, p.err
	}

	return p.results, nil
}

func newPoolGroupRequest(ctx context.Context, size int, pool *ants.PoolWithFunc) *poolGroupRequest {
	ctx, cancel := context.WithCancel(ctx)

	return &poolGroupRequest{
		ctx:     ctx,
		cancel:  cancel,
		results: make([]ResolveResult, size),
		pool:    pool,
	}
}
