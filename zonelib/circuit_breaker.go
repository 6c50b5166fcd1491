package zonelib

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

type circuitBreakerCallback func(context.Context) (*http.Response, error)

type circuitBreakerState uint8

const (
	circuitBreakerStateClosed circuitBreakerState = iota
	circuitBreakerStateHalfOpened
	circuitBreakerStateOpened
)

// circuitBreaker switches its state lazily, on each call, based on
// the time of the latest transitions. There are no background timers.
type circuitBreaker struct {
	mutex sync.Mutex
	now   func() time.Time

	state            circuitBreakerState
	failuresCount    uint32
	failuresResetAt  time.Time
	openedAt         time.Time
	halfOpenInFlight bool

	openThreshold        uint32
	halfOpenTimeout      time.Duration
	resetFailuresTimeout time.Duration
}

func (c *circuitBreaker) Do(ctx context.Context, callback circuitBreakerCallback) (*http.Response, error) {
	state, err := c.acquire()
	if err != nil {
		return nil, err
	}

	resp, err := callback(ctx)

	c.release(state, err)

	return resp, err
}

func (c *circuitBreaker) acquire() (circuitBreakerState, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()

	if c.state == circuitBreakerStateOpened && now.Sub(c.openedAt) >= c.halfOpenTimeout {
		c.state = circuitBreakerStateHalfOpened
		c.halfOpenInFlight = false
	}

	switch c.state {
	case circuitBreakerStateClosed:
		if c.failuresCount > 0 && !now.Before(c.failuresResetAt) {
			c.failuresCount = 0
		}
	case circuitBreakerStateHalfOpened:
		if c.halfOpenInFlight {
			return c.state, ErrCircuitBreakerOpened
		}

		c.halfOpenInFlight = true
	default:
		return c.state, ErrCircuitBreakerOpened
	}

	return c.state, nil
}

func (c *circuitBreaker) release(admittedAs circuitBreakerState, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// cancelled calls tell nothing about a health of the target.
	if errors.Is(err, context.Canceled) {
		if admittedAs == circuitBreakerStateHalfOpened {
			c.halfOpenInFlight = false
		}

		return
	}

	switch {
	case admittedAs == circuitBreakerStateHalfOpened && c.state == circuitBreakerStateHalfOpened:
		c.halfOpenInFlight = false

		if err != nil {
			c.open()
		} else {
			c.close()
		}
	case c.state != circuitBreakerStateClosed:
	case err == nil:
		c.failuresCount = 0
	default:
		if c.failuresCount == 0 {
			c.failuresResetAt = c.now().Add(c.resetFailuresTimeout)
		}

		c.failuresCount++

		if c.failuresCount >= c.openThreshold {
			c.open()
		}
	}
}

func (c *circuitBreaker) open() {
	c.state = circuitBreakerStateOpened
	c.openedAt = c.now()
	c.failuresCount = 0
}

func (c *circuitBreaker) close() {
	c.state = circuitBreakerStateClosed
	c.failuresCount = 0
}

func newCircuitBreaker(openThreshold uint32,
	halfOpenTimeout, resetFailuresTimeout time.Duration) *circuitBreaker {
	if openThreshold == 0 {
		openThreshold = 1
	}

	return &circuitBreaker{
		now:                  time.Now,
		openThreshold:        openThreshold,
		halfOpenTimeout:      halfOpenTimeout,
		resetFailuresTimeout: resetFailuresTimeout,
	}
}
