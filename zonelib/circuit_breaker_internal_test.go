package zonelib

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CircuitBreakerTestSuite struct {
	suite.Suite

	cb  *circuitBreaker
	ctx context.Context
	now time.Time
}

func (suite *CircuitBreakerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.cb = newCircuitBreaker(2, 200*time.Millisecond, 500*time.Millisecond)
	suite.cb.now = func() time.Time {
		return suite.now
	}
}

func (suite *CircuitBreakerTestSuite) Sleep(duration time.Duration) {
	suite.now = suite.now.Add(duration)
}

func (suite *CircuitBreakerTestSuite) CallbackOk(_ context.Context) (*http.Response, error) {
	rec := httptest.NewRecorder()

	rec.WriteHeader(http.StatusCreated)

	return rec.Result(), nil
}

func (suite *CircuitBreakerTestSuite) CallbackErr(_ context.Context) (*http.Response, error) {
	return nil, io.EOF
}

func (suite *CircuitBreakerTestSuite) CallbackCanceled(_ context.Context) (*http.Response, error) {
	return nil, context.Canceled
}

func (suite *CircuitBreakerTestSuite) AssertResponseOk(resp *http.Response) {
	suite.NotNil(resp)
	suite.Equal(http.StatusCreated, resp.StatusCode)
}

func (suite *CircuitBreakerTestSuite) TestManyExecuted() {
	for i := 0; i < 10; i++ {
		resp, err := suite.cb.Do(suite.ctx, suite.CallbackOk)

		suite.NoError(err)
		suite.AssertResponseOk(resp)
	}

	suite.Equal(circuitBreakerStateClosed, suite.cb.state)
}

func (suite *CircuitBreakerTestSuite) TestOpen() {
	_, err := suite.cb.Do(suite.ctx, suite.CallbackErr)
	suite.ErrorIs(err, io.EOF)
	suite.Equal(circuitBreakerStateClosed, suite.cb.state)

	_, err = suite.cb.Do(suite.ctx, suite.CallbackErr)
	suite.ErrorIs(err, io.EOF)
	suite.Equal(circuitBreakerStateOpened, suite.cb.state)

	_, err = suite.cb.Do(suite.ctx, suite.CallbackOk)
	suite.ErrorIs(err, ErrCircuitBreakerOpened)
}

func (suite *CircuitBreakerTestSuite) TestSuccessResetsFailures() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackOk)  // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	suite.Equal(circuitBreakerStateClosed, suite.cb.state)
}

func (suite *CircuitBreakerTestSuite) TestFailuresExpire() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.Sleep(600 * time.Millisecond)
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	suite.Equal(circuitBreakerStateClosed, suite.cb.state)

	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	suite.Equal(circuitBreakerStateOpened, suite.cb.state)
}

func (suite *CircuitBreakerTestSuite) TestHalfOpenSuccess() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	suite.Sleep(100 * time.Millisecond)

	_, err := suite.cb.Do(suite.ctx, suite.CallbackOk)
	suite.ErrorIs(err, ErrCircuitBreakerOpened)

	suite.Sleep(150 * time.Millisecond)

	resp, err := suite.cb.Do(suite.ctx, suite.CallbackOk)
	suite.NoError(err)
	suite.AssertResponseOk(resp)
	suite.Equal(circuitBreakerStateClosed, suite.cb.state)
}

func (suite *CircuitBreakerTestSuite) TestHalfOpenFailure() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	suite.Sleep(250 * time.Millisecond)

	_, err := suite.cb.Do(suite.ctx, suite.CallbackErr)
	suite.ErrorIs(err, io.EOF)
	suite.Equal(circuitBreakerStateOpened, suite.cb.state)

	_, err = suite.cb.Do(suite.ctx, suite.CallbackOk)
	suite.ErrorIs(err, ErrCircuitBreakerOpened)
}

func (suite *CircuitBreakerTestSuite) TestHalfOpenAllowsSingleCall() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	suite.Sleep(250 * time.Millisecond)

	_, err := suite.cb.Do(suite.ctx, func(ctx context.Context) (*http.Response, error) {
		_, err := suite.cb.Do(ctx, suite.CallbackOk)
		suite.ErrorIs(err, ErrCircuitBreakerOpened)

		return suite.CallbackOk(ctx)
	})

	suite.NoError(err)
	suite.Equal(circuitBreakerStateClosed, suite.cb.state)
}

func (suite *CircuitBreakerTestSuite) TestCanceledIsNotFailure() {
	for i := 0; i < 5; i++ {
		_, err := suite.cb.Do(suite.ctx, suite.CallbackCanceled)
		suite.ErrorIs(err, context.Canceled)
	}

	suite.Equal(circuitBreakerStateClosed, suite.cb.state)
}

func TestCircuitBreaker(t *testing.T) {
	suite.Run(t, &CircuitBreakerTestSuite{})
}
