package zonelib

import (
	"context"
	"io"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PoolFuncMock struct {
	mock.Mock
}

func (m *PoolFuncMock) Do(arg interface{}) {
	m.Called(arg)

	req := arg.(*resolvePointRequest)

	defer req.group.wg.Done()

	req.group.results[req.index] = ResolveResult{
		Point:  req.point,
		Zone:   "z",
		Method: MethodExact,
	}
}

type PoolGroupRequestTestSuite struct {
	suite.Suite

	ctx      context.Context
	cancel   context.CancelFunc
	pool     *ants.PoolWithFunc
	poolFunc *PoolFuncMock
	pgr      *poolGroupRequest
}

func (suite *PoolGroupRequestTestSuite) SetupTest() {
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	suite.poolFunc = &PoolFuncMock{}
	suite.pool, _ = ants.NewPoolWithFunc(5, suite.poolFunc.Do)
	suite.pgr = newPoolGroupRequest(suite.ctx, 3, suite.pool)
}

func (suite *PoolGroupRequestTestSuite) TearDownTest() {
	suite.cancel()
	suite.pool.Release()
	suite.poolFunc.AssertExpectations(suite.T())
}

func (suite *PoolGroupRequestTestSuite) TestOrder() {
	suite.poolFunc.On("Do", mock.Anything).Times(3)

	for i := 0; i < 3; i++ {
		suite.NoError(suite.pgr.Do(i, orb.Point{float64(i), 0}))
	}

	results, err := suite.pgr.Wait()

	suite.NoError(err)
	suite.Len(results, 3)

	for i, v := range results {
		suite.Equal(orb.Point{float64(i), 0}, v.Point)
		suite.Equal(ZoneID("z"), v.Zone)
	}
}

func (suite *PoolGroupRequestTestSuite) TestFail() {
	suite.poolFunc.On("Do", mock.Anything).Once()

	suite.NoError(suite.pgr.Do(0, orb.Point{1, 1}))

	suite.pgr.Fail(io.EOF)
	suite.pgr.Fail(io.ErrUnexpectedEOF)

	suite.ErrorIs(suite.pgr.Do(1, orb.Point{2, 2}), ErrContextIsClosed)

	_, err := suite.pgr.Wait()

	suite.ErrorIs(err, io.EOF)
}

func (suite *PoolGroupRequestTestSuite) TestContextClosed() {
	suite.cancel()

	suite.ErrorIs(suite.pgr.Do(0, orb.Point{1, 1}), ErrContextIsClosed)
}

func (suite *PoolGroupRequestTestSuite) TestPoolClosed() {
	suite.pool.Release()

	suite.Error(suite.pgr.Do(0, orb.Point{1, 1}))

	_, err := suite.pgr.Wait()

	suite.NoError(err)
}

func TestPoolGroupRequest(t *testing.T) {
	suite.Run(t, &PoolGroupRequestTestSuite{})
}
