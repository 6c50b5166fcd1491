package zonelib_test

import (
	"context"
	"io"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"
)

type DatasetSourceMock struct {
	mock.Mock
}

func (m *DatasetSourceMock) Name() string {
	return m.Called().String(0)
}

func (m *DatasetSourceMock) Open(ctx context.Context) (io.ReadCloser, error) {
	args := m.Called(ctx)
	reader, _ := args.Get(0).(io.ReadCloser)

	return reader, args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) ResolveError(point orb.Point, err error) {
	m.Called(point, err)
}

func (m *LoggerMock) LoadInfo(source, msg string) {
	m.Called(source, msg)
}

func (m *LoggerMock) LoadError(source string, err error) {
	m.Called(source, err)
}
