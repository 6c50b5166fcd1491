package zonelib

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const loaderFlightKey = "index"

// IndexLoader builds ZoneIndex from DatasetSource at most once.
//
// Concurrent callers share the same build. If build fails, loader is
// poisoned: all waiters and all subsequent Get calls receive the same
// error until somebody calls Retry. There are no automatic retries.
//
// Once built, index is published atomically and Get becomes lock-free.
type IndexLoader struct {
	ctx    context.Context
	cancel context.CancelFunc
	source DatasetSource
	logger Logger
	group  singleflight.Group
	index  atomic.Pointer[ZoneIndex]

	mutex sync.Mutex
	err   error
}

// Get returns a ZoneIndex, building it if necessary. If ctx is closed
// before build is finished, Get returns immediately but the build keeps
// going for other callers.
func (l *IndexLoader) Get(ctx context.Context) (*ZoneIndex, error) {
	if index := l.index.Load(); index != nil {
		return index, nil
	}

	if err := l.lastError(); err != nil {
		return nil, err
	}

	return l.wait(ctx)
}

// Retry clears a remembered build error and builds index again. If index
// is already built, it is returned as is.
func (l *IndexLoader) Retry(ctx context.Context) (*ZoneIndex, error) {
	if index := l.index.Load(); index != nil {
		return index, nil
	}

	l.mutex.Lock()
	l.err = nil
	l.mutex.Unlock()

	return l.wait(ctx)
}

// Loaded returns an index if it was built already. It never triggers
// a build.
func (l *IndexLoader) Loaded() *ZoneIndex {
	return l.index.Load()
}

func (l *IndexLoader) Shutdown() {
	l.cancel()
}

func (l *IndexLoader) wait(ctx context.Context) (*ZoneIndex, error) {
	resultChan := l.group.DoChan(loaderFlightKey, l.build)

	select {
	case <-ctx.Done():
		return nil, ErrContextIsClosed
	case result := <-resultChan:
		if result.Err != nil {
			return nil, result.Err
		}

		return result.Val.(*ZoneIndex), nil
	}
}

func (l *IndexLoader) build() (interface{}, error) {
	if index := l.index.Load(); index != nil {
		return index, nil
	}

	// a previous flight may have poisoned the loader after Get has
	// checked it.
	if err := l.lastError(); err != nil {
		return nil, err
	}

	startedAt := time.Now()
	index, err := l.load()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err != nil {
		l.err = fmt.Errorf("%w from %s: %w", ErrDatasetLoad, l.source.Name(), err)
		l.logger.LoadError(l.source.Name(), err)

		return nil, l.err
	}

	index.loadDuration = time.Since(startedAt)

	l.index.Store(index)
	l.logger.LoadInfo(l.source.Name(),
		fmt.Sprintf("dataset %s has been loaded in %v: %d hulls, %d zones",
			index.Checksum(),
			index.LoadDuration(),
			len(index.Hulls()),
			len(index.Zones())))

	return index, nil
}

func (l *IndexLoader) load() (*ZoneIndex, error) {
	reader, err := l.source.Open(l.ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot open a source: %w", err)
	}

	defer reader.Close()

	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read a source: %w", err)
	}

	checksum := sha256.Sum256(data)

	dataset, err := DecodeDataset(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode a dataset: %w", err)
	}

	index, err := NewZoneIndex(dataset)
	if err != nil {
		return nil, fmt.Errorf("cannot build an index: %w", err)
	}

	index.checksum = hex.EncodeToString(checksum[:])

	return index, nil
}

func (l *IndexLoader) lastError() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.err
}

func NewIndexLoader(source DatasetSource, logger Logger) *IndexLoader {
	ctx, cancel := context.WithCancel(context.Background())

	return &IndexLoader{
		ctx:    ctx,
		cancel: cancel,
		source: source,
		logger: logger,
	}
}
