package zonelib

import (
	"encoding/json"
	"sync"
	"time"
)

// UsageStatsSnapshot is a consistent copy of UsageStats counters.
type UsageStatsSnapshot struct {
	LastUsed          time.Time
	IndexLoadedAt     time.Time
	IndexLoadDuration time.Duration
	ExactCount        uint64
	FallbackCount     uint64
	MissCount         uint64
	FailureCount      uint64
}

type UsageStats struct {
	mutex             sync.Mutex
	lastUsed          time.Time
	indexLoadedAt     time.Time
	indexLoadDuration time.Duration
	exactCount        uint64
	fallbackCount     uint64
	missCount         uint64
	failureCount      uint64
}

func (u *UsageStats) Used(result ResolveResult, err error) {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastUsed = now

	switch {
	case err != nil:
		u.failureCount += 1
	case result.Method == MethodExact:
		u.exactCount += 1
	case result.Method == MethodFallback:
		u.fallbackCount += 1
	default:
		u.missCount += 1
	}
}

// IndexLoaded remembers when the current index was loaded and how long
// it took.
func (u *UsageStats) IndexLoaded(loadedAt time.Time, took time.Duration) {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.indexLoadedAt = loadedAt
	u.indexLoadDuration = took
}

func (u *UsageStats) Snapshot() UsageStatsSnapshot {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	return UsageStatsSnapshot{
		LastUsed:          u.lastUsed,
		IndexLoadedAt:     u.indexLoadedAt,
		IndexLoadDuration: u.indexLoadDuration,
		ExactCount:        u.exactCount,
		FallbackCount:     u.fallbackCount,
		MissCount:         u.missCount,
		FailureCount:      u.failureCount,
	}
}

func (u *UsageStats) MarshalJSON() ([]byte, error) {
	snapshot := u.Snapshot()

	var lastUsedTime, indexLoadedTime int64

	if !snapshot.LastUsed.IsZero() {
		lastUsedTime = snapshot.LastUsed.Unix()
	}

	if !snapshot.IndexLoadedAt.IsZero() {
		indexLoadedTime = snapshot.IndexLoadedAt.Unix()
	}

	rawStruct := struct {
		LastUsed          int64   `json:"last_used"`
		IndexLoadedAt     int64   `json:"index_loaded_at"`
		IndexLoadDuration float64 `json:"index_load_duration"`
		ExactCount        uint64  `json:"exact_count"`
		FallbackCount     uint64  `json:"fallback_count"`
		MissCount         uint64  `json:"miss_count"`
		FailureCount      uint64  `json:"failure_count"`
	}{
		LastUsed:          lastUsedTime,
		IndexLoadedAt:     indexLoadedTime,
		IndexLoadDuration: snapshot.IndexLoadDuration.Seconds(),
		ExactCount:        snapshot.ExactCount,
		FallbackCount:     snapshot.FallbackCount,
		MissCount:         snapshot.MissCount,
		FailureCount:      snapshot.FailureCount,
	}

	return json.Marshal(&rawStruct)
}
