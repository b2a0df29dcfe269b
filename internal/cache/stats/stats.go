// Package stats описывает снимки состояния хранилища и автомата для отчётов о здоровье кэша.
package stats

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// StoreStats — локальная статистика хранилища кэша.
type StoreStats struct {
	OwnedEntries int64 `json:"owned_entries"`
	Hits         int64 `json:"hits"`
	Misses       int64 `json:"misses"`
	Gets         int64 `json:"gets"`
	Puts         int64 `json:"puts"`
	Removes      int64 `json:"removes"`
	Evictions    int64 `json:"evictions"`
}

// HitRatio — доля попаданий среди чтений; 0, если чтений не было.
func (s StoreStats) HitRatio() float64 {
	if s.Gets == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Gets)
}

// Counters — счётчики хранилища; при enabled=false ничего не считают.
type Counters struct {
	enabled   bool
	hits      *xsync.Counter
	misses    *xsync.Counter
	gets      *xsync.Counter
	puts      *xsync.Counter
	removes   *xsync.Counter
	evictions *xsync.Counter
}

func NewCounters(enabled bool) *Counters {
	return &Counters{
		enabled:   enabled,
		hits:      xsync.NewCounter(),
		misses:    xsync.NewCounter(),
		gets:      xsync.NewCounter(),
		puts:      xsync.NewCounter(),
		removes:   xsync.NewCounter(),
		evictions: xsync.NewCounter(),
	}
}

func (c *Counters) Hit() {
	if c.enabled {
		c.gets.Inc()
		c.hits.Inc()
	}
}

func (c *Counters) Miss() {
	if c.enabled {
		c.gets.Inc()
		c.misses.Inc()
	}
}

func (c *Counters) Put() {
	if c.enabled {
		c.puts.Inc()
	}
}

func (c *Counters) Remove() {
	if c.enabled {
		c.removes.Inc()
	}
}

func (c *Counters) Evict() {
	if c.enabled {
		c.evictions.Inc()
	}
}

// Snapshot — текущие значения; owned передаёт хранилище.
func (c *Counters) Snapshot(owned int64) StoreStats {
	return StoreStats{
		OwnedEntries: owned,
		Hits:         c.hits.Value(),
		Misses:       c.misses.Value(),
		Gets:         c.gets.Value(),
		Puts:         c.puts.Value(),
		Removes:      c.removes.Value(),
		Evictions:    c.evictions.Value(),
	}
}

// BreakerSnapshot — состояние автоматического выключателя.
type BreakerSnapshot struct {
	Open          bool          `json:"open"`
	FailureCount  int32         `json:"failure_count"`
	Threshold     int32         `json:"threshold"`
	OpenedAt      time.Time     `json:"opened_at,omitempty"`
	OpenDuration  time.Duration `json:"open_duration"`
	RemainingOpen time.Duration `json:"remaining_open"`
}

// ErrorStat — накопленные ошибки одной операции кэша.
type ErrorStat struct {
	Operation   string    `json:"operation"`
	Count       int64     `json:"count"`
	LastErrorAt time.Time `json:"last_error_at,omitempty"`
}

// CircuitBreakerStatus — автомат плюс ошибки по операциям.
type CircuitBreakerStatus struct {
	Breaker     BreakerSnapshot `json:"breaker"`
	Errors      []ErrorStat     `json:"errors"`
	TotalErrors int64           `json:"total_errors"`
}

// CacheStats — размер и локальная статистика именованного кэша.
type CacheStats struct {
	Name     string     `json:"name"`
	Size     int        `json:"size"`
	Local    StoreStats `json:"local"`
	HitRatio float64    `json:"hit_ratio"`
	Error    string     `json:"error,omitempty"`
}

// HealthReport — сводка для /api/cache/health.
type HealthReport struct {
	Healthy        bool                 `json:"healthy"`
	Connectivity   bool                 `json:"connectivity"`
	CircuitBreaker CircuitBreakerStatus `json:"circuit_breaker"`
	Cache          CacheStats           `json:"cache"`
	Config         map[string]any       `json:"config"`
	Recommendation string               `json:"recommendation"`
}
