// Package memory содержит LRU-хранилище кэша в памяти процесса с истечением записей по TTL и простою.
package memory

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

var errNilOrder = errors.New("memory store: nil order")

// Config — параметры хранилища; нулевые TTL/MaxIdle отключают соответствующее истечение.
type Config struct {
	Name         string
	MaxSize      int
	TTL          time.Duration
	MaxIdle      time.Duration
	WriteThrough bool
	StatsEnabled bool
}

type entry struct {
	key        string
	order      *domain.Order
	expiresAt  time.Time // нулевое значение: без истечения
	lastAccess time.Time
}

// Store — потокобезопасное LRU-хранилище с загрузчиком на промахе.
type Store struct {
	name         string
	capacity     int
	ttl          time.Duration
	maxIdle      time.Duration
	writeThrough bool

	loader   ports.OrderMapStore // может быть nil
	log      ports.Logger
	counters *stats.Counters
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

var _ ports.CacheStore = (*Store)(nil)

// NewStore — DI-конструктор; loader может быть nil (кэш без дочитывания из БД).
func NewStore(cfg Config, loader ports.OrderMapStore, log ports.Logger) *Store {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 1
	}
	return &Store{
		name:         cfg.Name,
		capacity:     cfg.MaxSize,
		ttl:          cfg.TTL,
		maxIdle:      cfg.MaxIdle,
		writeThrough: cfg.WriteThrough,
		loader:       loader,
		log:          log,
		counters:     stats.NewCounters(cfg.StatsEnabled),
		now:          time.Now,
		ll:           list.New(),
		index:        make(map[string]*list.Element),
	}
}

func (s *Store) Name() string { return s.name }

// Get — копия заказа; при промахе заказ дочитывается через загрузчик и кладётся в кэш.
func (s *Store) Get(ctx context.Context, key string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.now()

	s.mu.Lock()
	if elem, ok := s.index[key]; ok {
		ent := elem.Value.(*entry)
		if !s.isExpired(ent, now) {
			s.ll.MoveToFront(elem)
			ent.lastAccess = now
			order := ent.order.Clone()
			s.mu.Unlock()

			s.counters.Hit()
			metrics.CacheOps.WithLabelValues("hit").Inc()
			return order, nil
		}
		s.removeElement(elem)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		s.reportSize()
	}
	s.mu.Unlock()

	s.counters.Miss()
	metrics.CacheOps.WithLabelValues("miss").Inc()
	if s.loader == nil {
		return nil, nil
	}

	order := s.loader.Load(ctx, key)
	if order == nil {
		return nil, nil
	}

	// Пока шла загрузка, ключ мог записать Put: копия из БД старее, её не кладём.
	now = s.now()
	s.mu.Lock()
	if elem, ok := s.index[key]; ok && !s.isExpired(elem.Value.(*entry), now) {
		current := elem.Value.(*entry).order.Clone()
		s.mu.Unlock()
		return current, nil
	}
	s.insert(key, order, s.ttl, now)
	s.mu.Unlock()
	metrics.CacheOps.WithLabelValues("loaded").Inc()
	return order.Clone(), nil
}

func (s *Store) Put(ctx context.Context, key string, order *domain.Order) error {
	return s.put(ctx, key, order, s.ttl)
}

func (s *Store) PutWithTTL(ctx context.Context, key string, order *domain.Order, ttl time.Duration) error {
	return s.put(ctx, key, order, ttl)
}

// Replace — заменить только существующую и не истёкшую запись.
func (s *Store) Replace(ctx context.Context, key string, order *domain.Order) (bool, error) {
	if order == nil {
		return false, errNilOrder
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	now := s.now()

	s.mu.Lock()
	elem, ok := s.index[key]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	ent := elem.Value.(*entry)
	if s.isExpired(ent, now) {
		s.removeElement(elem)
		s.reportSize()
		s.mu.Unlock()
		return false, nil
	}
	ent.order = order.Clone()
	ent.expiresAt = expiryFrom(now, s.ttl)
	ent.lastAccess = now
	s.ll.MoveToFront(elem)
	s.mu.Unlock()

	s.counters.Put()
	metrics.CacheOps.WithLabelValues("put").Inc()
	if s.writeThrough && s.loader != nil {
		s.loader.Store(ctx, key, order)
	}
	return true, nil
}

// Remove — удалить запись и уведомить загрузчик; отсутствие ключа не ошибка.
func (s *Store) Remove(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	removed := s.drop(key)
	if removed {
		s.counters.Remove()
		metrics.CacheOps.WithLabelValues("removed").Inc()
	}
	if s.loader != nil {
		s.loader.Delete(ctx, key)
	}
	return removed, nil
}

// Evict — убрать запись только из кэша.
func (s *Store) Evict(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	evicted := s.drop(key)
	if evicted {
		s.counters.Evict()
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
	return evicted, nil
}

func (s *Store) ContainsKey(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.index[key]
	if !ok {
		return false, nil
	}
	return !s.isExpired(elem.Value.(*entry), now), nil
}

// Size — число живых записей; истёкшие вычищаются по ходу.
func (s *Store) Size(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for elem := s.ll.Back(); elem != nil; {
		prev := elem.Prev()
		if s.isExpired(elem.Value.(*entry), now) {
			s.removeElement(elem)
			metrics.CacheOps.WithLabelValues("expired").Inc()
		}
		elem = prev
	}
	s.reportSize()
	return len(s.index), nil
}

func (s *Store) Stats() stats.StoreStats {
	s.mu.Lock()
	owned := len(s.index)
	s.mu.Unlock()
	return s.counters.Snapshot(int64(owned))
}

// Preload — начальная загрузка: ключи от LoadAllKeys, значения от LoadAll.
func (s *Store) Preload(ctx context.Context) (int, error) {
	if s.loader == nil {
		return 0, nil
	}
	keys := s.loader.LoadAllKeys(ctx)
	if len(keys) == 0 {
		s.log.Infof(ctx, "cache %s: initial load skipped, loader returned no keys", s.name)
		return 0, nil
	}
	orders := s.loader.LoadAll(ctx, keys)
	now := s.now()

	s.mu.Lock()
	for key, order := range orders {
		if order != nil {
			s.insert(key, order, s.ttl, now)
		}
	}
	s.mu.Unlock()

	s.log.Infof(ctx, "cache %s: initial load of %d/%d orders", s.name, len(orders), len(keys))
	return len(orders), nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ll.Init()
	s.index = make(map[string]*list.Element)
	s.reportSize()
	return nil
}
