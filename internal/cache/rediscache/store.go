// Package rediscache: хранилище кэша заказов в Redis; значения кодируются msgpack
// вместе с крайним сроком TTL, чтобы продление по простою не выходило за него.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/atomic"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

const scanBatch = 256

var errNilOrder = errors.New("redis store: nil order")

// Config — параметры хранилища. Ограничение по размеру задаётся на стороне Redis
// (maxmemory + allkeys-lru), поэтому здесь его нет.
type Config struct {
	Name         string
	KeyPrefix    string
	TTL          time.Duration
	MaxIdle      time.Duration
	WriteThrough bool
	StatsEnabled bool
}

// Store — реализация ports.CacheStore поверх go-redis.
type Store struct {
	client       *redis.Client
	name         string
	prefix       string
	ttl          time.Duration
	maxIdle      time.Duration
	writeThrough bool

	loader   ports.OrderMapStore // может быть nil
	log      ports.Logger
	counters *stats.Counters
	lastSize atomic.Int64
	now      func() time.Time
}

// record — значение ключа. ExpiresAt: крайний срок по TTL в unix-миллисекундах, 0 — без срока.
type record struct {
	ExpiresAt int64         `msgpack:"exp"`
	Order     *domain.Order `msgpack:"order"`
}

var _ ports.CacheStore = (*Store)(nil)

// NewClient — клиент Redis с проверкой соединения.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// NewStore — DI-конструктор.
func NewStore(client *redis.Client, cfg Config, loader ports.OrderMapStore, log ports.Logger) *Store {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = cfg.Name + ":"
	}
	return &Store{
		client:       client,
		name:         cfg.Name,
		prefix:       prefix,
		ttl:          cfg.TTL,
		maxIdle:      cfg.MaxIdle,
		writeThrough: cfg.WriteThrough,
		loader:       loader,
		log:          log,
		counters:     stats.NewCounters(cfg.StatsEnabled),
		now:          time.Now,
	}
}

func (s *Store) Name() string { return s.name }

// Get — при MaxIdle чтение продлевает жизнь ключа, но не дальше его TTL.
func (s *Store) Get(ctx context.Context, key string) (*domain.Order, error) {
	var (
		order *domain.Order
		err   error
	)
	if s.maxIdle > 0 {
		order, err = s.getAndTouch(ctx, key)
	} else {
		order, err = s.read(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if order != nil {
		s.counters.Hit()
		metrics.CacheOps.WithLabelValues("hit").Inc()
		return order, nil
	}

	s.counters.Miss()
	metrics.CacheOps.WithLabelValues("miss").Inc()
	if s.loader == nil {
		return nil, nil
	}
	loaded := s.loader.Load(ctx, key)
	if loaded == nil {
		return nil, nil
	}
	return s.cacheLoaded(ctx, key, loaded), nil
}

func (s *Store) Put(ctx context.Context, key string, order *domain.Order) error {
	return s.put(ctx, key, order, s.ttl)
}

func (s *Store) PutWithTTL(ctx context.Context, key string, order *domain.Order, ttl time.Duration) error {
	return s.put(ctx, key, order, ttl)
}

// Replace — SET XX: запись только поверх существующего ключа.
func (s *Store) Replace(ctx context.Context, key string, order *domain.Order) (bool, error) {
	if order == nil {
		return false, errNilOrder
	}
	data, err := s.encode(order, s.ttl)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	ok, err := s.client.SetXX(ctx, s.key(key), data, s.expiration(s.ttl)).Result()
	if err != nil {
		return false, fmt.Errorf("redis setxx %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	s.counters.Put()
	metrics.CacheOps.WithLabelValues("put").Inc()
	if s.writeThrough && s.loader != nil {
		s.loader.Store(ctx, key, order)
	}
	return true, nil
}

func (s *Store) Remove(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del %s: %w", key, err)
	}
	if n > 0 {
		s.counters.Remove()
		metrics.CacheOps.WithLabelValues("removed").Inc()
	}
	if s.loader != nil {
		s.loader.Delete(ctx, key)
	}
	return n > 0, nil
}

func (s *Store) Evict(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del %s: %w", key, err)
	}
	if n > 0 {
		s.counters.Evict()
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
	return n > 0, nil
}

func (s *Store) ContainsKey(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

// Size — SCAN по префиксу; на больших базах операция не бесплатная.
func (s *Store) Size(ctx context.Context) (int, error) {
	var n int
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	s.lastSize.Store(int64(n))
	metrics.CacheSize.WithLabelValues(s.name).Set(float64(n))
	return n, nil
}

// Stats — OwnedEntries берётся из последнего Size.
func (s *Store) Stats() stats.StoreStats {
	return s.counters.Snapshot(s.lastSize.Load())
}

// Preload — начальная загрузка одним пайплайном.
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
	if len(orders) == 0 {
		return 0, nil
	}

	pipe := s.client.Pipeline()
	for key, order := range orders {
		data, err := s.encode(order, s.ttl)
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", key, err)
		}
		pipe.Set(ctx, s.key(key), data, s.expiration(s.ttl))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis pipeline: %w", err)
	}
	s.log.Infof(ctx, "cache %s: initial load of %d/%d orders", s.name, len(orders), len(keys))
	return len(orders), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ------вспомогательные функции------

func (s *Store) put(ctx context.Context, key string, order *domain.Order, ttl time.Duration) error {
	if order == nil {
		return errNilOrder
	}
	if err := s.set(ctx, key, order, ttl); err != nil {
		return err
	}
	s.counters.Put()
	metrics.CacheOps.WithLabelValues("put").Inc()
	if s.writeThrough && s.loader != nil {
		s.loader.Store(ctx, key, order)
	}
	return nil
}

func (s *Store) set(ctx context.Context, key string, order *domain.Order, ttl time.Duration) error {
	data, err := s.encode(order, ttl)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), data, s.expiration(ttl)).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) key(k string) string { return s.prefix + k }

// expiration — у ключа Redis один срок жизни, поэтому берётся меньший из TTL и простоя.
// 0: без истечения.
func (s *Store) expiration(ttl time.Duration) time.Duration {
	if s.maxIdle > 0 && (ttl <= 0 || s.maxIdle < ttl) {
		return s.maxIdle
	}
	if ttl <= 0 {
		return 0
	}
	return ttl
}

// read — GET без продления; (nil, nil) при отсутствии ключа.
func (s *Store) read(ctx context.Context, key string) (*domain.Order, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	rec, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return rec.Order, nil
}

// getAndTouch — GET и PEXPIRE в одной транзакции под WATCH: параллельная запись
// не получит чужой срок. Если ключ поменялся между чтением и продлением,
// отдаём прочитанное без продления.
func (s *Store) getAndTouch(ctx context.Context, key string) (*domain.Order, error) {
	k := s.key(key)
	var order *domain.Order
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("redis get %s: %w", key, err)
		}
		rec, err := decode(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		expiry, alive := idleExpiry(s.maxIdle, rec.deadline(), s.now())
		if !alive {
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, k)
				return nil
			})
			return err
		}
		order = rec.Order
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.PExpire(ctx, k, expiry)
			return nil
		})
		return err
	}, k)
	if errors.Is(err, redis.TxFailedErr) {
		return order, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// cacheLoaded — кладёт загруженный из БД заказ только в пустой ключ (SET NX):
// запись, сделанная пока шла загрузка, новее копии из БД.
func (s *Store) cacheLoaded(ctx context.Context, key string, loaded *domain.Order) *domain.Order {
	data, err := s.encode(loaded, s.ttl)
	if err != nil {
		s.log.Warnf(ctx, "redis store: encode loaded order failed key=%s err=%v", key, err)
		return loaded
	}
	stored, err := s.client.SetNX(ctx, s.key(key), data, s.expiration(s.ttl)).Result()
	if err != nil {
		s.log.Warnf(ctx, "redis store: caching loaded order failed key=%s err=%v", key, err)
		return loaded
	}
	if stored {
		metrics.CacheOps.WithLabelValues("loaded").Inc()
		return loaded
	}
	current, err := s.read(ctx, key)
	if err != nil || current == nil {
		return loaded
	}
	return current
}

func (s *Store) encode(order *domain.Order, ttl time.Duration) ([]byte, error) {
	rec := record{Order: order}
	if ttl > 0 {
		rec.ExpiresAt = s.now().Add(ttl).UnixMilli()
	}
	return msgpack.Marshal(&rec)
}

func (r record) deadline() time.Time {
	if r.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.ExpiresAt)
}

// idleExpiry — срок ключа после чтения: простой, но не дальше крайнего срока TTL.
// false — запись по TTL уже истекла.
func idleExpiry(maxIdle time.Duration, deadline, now time.Time) (time.Duration, bool) {
	if deadline.IsZero() {
		return maxIdle, true
	}
	left := deadline.Sub(now)
	if left < time.Millisecond {
		return 0, false
	}
	return min(maxIdle, left), true
}

func decode(data []byte) (record, error) {
	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return record{}, err
	}
	if rec.Order == nil {
		return record{}, errors.New("record without order")
	}
	return rec, nil
}
