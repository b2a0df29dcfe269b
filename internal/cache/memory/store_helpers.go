package memory

import (
	"container/list"
	"context"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

// put — общая часть Put/PutWithTTL.
func (s *Store) put(ctx context.Context, key string, order *domain.Order, ttl time.Duration) error {
	if order == nil {
		return errNilOrder
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.insert(key, order, ttl, s.now())
	s.mu.Unlock()

	s.counters.Put()
	metrics.CacheOps.WithLabelValues("put").Inc()
	if s.writeThrough && s.loader != nil {
		s.loader.Store(ctx, key, order)
	}
	return nil
}

// insert — вставка/обновление под s.mu; при переполнении вытесняет LRU.
func (s *Store) insert(key string, order *domain.Order, ttl time.Duration, now time.Time) {
	if elem, ok := s.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.order = order.Clone()
		ent.expiresAt = expiryFrom(now, ttl)
		ent.lastAccess = now
		s.ll.MoveToFront(elem)
		return
	}

	s.pruneExpiredFromBack(now)

	elem := s.ll.PushFront(&entry{
		key:        key,
		order:      order.Clone(),
		expiresAt:  expiryFrom(now, ttl),
		lastAccess: now,
	})
	s.index[key] = elem

	if s.ll.Len() > s.capacity {
		s.evictLRU()
	}
	s.reportSize()
}

// drop — удалить ключ, если он есть.
func (s *Store) drop(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.index[key]
	if !ok {
		return false
	}
	s.removeElement(elem)
	s.reportSize()
	return true
}

// evictLRU — удаляет наименее используемый элемент.
func (s *Store) evictLRU() {
	if back := s.ll.Back(); back != nil {
		s.removeElement(back)
		s.counters.Evict()
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (s *Store) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(s.index, ent.key)
	}
	s.ll.Remove(elem)
}

// isExpired — истёк TTL записи или превышен простой.
func (s *Store) isExpired(ent *entry, now time.Time) bool {
	if !ent.expiresAt.IsZero() && now.After(ent.expiresAt) {
		return true
	}
	return s.maxIdle > 0 && now.Sub(ent.lastAccess) > s.maxIdle
}

// pruneExpiredFromBack — удаляет истёкшие элементы из хвоста до первого актуального.
func (s *Store) pruneExpiredFromBack(now time.Time) {
	for {
		back := s.ll.Back()
		if back == nil {
			return
		}
		if !s.isExpired(back.Value.(*entry), now) {
			return
		}
		s.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}

func (s *Store) reportSize() {
	metrics.CacheSize.WithLabelValues(s.name).Set(float64(len(s.index)))
}

// expiryFrom — момент истечения; ttl <= 0 — без истечения.
func expiryFrom(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
