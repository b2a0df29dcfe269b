//go:build integration

package rediscache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/rediscache"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports/mocks"
	"github.com/Gunvolt24/bookstore_orders/internal/testutil"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func setupStore(t *testing.T, cfg rediscache.Config, loader *mocks.MockOrderMapStore) (*rediscache.Store, context.Context) {
	t.Helper()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	rc, stop, err := testutil.StartRedisTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stop(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	client, err := rediscache.NewClient(ctx, rc.Addr, "", 0)
	require.NoError(t, err)

	var store *rediscache.Store
	if loader == nil {
		store = rediscache.NewStore(client, cfg, nil, noopLogger{})
	} else {
		store = rediscache.NewStore(client, cfg, loader, noopLogger{})
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, ctx
}

func TestRedisStore_CRUD_TC(t *testing.T) {
	store, ctx := setupStore(t, rediscache.Config{Name: "orders-cache", TTL: time.Hour, StatsEnabled: true}, nil)

	order := testutil.MakeOrder()
	key := order.OrderNumber

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, store.Put(ctx, key, &order))
	exists, err := store.ContainsKey(ctx, key)
	require.NoError(t, err)
	require.True(t, exists)

	got, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, order.OrderNumber, got.OrderNumber)
	require.Equal(t, order.Item, got.Item)
	require.True(t, order.CreatedAt.Equal(got.CreatedAt))

	order.Status = domain.StatusDelivered
	replaced, err := store.Replace(ctx, key, &order)
	require.NoError(t, err)
	require.True(t, replaced)

	replaced, err = store.Replace(ctx, "ORD-MISSING", &order)
	require.NoError(t, err)
	require.False(t, replaced)

	size, err := store.Size(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, size)

	removed, err := store.Remove(ctx, key)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = store.Remove(ctx, key)
	require.NoError(t, err)
	require.False(t, removed)

	st := store.Stats()
	require.Equal(t, int64(1), st.Hits)
	require.Equal(t, int64(1), st.Misses)
}

func TestRedisStore_PutWithTTLExpires_TC(t *testing.T) {
	store, ctx := setupStore(t, rediscache.Config{Name: "orders-ttl"}, nil)

	order := testutil.MakeOrder()
	require.NoError(t, store.PutWithTTL(ctx, order.OrderNumber, &order, time.Second))

	require.Eventually(t, func() bool {
		ok, err := store.ContainsKey(ctx, order.OrderNumber)
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisStore_ReadThroughAndWriteThrough_TC(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockOrderMapStore(ctrl)
	store, ctx := setupStore(t, rediscache.Config{Name: "orders-rt", TTL: time.Hour, WriteThrough: true}, loader)

	loaded := testutil.MakeOrder()
	loader.EXPECT().Load(gomock.Any(), loaded.OrderNumber).Return(&loaded).Times(1)

	got, err := store.Get(ctx, loaded.OrderNumber)
	require.NoError(t, err)
	require.NotNil(t, got)

	// второе чтение: уже из Redis
	got, err = store.Get(ctx, loaded.OrderNumber)
	require.NoError(t, err)
	require.NotNil(t, got)

	written := testutil.MakeOrder()
	loader.EXPECT().Store(gomock.Any(), written.OrderNumber, gomock.Any()).Times(1)
	require.NoError(t, store.Put(ctx, written.OrderNumber, &written))

	// Evict не вызывает Delete у загрузчика
	evicted, err := store.Evict(ctx, written.OrderNumber)
	require.NoError(t, err)
	require.True(t, evicted)
}

func TestRedisStore_FrequentReadsDoNotOutliveTTL_TC(t *testing.T) {
	store, ctx := setupStore(t, rediscache.Config{Name: "orders-idle", TTL: 1500 * time.Millisecond, MaxIdle: time.Second}, nil)

	order := testutil.MakeOrder()
	require.NoError(t, store.Put(ctx, order.OrderNumber, &order))

	// чтение чаще, чем истекает простой: продлевается только до TTL
	start := time.Now()
	for {
		got, err := store.Get(ctx, order.OrderNumber)
		require.NoError(t, err)
		if got == nil {
			break
		}
		require.Less(t, time.Since(start), 4*time.Second, "entry outlived its ttl")
		time.Sleep(200 * time.Millisecond)
	}
	require.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestRedisStore_PutWithTTLNotExtendedByIdle_TC(t *testing.T) {
	store, ctx := setupStore(t, rediscache.Config{Name: "orders-ttl-idle", TTL: time.Hour, MaxIdle: time.Hour}, nil)

	order := testutil.MakeOrder()
	require.NoError(t, store.PutWithTTL(ctx, order.OrderNumber, &order, time.Second))

	require.Eventually(t, func() bool {
		got, err := store.Get(ctx, order.OrderNumber)
		return err == nil && got == nil
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisStore_LoadDoesNotOverwriteConcurrentPut_TC(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockOrderMapStore(ctrl)
	store, ctx := setupStore(t, rediscache.Config{Name: "orders-race", TTL: time.Hour}, loader)

	stale := testutil.MakeOrder()
	stale.Status = domain.StatusNew
	key := stale.OrderNumber

	loading := make(chan struct{})
	release := make(chan struct{})
	loader.EXPECT().Load(gomock.Any(), key).DoAndReturn(func(context.Context, string) *domain.Order {
		close(loading)
		<-release
		return &stale
	})

	var (
		wg      sync.WaitGroup
		loadErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, loadErr = store.Get(ctx, key)
	}()

	<-loading
	fresh := stale
	fresh.Status = domain.StatusDelivered
	require.NoError(t, store.Put(ctx, key, &fresh))
	close(release)
	wg.Wait()
	require.NoError(t, loadErr)

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.StatusDelivered, got.Status)
}
