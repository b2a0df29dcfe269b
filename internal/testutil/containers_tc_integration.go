//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupDeadline = 60 * time.Second

// StopFunc — остановка контейнера и освобождение связанных ресурсов.
type StopFunc func(context.Context) error

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycleLog — строка в лог на старте, готовности и остановке контейнера.
func lifecycleLog(kind string) tc.ContainerLifecycleHooks {
	event := func(stage string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			tcLogger.Printf("%s %s id=%s", kind, stage, id)
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PostStarts:     []tc.ContainerHook{event("started")},
		PostReadies:    []tc.ContainerHook{event("ready")},
		PostTerminates: []tc.ContainerHook{event("terminated")},
	}
}

// PGContainer — Postgres для интеграционных тестов репозитория и HTTP.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

func StartPostgresTC(ctx context.Context) (*PGContainer, StopFunc, error) {
	pg, err := postgres.Run(ctx, "postgres:16-alpine",
		tc.WithLifecycleHooks(lifecycleLog("postgres")),
		postgres.WithDatabase("bookstore_orders"),
		postgres.WithUsername("bookstore"),
		postgres.WithPassword("bookstore"),
		tc.WithWaitStrategy(wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			// первый "ready" приходит от временного сервера initdb
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(startupDeadline)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}
	fail := func(step string, err error) (*PGContainer, StopFunc, error) {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("%s: %w", step, err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail("postgres dsn", err)
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fail("parse pool config", err)
	}
	cfg.MaxConns = 5
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fail("new pool", err)
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &PGContainer{Container: pg, Pool: pool, DSN: dsn}, stop, nil
}

// RedisContainer — Redis с ограничением памяти и вытеснением allkeys-lru,
// как в окружении, где кэш заказов ограничен по размеру.
type RedisContainer struct {
	Container tc.Container
	Addr      string
}

func StartRedisTC(ctx context.Context) (*RedisContainer, StopFunc, error) {
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:          "redis:7-alpine",
			ExposedPorts:   []string{"6379/tcp"},
			Cmd:            []string{"redis-server", "--maxmemory", "64mb", "--maxmemory-policy", "allkeys-lru", "--save", ""},
			LifecycleHooks: []tc.ContainerLifecycleHooks{lifecycleLog("redis")},
			WaitingFor:     wait.ForLog("Ready to accept connections").WithStartupTimeout(startupDeadline),
		},
		Started: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}

	addr, err := c.Endpoint(ctx, "")
	if err != nil {
		_ = tc.TerminateContainer(c)
		return nil, nil, fmt.Errorf("redis endpoint: %w", err)
	}
	return &RedisContainer{Container: c, Addr: addr}, func(context.Context) error { return tc.TerminateContainer(c) }, nil
}

// KafkaEnv — Redpanda (Kafka API) с автосозданием топиков.
// BaseTopic — префикс, от которого тесты строят уникальные имена топиков.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, StopFunc, error) {
	rp, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycleLog("redpanda")),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}
	env := &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}
	return env, func(context.Context) error { return tc.TerminateContainer(rp) }, nil
}
