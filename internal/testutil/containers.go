// Package testutil поднимает инфраструктуру для интеграционных тестов через testcontainers.
// Каждый хелпер сам останавливает контейнер в t.Cleanup.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupTimeout = 2 * time.Minute

// Endpoint — адрес поднятого контейнера.
type Endpoint struct {
	Host string
	Port string
}

// Addr возвращает адрес "host:port".
func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%s", e.Host, e.Port)
}

// mappedPort — порт, проброшенный из контейнера (nat.Port).
type mappedPort interface {
	Port() string
}

// endpoint собирает адрес из хоста контейнера и результата MappedPort:
// endpoint(ctx, c)(c.MappedPort(ctx, "6379")).
func endpoint(ctx context.Context, c testcontainers.Container) func(mappedPort, error) (Endpoint, error) {
	return func(port mappedPort, err error) (Endpoint, error) {
		if err != nil {
			return Endpoint{}, fmt.Errorf("container port: %w", err)
		}
		host, err := c.Host(ctx)
		if err != nil {
			return Endpoint{}, fmt.Errorf("container host: %w", err)
		}
		return Endpoint{Host: host, Port: port.Port()}, nil
	}
}

func terminateOnCleanup(t testing.TB, c testcontainers.Container) {
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
}

func skipShort(t testing.TB) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
}

// Postgres — параметры тестового PostgreSQL.
type Postgres struct {
	Endpoint
	User     string
	Password string
	DBName   string
}

// StartPostgres поднимает PostgreSQL в Docker.
func StartPostgres(t testing.TB) Postgres {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	const (
		user     = "test"
		password = "test"
		dbName   = "testdb"
	)
	c, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	terminateOnCleanup(t, c)

	ep, err := endpoint(ctx, c)(c.MappedPort(ctx, "5432"))
	if err != nil {
		t.Fatal(err)
	}
	return Postgres{Endpoint: ep, User: user, Password: password, DBName: dbName}
}

// StartRedis поднимает Redis в Docker.
func StartRedis(t testing.TB) Endpoint {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	terminateOnCleanup(t, c)

	ep, err := endpoint(ctx, c)(c.MappedPort(ctx, "6379"))
	if err != nil {
		t.Fatal(err)
	}
	return ep
}

// StartMongo поднимает MongoDB в Docker и возвращает URI подключения.
func StartMongo(t testing.TB) string {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := mongodb.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}
	terminateOnCleanup(t, c)

	ep, err := endpoint(ctx, c)(c.MappedPort(ctx, "27017"))
	if err != nil {
		t.Fatal(err)
	}
	return "mongodb://" + ep.Addr()
}

// ClickHouse — параметры тестового ClickHouse (нативный протокол).
type ClickHouse struct {
	Endpoint
	User     string
	Password string
	Database string
}

// StartClickHouse поднимает ClickHouse в Docker.
func StartClickHouse(t testing.TB) ClickHouse {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	const (
		user     = "default"
		password = "test"
		database = "default"
	)
	c, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:24-alpine",
		clickhouse.WithUsername(user),
		clickhouse.WithPassword(password),
		clickhouse.WithDatabase(database),
	)
	if err != nil {
		t.Fatalf("clickhouse container: %v", err)
	}
	terminateOnCleanup(t, c)

	ep, err := endpoint(ctx, c)(c.MappedPort(ctx, "9000"))
	if err != nil {
		t.Fatal(err)
	}
	return ClickHouse{Endpoint: ep, User: user, Password: password, Database: database}
}
