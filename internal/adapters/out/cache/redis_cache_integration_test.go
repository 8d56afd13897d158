package cache_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/cache"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type listing struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type RedisCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
	cache     *cache.RedisCache
}

func (suite *RedisCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	suite.Require().NoError(err)

	rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{Host: host, Port: port.Port()})
	suite.Require().NoError(err)
	suite.rdb = rdb
	suite.cache = cache.NewRedisCache(rdb)
}

func (suite *RedisCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.rdb.FlushDB(context.Background()).Err())
}

func (suite *RedisCacheIntegrationTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		suite.Require().NoError(suite.rdb.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisCacheIntegrationTestSuite) TestGet_Miss() {
	var dest []listing

	hit, err := suite.cache.Get(context.Background(), "pending_orders:main", &dest)

	suite.Require().NoError(err)
	suite.False(hit)
	suite.Nil(dest)
}

func (suite *RedisCacheIntegrationTestSuite) TestSetThenGet_RoundTrip() {
	ctx := context.Background()
	value := []listing{{ID: "a", Count: 1}, {ID: "b", Count: 2}}

	suite.Require().NoError(suite.cache.Set(ctx, "pending_orders:main", value, time.Minute))

	var dest []listing
	hit, err := suite.cache.Get(ctx, "pending_orders:main", &dest)
	suite.Require().NoError(err)
	suite.True(hit)
	suite.Equal(value, dest)

	ttl, err := suite.rdb.TTL(ctx, "pending_orders:main").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, 50*time.Second)
}

func (suite *RedisCacheIntegrationTestSuite) TestDelete_RemovesOnlyGivenKeys() {
	ctx := context.Background()
	suite.Require().NoError(suite.cache.Set(ctx, "pending_orders:main", []listing{}, time.Minute))
	suite.Require().NoError(suite.cache.Set(ctx, "pending_orders:edu", []listing{}, time.Minute))

	suite.Require().NoError(suite.cache.Delete(ctx, "pending_orders:main"))
	suite.Require().NoError(suite.cache.Delete(ctx))

	var dest []listing
	hit, err := suite.cache.Get(ctx, "pending_orders:main", &dest)
	suite.Require().NoError(err)
	suite.False(hit)

	hit, err = suite.cache.Get(ctx, "pending_orders:edu", &dest)
	suite.Require().NoError(err)
	suite.True(hit)
}

func (suite *RedisCacheIntegrationTestSuite) TestGet_CorruptedValue() {
	ctx := context.Background()
	suite.Require().NoError(suite.rdb.Set(ctx, "delivery_persons:main", "not json", time.Minute).Err())

	var dest []listing
	hit, err := suite.cache.Get(ctx, "delivery_persons:main", &dest)

	suite.Error(err)
	suite.False(hit)
}

func TestRedisCacheIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(RedisCacheIntegrationTestSuite))
}
