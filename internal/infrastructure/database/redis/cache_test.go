package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
)

func TestFullKey(t *testing.T) {
	c := &redisCache{prefix: "deepdock:"}
	assert.Equal(t, "deepdock:prediction:LIG-0001", c.fullKey("prediction:LIG-0001"))
}

func TestJitterTTL(t *testing.T) {
	c := &redisCache{}
	base := time.Hour
	for i := 0; i < 100; i++ {
		j := c.jitterTTL(base)
		assert.GreaterOrEqual(t, j, time.Duration(float64(base)*0.9))
		assert.LessOrEqual(t, j, time.Duration(float64(base)*1.1))
	}
	assert.Equal(t, time.Duration(0), c.jitterTTL(0))
}

func TestCacheOptions(t *testing.T) {
	c := NewCache(nil, logging.NewNop(),
		WithPrefix("test:"),
		WithDefaultTTL(time.Minute),
		WithNullTTL(5*time.Second),
	).(*redisCache)

	assert.Equal(t, "test:", c.prefix)
	assert.Equal(t, time.Minute, c.defaultTTL)
	assert.Equal(t, 5*time.Second, c.nullTTL)
}
