package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyKey(t *testing.T) {
	assert.Equal(t, "company:42", companyKey(42))
	assert.Equal(t, "company:0", companyKey(0))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Noop

	require.NoError(t, c.Set(ctx, &model.CompanyDetail{Company: model.Company{ID: 1}}))

	detail, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, detail)

	assert.NoError(t, c.Invalidate(ctx, 1))
}

func TestCompanyCache_ClosedClientReturnsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	require.NoError(t, client.Close())

	c := NewCompanyCache(client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	detail, err := c.Get(ctx, 7)
	assert.Error(t, err)
	assert.Nil(t, detail)
	assert.Contains(t, err.Error(), "company 7")

	err = c.Set(ctx, &model.CompanyDetail{Company: model.Company{ID: 7}})
	assert.Error(t, err)

	assert.Error(t, c.Invalidate(ctx, 7))
}
