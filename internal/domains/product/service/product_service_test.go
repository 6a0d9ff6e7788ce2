package service

import (
	"context"
	"encoding/json"
	"path"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/product/model"
)

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, pattern string) error {
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }

type countingRepo struct {
	rows      map[uuid.UUID]*model.Product
	findCalls int
	listCalls int
}

func newCountingRepo() *countingRepo {
	return &countingRepo{rows: map[uuid.UUID]*model.Product{}}
}

func (r *countingRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uuid.New()
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *countingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.findCalls++
	p, ok := r.rows[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *countingRepo) List(_ context.Context, _ *model.ListProductsFilter) ([]*model.Product, int, error) {
	r.listCalls++
	out := make([]*model.Product, 0, len(r.rows))
	for _, p := range r.rows {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *countingRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *countingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(r.rows, id)
	return nil
}

func TestProductService_GetIsCached(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	svc := NewProductService(repo, newMemCache())

	created, err := svc.Create(ctx, &model.CreateProductRequest{Name: "Lamp", Price: decimal.RequireFromString("19.999")})
	require.NoError(t, err)
	assert.Equal(t, "20", created.Price.String())

	for i := 0; i < 3; i++ {
		p, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lamp", p.Name)
	}
	assert.Equal(t, 1, repo.findCalls)
}

func TestProductService_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	c := newMemCache()
	svc := NewProductService(repo, c)

	created, err := svc.Create(ctx, &model.CreateProductRequest{Name: "Lamp", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	filter := &model.ListProductsFilter{Page: 1, Limit: 20}
	_, err = svc.List(ctx, filter)
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, c.data, 2)

	name := "Desk lamp"
	updated, err := svc.Update(ctx, created.ID, &model.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", updated.Name)
	assert.Empty(t, c.data)

	page, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "Desk lamp", page.Items[0].Name)
	assert.Equal(t, 2, repo.listCalls)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, c.data)
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}
