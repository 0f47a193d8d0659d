package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stockpilot/backend-go/internal/domain"
)

type stubProductRepo struct {
	lastInput domain.CreateProductInput
	calls     int
	id        int64
	err       error
}

func (r *stubProductRepo) CreateProductWithInventory(ctx context.Context, input domain.CreateProductInput) (int64, error) {
	r.calls++
	r.lastInput = input
	return r.id, r.err
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestProductService_RejectsIncompleteInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.CreateProductInput
	}{
		{"missing name", domain.CreateProductInput{SKU: "SKU-1", WarehouseID: 1}},
		{"missing sku", domain.CreateProductInput{Name: "Beans", WarehouseID: 1}},
		{"missing warehouse", domain.CreateProductInput{Name: "Beans", SKU: "SKU-1"}},
		{"negative warehouse", domain.CreateProductInput{Name: "Beans", SKU: "SKU-1", WarehouseID: -3}},
		{"negative price", domain.CreateProductInput{Name: "Beans", SKU: "SKU-1", WarehouseID: 1, Price: floatPtr(-0.01)}},
		{"negative quantity", domain.CreateProductInput{Name: "Beans", SKU: "SKU-1", WarehouseID: 1, InitialQuantity: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubProductRepo{}
			svc := NewProductService(repo)

			id, err := svc.CreateProduct(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, id)
			assert.Zero(t, repo.calls, "invalid input must never reach the repository")
		})
	}
}

func TestProductService_CreatesProduct(t *testing.T) {
	repo := &stubProductRepo{id: 42}
	svc := NewProductService(repo)

	input := domain.CreateProductInput{
		Name:            "Beans",
		SKU:             "BEAN-1",
		WarehouseID:     1,
		Price:           floatPtr(3.5),
		InitialQuantity: intPtr(20),
	}

	id, err := svc.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, input, repo.lastInput)
}

func TestProductService_OptionalFieldsMayBeAbsent(t *testing.T) {
	repo := &stubProductRepo{id: 7}
	svc := NewProductService(repo)

	id, err := svc.CreateProduct(context.Background(), domain.CreateProductInput{
		Name:        "Beans",
		SKU:         "BEAN-1",
		WarehouseID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestProductService_PassesThroughRepositoryErrors(t *testing.T) {
	repo := &stubProductRepo{err: domain.ErrDuplicateSKU}
	svc := NewProductService(repo)

	_, err := svc.CreateProduct(context.Background(), domain.CreateProductInput{
		Name:        "Beans",
		SKU:         "BEAN-1",
		WarehouseID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	repo.err = errors.New("connection reset")
	_, err = svc.CreateProduct(context.Background(), domain.CreateProductInput{
		Name:        "Beans",
		SKU:         "BEAN-1",
		WarehouseID: 1,
	})
	assert.ErrorIs(t, err, repo.err)
}
