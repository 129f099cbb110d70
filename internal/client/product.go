package client

import (
	"context"
	"fmt"

	"github.com/fjod/shopease/internal/domain"
)

type ProductClient struct {
	*Client
}

func NewProductClient(c *Client) *ProductClient {
	return &ProductClient{Client: c}
}

func (c *ProductClient) List(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.get(ctx, "/products", &dtos); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (c *ProductClient) Get(ctx context.Context, id int64) (domain.Product, error) {
	var dto productDTO
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &dto); err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return dto.toDomain(), nil
}

// CreateProductRequest is the admin add-product form payload.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
}

func (c *ProductClient) Create(ctx context.Context, req CreateProductRequest) (domain.Product, error) {
	var dto productDTO
	if err := c.post(ctx, "/products", req, &dto); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return dto.toDomain(), nil
}
