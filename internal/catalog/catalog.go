package catalog

import (
	"context"
	"fmt"

	"quickcart/internal/models"
)

type ProductNotFoundError struct {
	ID string
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}

// Provider is the read-only catalog contract the storefront consumes.
type Provider interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
}

// CreateInput is the admin-side shape for a new catalog entry.
type CreateInput struct {
	Name           string
	Price          float64
	Category       string
	Description    string
	ImageURL       string
	Stock          int
	Specifications map[string]string
}

// UpdateInput patches a catalog entry; nil fields are left untouched.
type UpdateInput struct {
	Name           *string
	Price          *float64
	Category       *string
	Description    *string
	ImageURL       *string
	Stock          *int
	Specifications *map[string]string
}

// Writer is the admin-side catalog contract.
type Writer interface {
	Create(ctx context.Context, input CreateInput) (models.Product, error)
	Update(ctx context.Context, id string, input UpdateInput) (models.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}
