// Package authz implements the ownership checks that gate every
// owner-scoped mutation. Ownership is always resolved through the shop
// row, never from a client-supplied shop id.
package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// OwnershipResolver resolves the owning user of a resource by joining
// through the shops table. Implementations return shared.ErrNotFound
// when the resource does not exist.
type OwnershipResolver interface {
	ShopOwner(ctx context.Context, shopID uuid.UUID) (uuid.UUID, error)
	ProductOwner(ctx context.Context, productID uuid.UUID) (uuid.UUID, error)
	OrderOwner(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error)
}

// Guard authorizes principals against owned resources
type Guard struct {
	resolver OwnershipResolver
}

// NewGuard creates a new ownership guard
func NewGuard(resolver OwnershipResolver) *Guard {
	return &Guard{resolver: resolver}
}

// AuthorizeShop permits the action iff principalID owns the shop
func (g *Guard) AuthorizeShop(ctx context.Context, principalID, shopID uuid.UUID) error {
	return g.check(ctx, principalID, func(ctx context.Context) (uuid.UUID, error) {
		return g.resolver.ShopOwner(ctx, shopID)
	})
}

// AuthorizeProduct permits the action iff principalID owns the
// product's shop
func (g *Guard) AuthorizeProduct(ctx context.Context, principalID, productID uuid.UUID) error {
	return g.check(ctx, principalID, func(ctx context.Context) (uuid.UUID, error) {
		return g.resolver.ProductOwner(ctx, productID)
	})
}

// AuthorizeOrder permits the action iff principalID owns the order's
// shop
func (g *Guard) AuthorizeOrder(ctx context.Context, principalID, orderID uuid.UUID) error {
	return g.check(ctx, principalID, func(ctx context.Context) (uuid.UUID, error) {
		return g.resolver.OrderOwner(ctx, orderID)
	})
}

// check collapses "resource missing" and "not the owner" into the same
// generic denial so unauthorized principals cannot probe for existence.
func (g *Guard) check(ctx context.Context, principalID uuid.UUID, resolve func(context.Context) (uuid.UUID, error)) error {
	if principalID == uuid.Nil {
		return shared.ErrForbidden
	}
	owner, err := resolve(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrForbidden
		}
		return err
	}
	if owner != principalID {
		return shared.ErrForbidden
	}
	return nil
}
