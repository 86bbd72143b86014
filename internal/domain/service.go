package domain

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
)

// CatalogService provides generic business logic for catalog entities.
// Concrete services embed it and add entity-specific operations.
type CatalogService[T entity.Validatable] struct {
	repo  CatalogRepository[T]
	txm   tx.Manager
	hooks *HookRegistry[T]
}

// NewCatalogService creates a catalog service.
func NewCatalogService[T entity.Validatable](repo CatalogRepository[T], txm tx.Manager) *CatalogService[T] {
	return &CatalogService[T]{
		repo:  repo,
		txm:   txm,
		hooks: NewHookRegistry[T](),
	}
}

// Hooks exposes the registry so callers can attach lifecycle hooks.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// Create validates and persists a new entity.
func (s *CatalogService[T]) Create(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return err
	}
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.RunBeforeCreate(ctx, ent); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, ent); err != nil {
			return err
		}
		return s.hooks.RunAfterCreate(ctx, ent)
	})
}

// GetByID retrieves an entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	var zero T
	if id.IsNil(entityID) {
		return zero, apperror.NewValidation("id is required")
	}
	return s.repo.GetByID(ctx, entityID)
}

// Update validates and saves changes to an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return err
	}
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.RunBeforeUpdate(ctx, ent); err != nil {
			return err
		}
		return s.repo.Update(ctx, ent)
	})
}

// SetDeletionMark toggles the soft-delete mark on an entity.
func (s *CatalogService[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		ent, err := s.repo.GetByID(ctx, entityID)
		if err != nil {
			return err
		}
		if marked {
			if err := s.hooks.RunBeforeDelete(ctx, ent); err != nil {
				return err
			}
		}
		return s.repo.SetDeletionMark(ctx, entityID, marked)
	})
}

// List retrieves entities with filtering and pagination.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return s.repo.List(ctx, filter)
}

// Exists checks whether an entity with the given ID exists.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}
