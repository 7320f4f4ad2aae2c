package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/support-kit/helpdesk-service/internal/cache"
	"github.com/support-kit/helpdesk-service/internal/domain"
	"github.com/support-kit/helpdesk-service/internal/repository"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

const categoryListKey = "categories:all"

// CreateCategoryInput carries a validated creation payload.
type CreateCategoryInput struct {
	Name        string
	Description *string
}

// UpdateCategoryInput is a partial update; nil fields are left untouched.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether no field is set.
func (in UpdateCategoryInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil
}

// CategoryService is plain CRUD over categories with a fail-safe read
// cache. The only invariant is name uniqueness.
type CategoryService struct {
	categories repository.CategoryRepository
	cache      *cache.Client
	cacheTTL   time.Duration
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, cacheClient *cache.Client, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{categories: categories, cache: cacheClient, cacheTTL: cacheTTL}
}

// Create persists a new category.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	if in.Name == "" {
		return nil, apperrors.NewBadRequest("a category name is required", nil)
	}

	if _, err := s.categories.GetByName(ctx, in.Name); err == nil {
		return nil, apperrors.NewConflict("category name already exists", map[string]any{"name": in.Name})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	category := &domain.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("category name already exists", map[string]any{"name": in.Name})
		}
		return nil, apperrors.MapError(err)
	}

	s.cache.Delete(ctx, categoryListKey)
	return category, nil
}

// GetByID returns the category, preferring the cache.
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequest("a valid id is required", nil)
	}

	key := categoryKey(id)
	if raw, _ := s.cache.Get(ctx, key); raw != nil {
		var category domain.Category
		if err := json.Unmarshal(raw, &category); err == nil {
			return &category, nil
		}
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if raw, err := json.Marshal(category); err == nil {
		s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	return category, nil
}

// List returns all categories, preferring the cache.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if raw, _ := s.cache.Get(ctx, categoryListKey); raw != nil {
		var categories []domain.Category
		if err := json.Unmarshal(raw, &categories); err == nil && len(categories) > 0 {
			return categories, nil
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFound("categories", nil)
	}

	if raw, err := json.Marshal(categories); err == nil {
		s.cache.Set(ctx, categoryListKey, raw, s.cacheTTL)
	}
	return categories, nil
}

// Update applies a partial update and invalidates cached entries.
func (s *CategoryService) Update(ctx context.Context, id int64, in UpdateCategoryInput) (*domain.Category, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequest("a valid id is required", nil)
	}
	if in.IsEmpty() {
		return nil, apperrors.NewBadRequest("no fields provided to update", nil)
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperrors.NewBadRequest("a category name is required", nil)
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = in.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("category name already in use", map[string]any{"name": category.Name})
		}
		return nil, apperrors.MapError(err)
	}

	s.cache.Delete(ctx, categoryKey(id), categoryListKey)
	return category, nil
}

// Delete removes the category and invalidates cached entries.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequest("a valid id is required", nil)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	s.cache.Delete(ctx, categoryKey(id), categoryListKey)
	return nil
}

func categoryKey(id int64) string {
	return fmt.Sprintf("category:%d", id)
}
