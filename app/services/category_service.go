package services

import (
	"errors"
	"fmt"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CategoryService manages the category taxonomy
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repositories.CategoryRepository, userRepo repositories.UserRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, userRepo: userRepo}
}

// CreateCategory adds a new category. Admin only; names are unique.
func (s *CategoryService) CreateCategory(actorID int, name, description string) (*models.Category, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Description: description}
	if err := category.Validate(); err != nil {
		return nil, apperr.Invalid("invalid category", err)
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.New(apperr.ErrDuplicate, "category already exists", err)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// ListCategories returns every category, alphabetically
func (s *CategoryService) ListCategories() ([]*models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches one category by id
func (s *CategoryService) GetCategory(id int) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("category not found", err)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) requireAdmin(actorID int) error {
	if actorID <= 0 {
		return apperr.Unauthenticated("authentication required")
	}
	profile, err := s.userRepo.GetProfile(actorID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperr.Unauthenticated("unknown user")
		}
		return err
	}
	if profile.UserType != models.UserTypeAdmin {
		return apperr.New(apperr.ErrForbidden, "admin access required", nil)
	}
	return nil
}
