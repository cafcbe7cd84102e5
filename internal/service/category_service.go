package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	eventRepo    domain.EventRepository
	publisher    RefreshPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, eventRepo domain.EventRepository, publisher RefreshPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
		publisher:    publisher,
	}
}

// CategoryInput is one category in a bulk create
type CategoryInput struct {
	Name string
	Type domain.CategoryType
}

// CreateCategories creates a batch of categories under an event. The event
// creation form submits these in a second call after the event itself; if
// this call fails the event stays as created, category-less. There is no
// cross-call rollback.
func (s *CategoryService) CreateCategories(eventID uuid.UUID, inputs []CategoryInput) ([]*domain.Category, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		if !domain.ValidCategoryType(input.Type) {
			return nil, domain.ErrInvalidCategoryType
		}
		categories = append(categories, &domain.Category{
			EventID: eventID,
			Name:    name,
			Type:    input.Type,
		})
	}

	created, err := s.categoryRepo.CreateMany(categories)
	if err != nil {
		return nil, err
	}
	s.publisher.PublishRefresh(eventID, ResourceCategory)
	return created, nil
}

// GetCategories retrieves all categories for an event
func (s *CategoryService) GetCategories(eventID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.GetByEvent(eventID)
}

// DeleteCategory deletes a category. Deletion is allowed even when entries
// still reference it; those entries lose their category and become
// Unclassified, dropping out of the totals until reassigned.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.publisher.PublishRefresh(category.EventID, ResourceCategory)
	return nil
}
