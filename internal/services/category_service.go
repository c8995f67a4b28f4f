package services

import (
	"errors"
	"fmt"
	"log"

	"catalogs/internal/models"
	"catalogs/internal/repositories"
)

// CategoryService handles business logic related to categories. Every
// operation is scoped to the owning user; a category owned by someone else is
// indistinguishable from a missing one.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	publisher    EventPublisher
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		publisher:    publisher,
	}
}

// Create persists a new category owned by the given user.
func (s *CategoryService) Create(owner *models.User, name, description string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Description: description,
		OwnerID:     owner.ID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.publish("category.created", category)
	return category, nil
}

// List returns all categories owned by the given user.
func (s *CategoryService) List(owner *models.User) ([]models.Category, error) {
	return s.categoryRepo.GetAllByOwner(owner.ID)
}

// Get returns a single owned category, or ErrCategoryNotFound.
func (s *CategoryService) Get(owner *models.User, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByIDAndOwner(id, owner.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Update applies the non-nil fields of upd to an owned category and returns
// the re-fetched record. An empty field set leaves the record untouched.
func (s *CategoryService) Update(owner *models.User, id string, upd models.CategoryUpdate) (*models.Category, error) {
	if _, err := s.Get(owner, id); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.UpdateFields(id, upd.Fields()); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	// The post-update fetch failing means the record vanished between the
	// write and the read. Surface it rather than returning stale data.
	category, err := s.categoryRepo.GetByIDAndOwner(id, owner.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Delete permanently removes an owned category. A category referenced by any
// product, regardless of that product's owner, cannot be deleted.
func (s *CategoryService) Delete(owner *models.User, id string) error {
	inUse, err := s.productRepo.ExistsByCategory(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id, owner.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	s.publish("category.deleted", map[string]string{"id": id, "owner_id": owner.ID})
	return nil
}

func (s *CategoryService) publish(event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
