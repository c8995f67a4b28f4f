package services

import (
	"errors"
	"fmt"
	"log"

	"catalogs/internal/models"
	"catalogs/internal/repositories"
)

// ProductService handles business logic related to products. A product may
// only reference a category owned by the same user, checked on create and
// whenever an update changes the category.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	publisher    EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Create persists a new product owned by the given user. The price is
// validated before any store access; the category must resolve to one the
// user owns, otherwise ErrCategoryNotFound.
func (s *ProductService) Create(owner *models.User, name, description string, price float64, categoryID string) (*models.Product, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	if _, err := s.categoryRepo.GetByIDAndOwner(categoryID, owner.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		OwnerID:     owner.ID,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.publish("product.created", product)
	return product, nil
}

// List returns all products owned by the given user.
func (s *ProductService) List(owner *models.User) ([]models.Product, error) {
	return s.productRepo.GetAllByOwner(owner.ID)
}

// Get returns a single owned product, or ErrProductNotFound.
func (s *ProductService) Get(owner *models.User, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByIDAndOwner(id, owner.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Update applies the non-nil fields of upd to an owned product and returns
// the re-fetched record. A new category is re-validated against the owner's
// categories before anything is written.
func (s *ProductService) Update(owner *models.User, id string, upd models.ProductUpdate) (*models.Product, error) {
	if upd.Price != nil && *upd.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	if _, err := s.Get(owner, id); err != nil {
		return nil, err
	}

	if upd.CategoryID != nil {
		if _, err := s.categoryRepo.GetByIDAndOwner(*upd.CategoryID, owner.ID); err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	if err := s.productRepo.UpdateFields(id, upd.Fields()); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product, err := s.productRepo.GetByIDAndOwner(id, owner.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Delete permanently removes an owned product. Nothing references products,
// so no referential check is needed.
func (s *ProductService) Delete(owner *models.User, id string) error {
	if err := s.productRepo.Delete(id, owner.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.publish("product.deleted", map[string]string{"id": id, "owner_id": owner.ID})
	return nil
}

func (s *ProductService) publish(event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
