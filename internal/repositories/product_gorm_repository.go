package repositories

import (
	"errors"
	"fmt"
	"time"

	"catalogs/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetAllByOwner retrieves all products belonging to the given owner.
func (r *GORMProductRepository) GetAllByOwner(ownerID string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products, "owner_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for owner %s: %w", ownerID, err)
	}
	return products, nil
}

// GetByIDAndOwner retrieves a single product by its ID, scoped to the owner.
func (r *GORMProductRepository) GetByIDAndOwner(id, ownerID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// UpdateFields applies the given column values to an existing product.
// An empty field set is a no-op.
func (r *GORMProductRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes a product by its ID, scoped to the owner.
func (r *GORMProductRepository) Delete(id, ownerID string) error {
	res := r.db.Delete(&models.Product{}, "id = ? AND owner_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ExistsByCategory reports whether any product, regardless of owner,
// references the given category.
func (r *GORMProductRepository) ExistsByCategory(categoryID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count products for category %s: %w", categoryID, err)
	}
	return count > 0, nil
}
