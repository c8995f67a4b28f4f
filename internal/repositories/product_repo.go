package repositories

import "catalogs/internal/models"

// ProductRepository defines the interface for product data access.
// ExistsByCategory is deliberately not owner-scoped: a product belonging to
// any user blocks deletion of the category it references.
type ProductRepository interface {
	Create(product *models.Product) error
	GetAllByOwner(ownerID string) ([]models.Product, error)
	GetByIDAndOwner(id, ownerID string) (*models.Product, error)
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id, ownerID string) error
	ExistsByCategory(categoryID string) (bool, error)
}
