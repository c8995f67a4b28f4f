package repositories

import "catalogs/internal/models"

// CategoryRepository defines the interface for category data access. All
// lookups except Create are scoped to the owning user.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetAllByOwner(ownerID string) ([]models.Category, error)
	GetByIDAndOwner(id, ownerID string) (*models.Category, error)
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id, ownerID string) error
}
