package repositories

import (
	"errors"
	"fmt"
	"time"

	"catalogs/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetAllByOwner retrieves all categories belonging to the given owner.
func (r *GORMCategoryRepository) GetAllByOwner(ownerID string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories, "owner_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories for owner %s: %w", ownerID, err)
	}
	return categories, nil
}

// GetByIDAndOwner retrieves a single category by its ID, scoped to the owner.
func (r *GORMCategoryRepository) GetByIDAndOwner(id, ownerID string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// UpdateFields applies the given column values to an existing category.
// An empty field set is a no-op.
func (r *GORMCategoryRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&models.Category{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update category %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes a category by its ID, scoped to the owner.
func (r *GORMCategoryRepository) Delete(id, ownerID string) error {
	res := r.db.Delete(&models.Category{}, "id = ? AND owner_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
