package models

import "time"

// Product belongs to a category owned by the same user. Price is strictly
// positive.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	CategoryID  string    `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	OwnerID     string    `json:"owner_id" gorm:"index;type:varchar(36)"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductUpdate carries the fields of a partial update. Nil fields are left
// untouched on the stored record.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	CategoryID  *string  `json:"category_id" validate:"omitempty"`
}

// Fields returns the column set to apply, keyed by column name.
func (u ProductUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.CategoryID != nil {
		fields["category_id"] = *u.CategoryID
	}
	return fields
}
