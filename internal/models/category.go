package models

import "time"

// Category groups products. OwnerID is set from the authenticated user at
// creation time and is never updated afterwards.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	OwnerID     string    `json:"owner_id" gorm:"index;type:varchar(36)"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryUpdate carries the fields of a partial update. Nil fields are left
// untouched on the stored record.
type CategoryUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// Fields returns the column set to apply, keyed by column name. An empty map
// means the update is a no-op.
func (u CategoryUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	return fields
}
