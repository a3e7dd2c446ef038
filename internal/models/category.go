package models

import "time"

// Category groups products by free-text name match (Product.Category holds
// the category name, not an ID). ProductCount is derived at read time and
// never stored.
type Category struct {
	ID           string    `json:"id" firestore:"-"`
	Name         string    `json:"name" firestore:"name" validate:"required,notblank"`
	Slug         string    `json:"slug" firestore:"slug"`
	Description  string    `json:"description,omitempty" firestore:"description,omitempty"`
	ProductCount int64     `json:"productCount" firestore:"-"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" firestore:"updatedAt"`
}
