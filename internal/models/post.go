package models

import "time"

// BlogPost is an article on the content site.
type BlogPost struct {
	ID         string    `json:"id" firestore:"-"`
	Title      string    `json:"title" firestore:"title" validate:"required,notblank"`
	Slug       string    `json:"slug" firestore:"slug"`
	Content    string    `json:"content" firestore:"content" validate:"required,notblank"`
	CoverImage string    `json:"coverImage,omitempty" firestore:"coverImage,omitempty" validate:"omitempty,url"`
	Tags       []string  `json:"tags" firestore:"tags"`
	Status     string    `json:"status" firestore:"status" validate:"omitempty,oneof=draft published"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt"`
}
