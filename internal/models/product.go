package models

import "time"

// Publication status values shared by products and blog posts.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Product is an affiliate product listing. Slug is unique across the
// products collection; Status gates public visibility.
type Product struct {
	ID            string     `json:"id" firestore:"-"` // Firestore document ID, not stored in the document itself
	Name          string     `json:"name" firestore:"name" validate:"required,notblank"`
	Slug          string     `json:"slug" firestore:"slug"`
	Image         string     `json:"image" firestore:"image" validate:"required,url"`
	Description   string     `json:"description" firestore:"description" validate:"required,notblank"`
	AffiliateLink string     `json:"affiliateLink" firestore:"affiliateLink" validate:"required,url"`
	Category      string     `json:"category" firestore:"category" validate:"required,notblank"`
	Status        string     `json:"status" firestore:"status" validate:"omitempty,oneof=draft published"`
	Clicks        int64      `json:"clicks" firestore:"clicks"`
	LastClickedAt *time.Time `json:"lastClickedAt,omitempty" firestore:"lastClickedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" firestore:"updatedAt"`
}
