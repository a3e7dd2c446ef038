package models

import (
	"math"
	"time"
)

// Deal is a time-bounded discount offer. DiscountPercentage is recomputed
// server-side from the two prices on every write that supplies both,
// overriding any client-sent value.
type Deal struct {
	ID                 string     `json:"id" firestore:"-"`
	Title              string     `json:"title" firestore:"title" validate:"required,notblank"`
	Description        string     `json:"description,omitempty" firestore:"description,omitempty"`
	OriginalPrice      float64    `json:"originalPrice" firestore:"originalPrice" validate:"required,gt=0"`
	DiscountedPrice    float64    `json:"discountedPrice" firestore:"discountedPrice" validate:"required,gte=0"`
	DiscountPercentage int        `json:"discountPercentage" firestore:"discountPercentage"`
	AffiliateLink      string     `json:"affiliateLink" firestore:"affiliateLink" validate:"required,url"`
	Image              string     `json:"image,omitempty" firestore:"image,omitempty" validate:"omitempty,url"`
	Category           string     `json:"category,omitempty" firestore:"category,omitempty"`
	IsActive           bool       `json:"isActive" firestore:"isActive"`
	StartDate          *time.Time `json:"startDate,omitempty" firestore:"startDate,omitempty"`
	EndDate            *time.Time `json:"endDate,omitempty" firestore:"endDate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

// DiscountPercent computes the rounded discount percentage for a pair of
// prices. Returns 0 when the original price is not positive.
func DiscountPercent(original, discounted float64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round((original - discounted) / original * 100))
}
