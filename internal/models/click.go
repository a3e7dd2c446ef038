package models

import "time"

// ClickEvent records one affiliate-redirect traversal. Append-only: the
// system never updates or deletes these documents.
type ClickEvent struct {
	ID          string    `json:"id" firestore:"-"`
	ProductID   string    `json:"productId" firestore:"productId"`
	ProductSlug string    `json:"productSlug" firestore:"productSlug"`
	IP          string    `json:"ip" firestore:"ip"`
	UserAgent   string    `json:"userAgent" firestore:"userAgent"`
	Referrer    string    `json:"referrer" firestore:"referrer"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
}
