package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/dealpick/backend/internal/models"
)

// AddClickEvent appends a click event document. Click events are never
// updated or deleted afterwards.
func (c *Client) AddClickEvent(ctx context.Context, e *models.ClickEvent) (*models.ClickEvent, error) {
	docRef := c.client.Collection(clicksCollection).NewDoc()
	if _, err := docRef.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to record click event: %w", err)
	}
	e.ID = docRef.ID
	return e, nil
}

// RecentClicksByProduct returns up to limit click events for a product,
// newest first.
func (c *Client) RecentClicksByProduct(ctx context.Context, productID string, limit int) ([]models.ClickEvent, error) {
	iter := c.client.Collection(clicksCollection).
		Where("productId", "==", productID).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	events := []models.ClickEvent{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate click events: %w", err)
		}
		var e models.ClickEvent
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal click event %s: %w", doc.Ref.ID, err)
		}
		e.ID = doc.Ref.ID
		events = append(events, e)
	}
	return events, nil
}

func (c *Client) CountClicks(ctx context.Context) (int64, error) {
	return c.count(ctx, c.client.Collection(clicksCollection).Query)
}
