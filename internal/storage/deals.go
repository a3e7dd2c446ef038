package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dealpick/backend/internal/models"
)

// ListDeals returns deals newest-first, optionally restricted to active ones.
func (c *Client) ListDeals(ctx context.Context, activeOnly bool) ([]models.Deal, error) {
	q := c.client.Collection(dealsCollection).Query
	if activeOnly {
		q = q.Where("isActive", "==", true)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	deals := []models.Deal{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate deals: %w", err)
		}
		var d models.Deal
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deal %s: %w", doc.Ref.ID, err)
		}
		d.ID = doc.Ref.ID
		deals = append(deals, d)
	}
	return deals, nil
}

func (c *Client) GetDealByID(ctx context.Context, id string) (*models.Deal, error) {
	doc, err := c.client.Collection(dealsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get deal %s: %w", id, err)
	}

	var d models.Deal
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal data: %w", err)
	}
	d.ID = doc.Ref.ID
	return &d, nil
}

func (c *Client) CreateDeal(ctx context.Context, d *models.Deal) (*models.Deal, error) {
	docRef := c.client.Collection(dealsCollection).NewDoc()
	if _, err := docRef.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}
	d.ID = docRef.ID
	return d, nil
}

func (c *Client) UpdateDeal(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := c.client.Collection(dealsCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update deal %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteDeal(ctx context.Context, id string) error {
	if _, err := c.client.Collection(dealsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete deal %s: %w", id, err)
	}
	return nil
}

func (c *Client) CountDeals(ctx context.Context, activeOnly bool) (int64, error) {
	q := c.client.Collection(dealsCollection).Query
	if activeOnly {
		q = q.Where("isActive", "==", true)
	}
	return c.count(ctx, q)
}
