package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dealpick/backend/internal/models"
)

// ListProducts returns products newest-first, optionally restricted to
// published ones. No matches is an empty slice, not an error.
func (c *Client) ListProducts(ctx context.Context, publishedOnly bool) ([]models.Product, error) {
	q := c.client.Collection(productsCollection).Query
	if publishedOnly {
		q = q.Where("status", "==", models.StatusPublished)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	products := []models.Product{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}
		var p models.Product
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		products = append(products, p)
	}
	return products, nil
}

// ListProductsByCategory returns products whose free-text category field
// equals the given category name.
func (c *Client) ListProductsByCategory(ctx context.Context, category string, publishedOnly bool) ([]models.Product, error) {
	q := c.client.Collection(productsCollection).Where("category", "==", category)
	if publishedOnly {
		q = q.Where("status", "==", models.StatusPublished)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	products := []models.Product{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products for category %q: %w", category, err)
		}
		var p models.Product
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		products = append(products, p)
	}
	return products, nil
}

// GetProductBySlug returns the first product matching slug, or nil when none
// match. The store defines no tie-break if several documents share a slug.
func (c *Client) GetProductBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error) {
	q := c.client.Collection(productsCollection).Where("slug", "==", slug)
	if publishedOnly {
		q = q.Where("status", "==", models.StatusPublished)
	}
	docs, err := q.Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query product by slug %q: %w", slug, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var p models.Product
	if err := docs[0].DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product data: %w", err)
	}
	p.ID = docs[0].Ref.ID
	return &p, nil
}

// GetProductByID retrieves a product by its document ID, nil when absent.
func (c *Client) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	doc, err := c.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	var p models.Product
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product data: %w", err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// CreateProduct writes a new product under a store-assigned ID and returns
// the stored entity with the ID filled in.
func (c *Client) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	docRef := c.client.Collection(productsCollection).NewDoc()
	if _, err := docRef.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	p.ID = docRef.ID
	return p, nil
}

// UpdateProduct applies a partial field update to a product document.
func (c *Client) UpdateProduct(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := c.client.Collection(productsCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return nil
}

// DeleteProduct hard-deletes a product document.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if _, err := c.client.Collection(productsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// IsProductSlugTaken reports whether any product other than excludeID
// already uses slug. The check-then-act window is not transactional; a
// concurrent create can still race (documented limitation).
func (c *Client) IsProductSlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	docs, err := c.client.Collection(productsCollection).
		Where("slug", "==", slug).
		Documents(ctx).GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to check product slug %q: %w", slug, err)
	}
	for _, doc := range docs {
		if doc.Ref.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// CountProducts counts products, optionally filtered to one status.
func (c *Client) CountProducts(ctx context.Context, statusFilter string) (int64, error) {
	q := c.client.Collection(productsCollection).Query
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	return c.count(ctx, q)
}

// CountProductsByCategory counts products referencing a category name,
// regardless of publication status.
func (c *Client) CountProductsByCategory(ctx context.Context, category string) (int64, error) {
	return c.count(ctx, c.client.Collection(productsCollection).Where("category", "==", category))
}

// IncrementProductClicks bumps the denormalized click counter atomically and
// stamps the last-click time.
func (c *Client) IncrementProductClicks(ctx context.Context, id string, at time.Time) error {
	_, err := c.client.Collection(productsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "clicks", Value: firestore.Increment(1)},
		{Path: "lastClickedAt", Value: at},
	})
	if err != nil {
		return fmt.Errorf("failed to increment clicks for product %s: %w", id, err)
	}
	return nil
}

// ListRecentProducts returns the n newest products regardless of status.
func (c *Client) ListRecentProducts(ctx context.Context, n int) ([]models.Product, error) {
	iter := c.client.Collection(productsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(n).
		Documents(ctx)
	defer iter.Stop()

	products := []models.Product{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate recent products: %w", err)
		}
		var p models.Product
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		products = append(products, p)
	}
	return products, nil
}
