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

// ListCategories returns all categories ordered by name. Product counts are
// derived values; callers fill them in from CountProductsByCategory.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	iter := c.client.Collection(categoriesCollection).
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	categories := []models.Category{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}
		var cat models.Category
		if err := doc.DataTo(&cat); err != nil {
			return nil, fmt.Errorf("failed to unmarshal category %s: %w", doc.Ref.ID, err)
		}
		cat.ID = doc.Ref.ID
		categories = append(categories, cat)
	}
	return categories, nil
}

// GetCategoryBySlug returns the first category matching slug, nil when none.
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	docs, err := c.client.Collection(categoriesCollection).
		Where("slug", "==", slug).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query category by slug %q: %w", slug, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var cat models.Category
	if err := docs[0].DataTo(&cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category data: %w", err)
	}
	cat.ID = docs[0].Ref.ID
	return &cat, nil
}

func (c *Client) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	doc, err := c.client.Collection(categoriesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}

	var cat models.Category
	if err := doc.DataTo(&cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category data: %w", err)
	}
	cat.ID = doc.Ref.ID
	return &cat, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	docRef := c.client.Collection(categoriesCollection).NewDoc()
	if _, err := docRef.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	cat.ID = docRef.ID
	return cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := c.client.Collection(categoriesCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if _, err := c.client.Collection(categoriesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}

// IsCategorySlugTaken reports whether any category other than excludeID uses slug.
func (c *Client) IsCategorySlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	docs, err := c.client.Collection(categoriesCollection).
		Where("slug", "==", slug).
		Documents(ctx).GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to check category slug %q: %w", slug, err)
	}
	for _, doc := range docs {
		if doc.Ref.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// IsCategoryNameTaken reports whether any category other than excludeID
// already carries name. Names must stay unique since products reference
// categories by name.
func (c *Client) IsCategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	docs, err := c.client.Collection(categoriesCollection).
		Where("name", "==", name).
		Documents(ctx).GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to check category name %q: %w", name, err)
	}
	for _, doc := range docs {
		if doc.Ref.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) CountCategories(ctx context.Context) (int64, error) {
	return c.count(ctx, c.client.Collection(categoriesCollection).Query)
}
