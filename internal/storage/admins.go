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

// ListAdmins returns all admin profiles newest-first.
func (c *Client) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	iter := c.client.Collection(adminsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	admins := []models.AdminUser{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate admins: %w", err)
		}
		var a models.AdminUser
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal admin %s: %w", doc.Ref.ID, err)
		}
		a.UID = doc.Ref.ID
		admins = append(admins, a)
	}
	return admins, nil
}

// GetAdmin retrieves an admin profile by provider UID, nil when absent.
func (c *Client) GetAdmin(ctx context.Context, uid string) (*models.AdminUser, error) {
	doc, err := c.client.Collection(adminsCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin %s: %w", uid, err)
	}

	var a models.AdminUser
	if err := doc.DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin data: %w", err)
	}
	a.UID = doc.Ref.ID
	return &a, nil
}

// CreateAdmin writes the profile document keyed by the provider UID.
// Create fails if the document already exists.
func (c *Client) CreateAdmin(ctx context.Context, a *models.AdminUser) error {
	docRef := c.client.Collection(adminsCollection).Doc(a.UID)
	if _, err := docRef.Create(ctx, a); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return models.ErrEmailExists
		}
		return fmt.Errorf("failed to create admin profile: %w", err)
	}
	return nil
}

func (c *Client) UpdateAdmin(ctx context.Context, uid string, updates []firestore.Update) error {
	_, err := c.client.Collection(adminsCollection).Doc(uid).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update admin %s: %w", uid, err)
	}
	return nil
}

func (c *Client) DeleteAdmin(ctx context.Context, uid string) error {
	if _, err := c.client.Collection(adminsCollection).Doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete admin %s: %w", uid, err)
	}
	return nil
}

// CountAdmins counts admin profiles; pass a non-nil active to filter.
func (c *Client) CountAdmins(ctx context.Context, active *bool) (int64, error) {
	q := c.client.Collection(adminsCollection).Query
	if active != nil {
		q = q.Where("isActive", "==", *active)
	}
	return c.count(ctx, q)
}

// ListRecentAdmins returns the n most recently created admin profiles.
func (c *Client) ListRecentAdmins(ctx context.Context, n int) ([]models.AdminUser, error) {
	iter := c.client.Collection(adminsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(n).
		Documents(ctx)
	defer iter.Stop()

	admins := []models.AdminUser{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate recent admins: %w", err)
		}
		var a models.AdminUser
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal admin %s: %w", doc.Ref.ID, err)
		}
		a.UID = doc.Ref.ID
		admins = append(admins, a)
	}
	return admins, nil
}
