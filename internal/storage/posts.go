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

// ListPosts returns blog posts newest-first, optionally published only.
func (c *Client) ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	q := c.client.Collection(postsCollection).Query
	if publishedOnly {
		q = q.Where("status", "==", models.StatusPublished)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	posts := []models.BlogPost{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate posts: %w", err)
		}
		var p models.BlogPost
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal post %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		posts = append(posts, p)
	}
	return posts, nil
}

// GetPostBySlug returns the first post matching slug, nil when none match.
func (c *Client) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.BlogPost, error) {
	q := c.client.Collection(postsCollection).Where("slug", "==", slug)
	if publishedOnly {
		q = q.Where("status", "==", models.StatusPublished)
	}
	docs, err := q.Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query post by slug %q: %w", slug, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var p models.BlogPost
	if err := docs[0].DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post data: %w", err)
	}
	p.ID = docs[0].Ref.ID
	return &p, nil
}

// GetPostByID retrieves a post by document ID, nil when absent.
func (c *Client) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	doc, err := c.client.Collection(postsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}

	var p models.BlogPost
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post data: %w", err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	docRef := c.client.Collection(postsCollection).NewDoc()
	if _, err := docRef.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	p.ID = docRef.ID
	return p, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := c.client.Collection(postsCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	if _, err := c.client.Collection(postsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return nil
}

// IsPostSlugTaken reports whether any post other than excludeID uses slug.
func (c *Client) IsPostSlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	docs, err := c.client.Collection(postsCollection).
		Where("slug", "==", slug).
		Documents(ctx).GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to check post slug %q: %w", slug, err)
	}
	for _, doc := range docs {
		if doc.Ref.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) CountPosts(ctx context.Context, statusFilter string) (int64, error) {
	q := c.client.Collection(postsCollection).Query
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	return c.count(ctx, q)
}

// ListRecentPosts returns the n newest posts regardless of status.
func (c *Client) ListRecentPosts(ctx context.Context, n int) ([]models.BlogPost, error) {
	iter := c.client.Collection(postsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(n).
		Documents(ctx)
	defer iter.Stop()

	posts := []models.BlogPost{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate recent posts: %w", err)
		}
		var p models.BlogPost
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal post %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		posts = append(posts, p)
	}
	return posts, nil
}
