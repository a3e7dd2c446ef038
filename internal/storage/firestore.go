package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

// Collection names. Relationships between collections are by denormalized
// string fields only; Firestore enforces nothing across them.
const (
	productsCollection   = "products"
	postsCollection      = "blog_posts"
	categoriesCollection = "categories"
	dealsCollection      = "deals"
	clicksCollection     = "clicks"
	adminsCollection     = "admin_users"
)

type Client struct {
	client *firestore.Client
}

// NewWithFirestore wraps an already-initialized Firestore client, e.g. one
// obtained from the Firebase app so both backends share credentials.
func NewWithFirestore(fc *firestore.Client) *Client {
	return &Client{client: fc}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Ping issues a minimal read to confirm the backend answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.Collection(productsCollection).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

// count runs a server-side count aggregation over q.
func (c *Client) count(ctx context.Context, q firestore.Query) (int64, error) {
	snapshot, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count aggregation failed: %w", err)
	}

	value, ok := snapshot["all"]
	if !ok {
		return 0, fmt.Errorf("count aggregation result invalid: 'all' key missing")
	}

	switch v := value.(type) {
	case int64:
		return v, nil
	case *firestorepb.Value:
		return v.GetIntegerValue(), nil
	default:
		return 0, fmt.Errorf("count aggregation result has unexpected type %T", value)
	}
}
