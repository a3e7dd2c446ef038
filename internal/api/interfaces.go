package api

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/dealpick/backend/internal/auth"
	"github.com/dealpick/backend/internal/models"
)

// Store interfaces abstract the document layer per controller so handlers
// can be tested against mocks. *storage.Client implements all of them.

type ProductStore interface {
	ListProducts(ctx context.Context, publishedOnly bool) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, category string, publishedOnly bool) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, updates []firestore.Update) error
	DeleteProduct(ctx context.Context, id string) error
	IsProductSlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	CountProducts(ctx context.Context, statusFilter string) (int64, error)
	CountProductsByCategory(ctx context.Context, category string) (int64, error)
	IncrementProductClicks(ctx context.Context, id string, at time.Time) error
	ListRecentProducts(ctx context.Context, n int) ([]models.Product, error)
}

type PostStore interface {
	ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.BlogPost, error)
	GetPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, id string, updates []firestore.Update) error
	DeletePost(ctx context.Context, id string) error
	IsPostSlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	CountPosts(ctx context.Context, statusFilter string) (int64, error)
	ListRecentPosts(ctx context.Context, n int) ([]models.BlogPost, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, updates []firestore.Update) error
	DeleteCategory(ctx context.Context, id string) error
	IsCategorySlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	IsCategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	CountCategories(ctx context.Context) (int64, error)
}

type DealStore interface {
	ListDeals(ctx context.Context, activeOnly bool) ([]models.Deal, error)
	GetDealByID(ctx context.Context, id string) (*models.Deal, error)
	CreateDeal(ctx context.Context, d *models.Deal) (*models.Deal, error)
	UpdateDeal(ctx context.Context, id string, updates []firestore.Update) error
	DeleteDeal(ctx context.Context, id string) error
	CountDeals(ctx context.Context, activeOnly bool) (int64, error)
}

type ClickStore interface {
	AddClickEvent(ctx context.Context, e *models.ClickEvent) (*models.ClickEvent, error)
	RecentClicksByProduct(ctx context.Context, productID string, limit int) ([]models.ClickEvent, error)
	CountClicks(ctx context.Context) (int64, error)
}

type AdminStore interface {
	ListAdmins(ctx context.Context) ([]models.AdminUser, error)
	GetAdmin(ctx context.Context, uid string) (*models.AdminUser, error)
	CreateAdmin(ctx context.Context, a *models.AdminUser) error
	UpdateAdmin(ctx context.Context, uid string, updates []firestore.Update) error
	DeleteAdmin(ctx context.Context, uid string) error
	CountAdmins(ctx context.Context, active *bool) (int64, error)
	ListRecentAdmins(ctx context.Context, n int) ([]models.AdminUser, error)
}

type HealthStore interface {
	Ping(ctx context.Context) error
}

// IdentityGateway abstracts the identity provider wrapper.
type IdentityGateway interface {
	Available() bool
	Authenticate(ctx context.Context, authorization string) (*auth.Identity, error)
	UserByEmail(ctx context.Context, email string) (*auth.Account, error)
	UserByUID(ctx context.Context, uid string) (*auth.Account, error)
	CreateAdminAccount(ctx context.Context, email, password, displayName string) (*auth.Account, error)
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
	DeleteAccount(ctx context.Context, uid string) error
	MintExchangeToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error)
	RevokeSessions(ctx context.Context, uid string) error
}

// DealAnnouncer publishes new-deal announcements to an outbound channel.
type DealAnnouncer interface {
	Enabled() bool
	AnnounceDeal(ctx context.Context, deal *models.Deal) error
}

// SessionService is the REST sign-in surface backing login and exchange.
type SessionService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*auth.SessionTokens, error)
	SignInWithCustomToken(ctx context.Context, token string) (*auth.SessionTokens, error)
}
