package api

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/mock"

	"github.com/dealpick/backend/internal/auth"
	"github.com/dealpick/backend/internal/models"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) ListProducts(ctx context.Context, publishedOnly bool) ([]models.Product, error) {
	args := m.Called(ctx, publishedOnly)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductStore) ListProductsByCategory(ctx context.Context, category string, publishedOnly bool) ([]models.Product, error) {
	args := m.Called(ctx, category, publishedOnly)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductStore) GetProductBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error) {
	args := m.Called(ctx, slug, publishedOnly)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	args := m.Called(ctx, p)
	if created := args.Get(0); created != nil {
		return created.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) UpdateProduct(ctx context.Context, id string, updates []firestore.Update) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockProductStore) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductStore) IsProductSlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductStore) CountProducts(ctx context.Context, statusFilter string) (int64, error) {
	args := m.Called(ctx, statusFilter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductStore) CountProductsByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductStore) IncrementProductClicks(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockProductStore) ListRecentProducts(ctx context.Context, n int) ([]models.Product, error) {
	args := m.Called(ctx, n)
	return args.Get(0).([]models.Product), args.Error(1)
}

type mockPostStore struct{ mock.Mock }

func (m *mockPostStore) ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	args := m.Called(ctx, publishedOnly)
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

func (m *mockPostStore) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.BlogPost, error) {
	args := m.Called(ctx, slug, publishedOnly)
	if p := args.Get(0); p != nil {
		return p.(*models.BlogPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostStore) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.BlogPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostStore) CreatePost(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	args := m.Called(ctx, p)
	if created := args.Get(0); created != nil {
		return created.(*models.BlogPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostStore) UpdatePost(ctx context.Context, id string, updates []firestore.Update) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockPostStore) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostStore) IsPostSlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostStore) CountPosts(ctx context.Context, statusFilter string) (int64, error) {
	args := m.Called(ctx, statusFilter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostStore) ListRecentPosts(ctx context.Context, n int) ([]models.BlogPost, error) {
	args := m.Called(ctx, n)
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryStore) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryStore) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	args := m.Called(ctx, c)
	if created := args.Get(0); created != nil {
		return created.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryStore) UpdateCategory(ctx context.Context, id string, updates []firestore.Update) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockCategoryStore) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryStore) IsCategorySlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryStore) IsCategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryStore) CountCategories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockDealStore struct{ mock.Mock }

func (m *mockDealStore) ListDeals(ctx context.Context, activeOnly bool) ([]models.Deal, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Deal), args.Error(1)
}

func (m *mockDealStore) GetDealByID(ctx context.Context, id string) (*models.Deal, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*models.Deal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDealStore) CreateDeal(ctx context.Context, d *models.Deal) (*models.Deal, error) {
	args := m.Called(ctx, d)
	if created := args.Get(0); created != nil {
		return created.(*models.Deal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDealStore) UpdateDeal(ctx context.Context, id string, updates []firestore.Update) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockDealStore) DeleteDeal(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDealStore) CountDeals(ctx context.Context, activeOnly bool) (int64, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

type mockClickStore struct{ mock.Mock }

func (m *mockClickStore) AddClickEvent(ctx context.Context, e *models.ClickEvent) (*models.ClickEvent, error) {
	args := m.Called(ctx, e)
	if created := args.Get(0); created != nil {
		return created.(*models.ClickEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClickStore) RecentClicksByProduct(ctx context.Context, productID string, limit int) ([]models.ClickEvent, error) {
	args := m.Called(ctx, productID, limit)
	return args.Get(0).([]models.ClickEvent), args.Error(1)
}

func (m *mockClickStore) CountClicks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockAdminStore struct{ mock.Mock }

func (m *mockAdminStore) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.AdminUser), args.Error(1)
}

func (m *mockAdminStore) GetAdmin(ctx context.Context, uid string) (*models.AdminUser, error) {
	args := m.Called(ctx, uid)
	if a := args.Get(0); a != nil {
		return a.(*models.AdminUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdminStore) CreateAdmin(ctx context.Context, a *models.AdminUser) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAdminStore) UpdateAdmin(ctx context.Context, uid string, updates []firestore.Update) error {
	return m.Called(ctx, uid, updates).Error(0)
}

func (m *mockAdminStore) DeleteAdmin(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockAdminStore) CountAdmins(ctx context.Context, active *bool) (int64, error) {
	args := m.Called(ctx, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAdminStore) ListRecentAdmins(ctx context.Context, n int) ([]models.AdminUser, error) {
	args := m.Called(ctx, n)
	return args.Get(0).([]models.AdminUser), args.Error(1)
}

type mockHealthStore struct{ mock.Mock }

func (m *mockHealthStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Available() bool {
	return m.Called().Bool(0)
}

func (m *mockGateway) Authenticate(ctx context.Context, authorization string) (*auth.Identity, error) {
	args := m.Called(ctx, authorization)
	if id := args.Get(0); id != nil {
		return id.(*auth.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) UserByEmail(ctx context.Context, email string) (*auth.Account, error) {
	args := m.Called(ctx, email)
	if a := args.Get(0); a != nil {
		return a.(*auth.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) UserByUID(ctx context.Context, uid string) (*auth.Account, error) {
	args := m.Called(ctx, uid)
	if a := args.Get(0); a != nil {
		return a.(*auth.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) CreateAdminAccount(ctx context.Context, email, password, displayName string) (*auth.Account, error) {
	args := m.Called(ctx, email, password, displayName)
	if a := args.Get(0); a != nil {
		return a.(*auth.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	return m.Called(ctx, uid, disabled).Error(0)
}

func (m *mockGateway) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	return m.Called(ctx, uid, displayName).Error(0)
}

func (m *mockGateway) DeleteAccount(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockGateway) MintExchangeToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error) {
	args := m.Called(ctx, uid, claims)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) RevokeSessions(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) SignInWithPassword(ctx context.Context, email, password string) (*auth.SessionTokens, error) {
	args := m.Called(ctx, email, password)
	if t := args.Get(0); t != nil {
		return t.(*auth.SessionTokens), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessions) SignInWithCustomToken(ctx context.Context, token string) (*auth.SessionTokens, error) {
	args := m.Called(ctx, token)
	if t := args.Get(0); t != nil {
		return t.(*auth.SessionTokens), args.Error(1)
	}
	return nil, args.Error(1)
}
