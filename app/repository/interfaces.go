package repository

import (
	"github.com/linvex-software/lvx-ecommerce/app/models"
	"gorm.io/gorm"
)

// StoreRepository defines the interface for tenant lookups
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id uint) (*models.Store, error)
	GetBySlug(slug string) (*models.Store, error)
}

// UserRepository defines the interface for staff account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	Update(user *models.User) error
}

// ProductRepository defines the interface for catalogue lookups this core needs
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(storeID, id uint) (*models.Product, error)
	List(storeID uint, offset, limit int) ([]models.Product, error)
}

// OrderRepository defines the interface for order persistence. Loads are
// always tenant-scoped; CancelWithStockReversal is the single transactional
// entry point for the cancellation workflow.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(storeID, id uint) (*models.Order, error)
	GetByReference(storeID uint, reference string) (*models.Order, error)
	Update(order *models.Order) error
	List(storeID uint, offset, limit int) ([]models.Order, error)
	// CancelWithStockReversal writes all reversal movements and the order's
	// new status in one transaction. Either everything lands or nothing does.
	CancelWithStockReversal(order *models.Order, movements []models.StockMovement) error
}

// StockMovementRepository defines the interface for the append-only
// inventory ledger
type StockMovementRepository interface {
	Create(movement *models.StockMovement) error
	ListByProduct(storeID, productID uint, offset, limit int) ([]models.StockMovement, error)
	ListByOrigin(storeID uint, origin string, offset, limit int) ([]models.StockMovement, error)
	CurrentLevel(storeID, productID uint, variantID *uint) (int, error)
}

// WebhookEventRepository defines the interface for the durable webhook
// event store
type WebhookEventRepository interface {
	Create(event *models.WebhookEvent) error
	GetByID(id uint) (*models.WebhookEvent, error)
	GetByPublicID(storeID uint, publicID string) (*models.WebhookEvent, error)
	MarkProcessed(id uint) error
	MarkFailed(id uint, errorMessage string) error
	IncrementAttempts(id uint) error
	ListByStore(storeID uint, offset, limit int) ([]models.WebhookEvent, error)
	CountByStatus(storeID uint, status string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Store         StoreRepository
	User          UserRepository
	Product       ProductRepository
	Order         OrderRepository
	StockMovement StockMovementRepository
	WebhookEvent  WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Store:         NewStoreRepository(db),
		User:          NewUserRepository(db),
		Product:       NewProductRepository(db),
		Order:         NewOrderRepository(db),
		StockMovement: NewStockMovementRepository(db),
		WebhookEvent:  NewWebhookEventRepository(db),
	}
}
