package service

import (
	"context"
	"fmt"
	"time"

	"kittystore/internal/models"
	"kittystore/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogStore is the product read/write surface the catalog service needs.
type CatalogStore interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListLowStockProducts(ctx context.Context, threshold int) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CatalogService handles admin product management.
type CatalogService struct {
	store             CatalogStore
	publisher         Publisher
	lowStockThreshold int
	logger            *zap.Logger
}

// NewCatalogService creates a new catalog service. publisher may be nil.
func NewCatalogService(store CatalogStore, publisher Publisher, lowStockThreshold int) *CatalogService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &CatalogService{
		store:             store,
		publisher:         publisher,
		lowStockThreshold: lowStockThreshold,
		logger:            util.GetLogger(),
	}
}

// ListProducts lists the whole catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

// GetProduct fetches one product.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// LowStockProducts lists products needing a re-stock decision.
func (s *CatalogService) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListLowStockProducts(ctx, s.lowStockThreshold)
}

// CreateProduct adds a product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative")
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	util.CatalogWritesTotal.WithLabelValues("create").Inc()
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name))

	s.publishStockChanged(ctx, product)
	return nil
}

// UpdateProduct replaces a product's editable fields.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative")
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return err
	}

	util.CatalogWritesTotal.WithLabelValues("update").Inc()
	s.logger.Info("Product updated", zap.Int64("product_id", product.ID))

	s.publishStockChanged(ctx, product)
	return nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	util.CatalogWritesTotal.WithLabelValues("delete").Inc()
	s.logger.Info("Product deleted", zap.Int64("product_id", id))

	// A deleted product must drop out of the cached dashboard too.
	s.publishStockChanged(ctx, &models.Product{ID: id, Stock: 0})
	return nil
}

func (s *CatalogService) publishStockChanged(ctx context.Context, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := &models.ProductStockChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductStockChanged,
			Timestamp: time.Now(),
		},
		ProductID: product.ID,
		Stock:     product.Stock,
	}
	if err := s.publisher.PublishProductStockChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductStockChanged event", zap.Error(err))
	}
}
