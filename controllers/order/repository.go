package orderControllers

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/codedevify/shoe/models"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository is the order persistence boundary of the lifecycle
// manager and the checkout orchestrator.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	ByID(ctx context.Context, id string) (*models.Order, error)
	BySessionRef(ctx context.Context, sessionRef string) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	All(ctx context.Context) ([]models.Order, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *GormRepository) ByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", id, err)
	}
	return &order, nil
}

func (r *GormRepository) BySessionRef(ctx context.Context, sessionRef string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "session_ref = ?", sessionRef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order by session %s: %w", sessionRef, err)
	}
	return &order, nil
}

func (r *GormRepository) Save(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("save order %s: %w", order.ID, err)
	}
	return nil
}

func (r *GormRepository) All(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
