package repository

import (
	"context"
	"errors"

	"go-sales-dashboard/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (uint, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	Update(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error)
	DecrementStock(ctx context.Context, id uint, quantity int) (*model.Product, error)
	Restock(ctx context.Context, id uint, quantity int) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	WithTx(tx *gorm.DB) ProductRepository
}

type productRepo struct {
	db    *gorm.DB
	bound bool
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

// WithTx returns a repository whose calls run on tx.
func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{db: tx, bound: true}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) (uint, error) {
	if err := checkProduct(product); err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return 0, storeError("create product", err)
	}
	return product.ID, nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, storeError("list products", err)
	}
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	return findProduct(r.db.WithContext(ctx), id)
}

func findProduct(db *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, storeError("get product", err)
	}
	return &product, nil
}

// Update applies only the fields set in patch.
func (r *productRepo) Update(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error) {
	if err := checkPatch(patch); err != nil {
		return nil, err
	}

	var updated *model.Product
	err := runInTx(ctx, r.db, r.bound, "update product", func(tx *gorm.DB) error {
		product, err := findProduct(forUpdate(tx), id)
		if err != nil {
			return err
		}

		if !patch.Empty() {
			if err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(patch.Columns()).Error; err != nil {
				return storeError("update product", err)
			}
			patch.Apply(product)
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DecrementStock removes quantity units for a sale. The write only succeeds while
// stock >= quantity still holds, so stock never goes negative.
func (r *productRepo) DecrementStock(ctx context.Context, id uint, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, invalidInput("quantity must be positive, got %d", quantity)
	}

	var updated *model.Product
	err := runInTx(ctx, r.db, r.bound, "decrement stock", func(tx *gorm.DB) error {
		product, err := findProduct(forUpdate(tx), id)
		if err != nil {
			return err
		}
		if product.Stock < quantity {
			return ErrInsufficientStock
		}

		res := tx.Model(&model.Product{}).
			Where("id = ? AND stock >= ?", id, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return storeError("decrement stock", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		product.Stock -= quantity
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *productRepo) Restock(ctx context.Context, id uint, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, invalidInput("restock quantity must not be negative, got %d", quantity)
	}

	var updated *model.Product
	err := runInTx(ctx, r.db, r.bound, "restock product", func(tx *gorm.DB) error {
		product, err := findProduct(forUpdate(tx), id)
		if err != nil {
			return err
		}

		if quantity > 0 {
			if err := tx.Model(&model.Product{}).
				Where("id = ?", id).
				UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error; err != nil {
				return storeError("restock product", err)
			}
		}

		product.Stock += quantity
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product and all of its transactions, or nothing at all.
func (r *productRepo) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, r.db, r.bound, "delete product", func(tx *gorm.DB) error {
		if _, err := findProduct(forUpdate(tx), id); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.Transaction{}).Error; err != nil {
			return storeError("delete product transactions", err)
		}
		if err := tx.Delete(&model.Product{}, id).Error; err != nil {
			return storeError("delete product", err)
		}
		return nil
	})
}

// DeleteAll empties both tables. Used by the demo reset command.
func (r *productRepo) DeleteAll(ctx context.Context) error {
	return runInTx(ctx, r.db, r.bound, "clear store", func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&model.Transaction{}).Error; err != nil {
			return storeError("clear transactions", err)
		}
		if err := all.Delete(&model.Product{}).Error; err != nil {
			return storeError("clear products", err)
		}
		return nil
	})
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, storeError("count products", err)
	}
	return count, nil
}

func checkProduct(p *model.Product) error {
	switch {
	case p.Name == "":
		return invalidInput("name is required")
	case p.Category == "":
		return invalidInput("category is required")
	case p.Price < 0:
		return invalidInput("price must not be negative")
	case p.Cost < 0:
		return invalidInput("cost must not be negative")
	case p.Stock < 0:
		return invalidInput("stock must not be negative")
	}
	return nil
}

func checkPatch(p model.ProductPatch) error {
	switch {
	case p.Name != nil && *p.Name == "":
		return invalidInput("name must not be empty")
	case p.Category != nil && *p.Category == "":
		return invalidInput("category must not be empty")
	case p.Price != nil && *p.Price < 0:
		return invalidInput("price must not be negative")
	case p.Cost != nil && *p.Cost < 0:
		return invalidInput("cost must not be negative")
	case p.Stock != nil && *p.Stock < 0:
		return invalidInput("stock must not be negative")
	}
	return nil
}
