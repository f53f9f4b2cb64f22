package repository

import (
	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog lookup tables share the same handful of operations, so the three
// repositories live together here.

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll(onlyActive bool) ([]model.Category, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	Update(category *model.Category) error
	ToggleActive(id uuid.UUID, updatedBy string) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAll(onlyActive bool) ([]model.Category, error) {
	var categories []model.Category
	q := r.db.Order("name ASC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, "id = ?", id).Error
	return &category, err
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) ToggleActive(id uuid.UUID, updatedBy string) error {
	return r.db.Model(&model.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_by": updatedBy,
		}).Error
}

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindAll(onlyActive bool) ([]model.Brand, error)
	FindByID(id uuid.UUID) (*model.Brand, error)
	Update(brand *model.Brand) error
	ToggleActive(id uuid.UUID, updatedBy string) error
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepo(db *gorm.DB) BrandRepository {
	return &brandRepo{db}
}

func (r *brandRepo) Create(brand *model.Brand) error {
	return r.db.Create(brand).Error
}

func (r *brandRepo) FindAll(onlyActive bool) ([]model.Brand, error) {
	var brands []model.Brand
	q := r.db.Order("name ASC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&brands).Error
	return brands, err
}

func (r *brandRepo) FindByID(id uuid.UUID) (*model.Brand, error) {
	var brand model.Brand
	err := r.db.First(&brand, "id = ?", id).Error
	return &brand, err
}

func (r *brandRepo) Update(brand *model.Brand) error {
	return r.db.Save(brand).Error
}

func (r *brandRepo) ToggleActive(id uuid.UUID, updatedBy string) error {
	return r.db.Model(&model.Brand{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_by": updatedBy,
		}).Error
}

type UnitRepository interface {
	Create(unit *model.Unit) error
	FindAll() ([]model.Unit, error)
	FindByID(id uuid.UUID) (*model.Unit, error)
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

func (r *unitRepo) Create(unit *model.Unit) error {
	return r.db.Create(unit).Error
}

func (r *unitRepo) FindAll() ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindByID(id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	err := r.db.First(&unit, "id = ?", id).Error
	return &unit, err
}
