package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrOrganizationEmailExists = errors.New("organization already exists")
	ErrOrganizationNotFound    = errors.New("organization not found")
)

type Organization struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	Type     string `gorm:"not null"` // "educational", "government", "corporate" or "other"
	Location string `gorm:"not null"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"not null;default:ORGANIZATION"`

	Since   int `gorm:"not null"`
	About   string
	Contact string

	ProfileImageRef string

	TotalOrganizedEvents int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type OrganizationDAO struct {
	db *gorm.DB
}

func NewOrganizationDAO(db *gorm.DB) *OrganizationDAO {
	return &OrganizationDAO{
		db: db,
	}
}

func (d *OrganizationDAO) Insert(ctx context.Context, org Organization) (Organization, error) {
	result := d.db.WithContext(ctx).Create(&org)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_organizations_email"`) {
			return Organization{}, ErrOrganizationEmailExists
		}

		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) FindByID(ctx context.Context, id uint) (Organization, error) {
	var org Organization

	result := d.db.WithContext(ctx).First(&org, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Organization{}, ErrOrganizationNotFound
		}

		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) FindByEmail(ctx context.Context, email string) (Organization, error) {
	var org Organization

	result := d.db.WithContext(ctx).First(&org, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Organization{}, ErrOrganizationNotFound
		}

		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) FindAll(ctx context.Context) ([]Organization, error) {
	var orgs []Organization

	result := d.db.WithContext(ctx).Order("id").Find(&orgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return orgs, nil
}

func (d *OrganizationDAO) SearchByName(ctx context.Context, name string) ([]Organization, error) {
	var orgs []Organization

	result := d.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+name+"%").
		Order("id").
		Find(&orgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return orgs, nil
}

func (d *OrganizationDAO) Update(ctx context.Context, org Organization) (Organization, error) {
	result := d.db.WithContext(ctx).Save(&org)
	if result.Error != nil {
		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Organization{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}
