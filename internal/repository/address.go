package repository

import (
	"context"

	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.Address, error)
	FindByIDForUser(ctx context.Context, addressID, userID string) (*model.Address, error)
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) (bool, error)
	Delete(ctx context.Context, addressID, userID string) (bool, error)
	ClearDefault(ctx context.Context, userID string) error
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{
		db: db,
	}
}

func (r *addressRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	var addresses []*model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error

	if err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepoImpl) FindByIDForUser(ctx context.Context, addressID, userID string) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error

	if err != nil {
		return nil, err
	}

	return &address, nil
}

func (r *addressRepoImpl) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepoImpl) Update(ctx context.Context, address *model.Address) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Address{}).
		Where("id = ? AND user_id = ?", address.ID, address.UserID).
		Updates(map[string]interface{}{
			"name":        address.Name,
			"phone":       address.Phone,
			"line1":       address.Line1,
			"line2":       address.Line2,
			"city":        address.City,
			"state":       address.State,
			"postal_code": address.PostalCode,
			"is_default":  address.IsDefault,
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *addressRepoImpl) Delete(ctx context.Context, addressID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&model.Address{})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *addressRepoImpl) ClearDefault(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
