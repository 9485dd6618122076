package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type AddressService interface {
	ListAddresses(ctx context.Context, userID string) ([]*model.Address, error)
	CreateAddress(ctx context.Context, userID string, req *dto.AddressRequest) (*model.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID string, req *dto.AddressRequest) (*model.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

type addressServiceImpl struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressServiceImpl{
		addressRepo: addressRepo,
	}
}

func (s *addressServiceImpl) ListAddresses(ctx context.Context, userID string) ([]*model.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

func (s *addressServiceImpl) CreateAddress(ctx context.Context, userID string, req *dto.AddressRequest) (*model.Address, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	address := addressFromRequest(userID, req)
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("store address: %w", err)
	}

	return address, nil
}

func (s *addressServiceImpl) UpdateAddress(ctx context.Context, userID, addressID string, req *dto.AddressRequest) (*model.Address, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	address := addressFromRequest(userID, req)
	address.ID = addressID
	ok, err := s.addressRepo.Update(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	if !ok {
		return nil, &apperror.NotFoundError{Resource: "address", ID: addressID}
	}

	updated, err := s.addressRepo.FindByIDForUser(ctx, addressID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperror.NotFoundError{Resource: "address", ID: addressID}
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *addressServiceImpl) DeleteAddress(ctx context.Context, userID, addressID string) error {
	ok, err := s.addressRepo.Delete(ctx, addressID, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if !ok {
		return &apperror.NotFoundError{Resource: "address", ID: addressID}
	}

	return nil
}

func validateAddress(req *dto.AddressRequest) error {
	switch {
	case req.Name == "":
		return &apperror.ValidationError{Msg: "name is required"}
	case req.Phone == "":
		return &apperror.ValidationError{Msg: "phone is required"}
	case req.Line1 == "":
		return &apperror.ValidationError{Msg: "address line is required"}
	case req.City == "":
		return &apperror.ValidationError{Msg: "city is required"}
	case req.State == "":
		return &apperror.ValidationError{Msg: "state is required"}
	case req.PostalCode == "":
		return &apperror.ValidationError{Msg: "postal code is required"}
	}
	return nil
}

func addressFromRequest(userID string, req *dto.AddressRequest) *model.Address {
	return &model.Address{
		UserID:     userID,
		Name:       req.Name,
		Phone:      req.Phone,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
}
