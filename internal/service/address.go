package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/transport"
)

type AddressService struct {
	Repo *repo.GormRepo

	// First saved address becomes the user's default.
	FirstDefault bool
}

func (s *AddressService) List(ctx context.Context, userID string) ([]models.UserAddress, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Get(ctx context.Context, userID string, id uint) (*models.UserAddress, error) {
	addr, err := s.Repo.GetAddress(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: address %d", ErrNotFound, id)
		}
		return nil, err
	}
	return addr, nil
}

// Save stores the address unless the user already has three. The cap is a
// silent no-op, not an error, and nothing gets evicted. The second return
// reports whether the address was actually saved.
func (s *AddressService) Save(ctx context.Context, userID string, req transport.SaveAddressRequest) (*models.UserAddress, bool, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, false, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.AddressLine1) == "" || strings.TrimSpace(req.City) == "" {
		return nil, false, fmt.Errorf("%w: address_line1 and city are required", ErrValidation)
	}

	addr := models.UserAddress{
		UserID:       userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Country:      req.Country,
		CreatedAt:    time.Now().UTC(),
	}
	saved, err := s.Repo.CreateAddress(ctx, &addr, s.FirstDefault)
	if err != nil {
		return nil, false, err
	}
	if !saved {
		return nil, false, nil
	}
	return &addr, true, nil
}

func (s *AddressService) Delete(ctx context.Context, userID string, id uint) error {
	if err := s.Repo.DeleteAddress(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: address %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
