package usecase

import (
	"context"
	"fmt"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/repository"
)

// AddressUsecase maintains the per-user address book. Each operation is one
// load, an in-memory mutation on the user document, and one save.
type AddressUsecase struct {
	users repository.UserRepository
}

func NewAddressUsecase(users repository.UserRepository) *AddressUsecase {
	return &AddressUsecase{users: users}
}

func (u *AddressUsecase) List(ctx context.Context, userID string) ([]domain.Address, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SavedAddresses == nil {
		return []domain.Address{}, nil
	}
	return user.SavedAddresses, nil
}

func (u *AddressUsecase) Add(ctx context.Context, userID string, addr domain.Address) ([]domain.Address, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.AddAddress(addr); err != nil {
		return nil, err
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("save addresses: %w", err)
	}
	return user.SavedAddresses, nil
}

func (u *AddressUsecase) Remove(ctx context.Context, userID, addressID string) ([]domain.Address, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.RemoveAddress(addressID); err != nil {
		return nil, err
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("save addresses: %w", err)
	}
	return user.SavedAddresses, nil
}

func (u *AddressUsecase) SetDefault(ctx context.Context, userID, addressID string) ([]domain.Address, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.SetDefaultAddress(addressID); err != nil {
		return nil, err
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("save addresses: %w", err)
	}
	return user.SavedAddresses, nil
}
