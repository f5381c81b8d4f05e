package usecase

import (
	"context"
	"fmt"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/repository"
)

// SavedItemsUsecase maintains the per-user saved-for-later list.
type SavedItemsUsecase struct {
	users repository.UserRepository
}

func NewSavedItemsUsecase(users repository.UserRepository) *SavedItemsUsecase {
	return &SavedItemsUsecase{users: users}
}

func (u *SavedItemsUsecase) List(ctx context.Context, userID string) ([]domain.SavedItem, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SavedItems == nil {
		return []domain.SavedItem{}, nil
	}
	return user.SavedItems, nil
}

func (u *SavedItemsUsecase) Save(ctx context.Context, userID string, item domain.SavedItem) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SaveItem(item); err != nil {
		return err
	}

	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}

func (u *SavedItemsUsecase) Remove(ctx context.Context, userID, productID string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.RemoveSavedItem(productID); err != nil {
		return err
	}

	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}
