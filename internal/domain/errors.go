package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("incorrect old password")

	ErrTokenInvalid        = errors.New("token is invalid or expired")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrResetTokenInvalid   = errors.New("invalid or expired reset token")

	ErrAddressNotFound  = errors.New("address not found")
	ErrDuplicateAddress = errors.New("duplicate address")
	ErrInvalidID        = errors.New("invalid id")

	ErrInvalidProduct   = errors.New("invalid product data")
	ErrItemAlreadySaved = errors.New("product already saved")
	ErrItemNotFound     = errors.New("product not found in saved items")
)
