package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the store document: credentials plus the per-user address book and
// saved-for-later list. Every mutation goes through load-mutate-save on the
// whole record.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	ResetToken          string
	ResetTokenExpiresAt *time.Time
	RefreshToken        string

	SavedAddresses []Address
	SavedItems     []SavedItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Address struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	MobileNo   string `json:"mobileNo"`
	HouseNo    string `json:"houseNo"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
}

// SavedItem is a snapshot of a catalog product at the time it was saved.
// ProductID refers to the external catalog and is unique within a user's list.
type SavedItem struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name,omitempty"`
	Images    []string `json:"images"`
	Price     float64  `json:"price,omitempty"`
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// sameAddress compares two addresses field by field under trim+casefold
// normalization. The stored form keeps the original casing and whitespace.
func sameAddress(a, b Address) bool {
	return normalize(a.Name) == normalize(b.Name) &&
		normalize(a.Email) == normalize(b.Email) &&
		normalize(a.MobileNo) == normalize(b.MobileNo) &&
		normalize(a.HouseNo) == normalize(b.HouseNo) &&
		normalize(a.Street) == normalize(b.Street) &&
		normalize(a.City) == normalize(b.City) &&
		normalize(a.PostalCode) == normalize(b.PostalCode)
}

// AddAddress appends addr to the address book, assigning it an ID. It returns
// ErrDuplicateAddress when an existing entry matches on every field under
// normalized comparison. A sole address is always the default. An incoming
// IsDefault flag is kept as-is and existing flags are not cleared, so adding
// a second flagged address leaves two defaults until SetDefaultAddress runs.
func (u *User) AddAddress(addr Address) error {
	for _, existing := range u.SavedAddresses {
		if sameAddress(existing, addr) {
			return ErrDuplicateAddress
		}
	}

	addr.ID = uuid.NewString()
	if len(u.SavedAddresses) == 0 {
		addr.IsDefault = true
	}
	u.SavedAddresses = append(u.SavedAddresses, addr)
	return nil
}

// RemoveAddress deletes the address with the given ID. When exactly one
// address remains afterwards it becomes the default regardless of its prior
// flag; with zero or two-plus remaining the flags are left untouched.
func (u *User) RemoveAddress(addressID string) error {
	idx := -1
	for i, a := range u.SavedAddresses {
		if a.ID == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrAddressNotFound
	}

	u.SavedAddresses = append(u.SavedAddresses[:idx], u.SavedAddresses[idx+1:]...)

	if len(u.SavedAddresses) == 1 {
		u.SavedAddresses[0].IsDefault = true
	}
	return nil
}

// SetDefaultAddress clears every default flag and sets the target's,
// re-establishing the single-default invariant unconditionally.
func (u *User) SetDefaultAddress(addressID string) error {
	idx := -1
	for i, a := range u.SavedAddresses {
		if a.ID == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrAddressNotFound
	}

	for i := range u.SavedAddresses {
		u.SavedAddresses[i].IsDefault = false
	}
	u.SavedAddresses[idx].IsDefault = true
	return nil
}

// SaveItem appends item to the saved-for-later list. Items must carry a
// product ID and at least one image. Product IDs are compared exactly.
func (u *User) SaveItem(item SavedItem) error {
	if item.ProductID == "" || len(item.Images) == 0 {
		return ErrInvalidProduct
	}

	for _, existing := range u.SavedItems {
		if existing.ProductID == item.ProductID {
			return ErrItemAlreadySaved
		}
	}

	u.SavedItems = append(u.SavedItems, item)
	return nil
}

// RemoveSavedItem filters out the entry matching productID.
func (u *User) RemoveSavedItem(productID string) error {
	kept := u.SavedItems[:0]
	removed := false
	for _, item := range u.SavedItems {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return ErrItemNotFound
	}
	u.SavedItems = kept
	return nil
}

// ClearResetToken consumes the single-use password reset claim.
func (u *User) ClearResetToken() {
	u.ResetToken = ""
	u.ResetTokenExpiresAt = nil
}
