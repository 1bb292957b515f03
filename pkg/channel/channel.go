package channel

import (
	"fmt"
	"strings"
)

// Delimiter separates topic components. Identifiers must never contain it.
const Delimiter = ":"

const prefix = "notifications"

// Kind identifies the audience class a notification is addressed to.
type Kind string

const (
	// KindShop addresses every member of a shop.
	KindShop Kind = "shop"
	// KindOwner addresses the shop owner's profile.
	KindOwner Kind = "owner"
	// KindStaff addresses a single staff member within a shop.
	KindStaff Kind = "staff"
	// KindUser addresses a user independent of any shop.
	KindUser Kind = "user"
)

// Audience is a resolved notification target. Construct values with Shop,
// Owner, Staff, or User rather than populating the struct directly.
type Audience struct {
	Kind    Kind
	ShopID  string
	OwnerID string
	StaffID string
	UserID  string
}

// Shop addresses all members of the given shop.
func Shop(shopID string) Audience {
	return Audience{Kind: KindShop, ShopID: shopID}
}

// Owner addresses the owner profile of the given shop.
func Owner(shopID, ownerProfileID string) Audience {
	return Audience{Kind: KindOwner, ShopID: shopID, OwnerID: ownerProfileID}
}

// Staff addresses one staff member of the given shop.
func Staff(shopID, staffID string) Audience {
	return Audience{Kind: KindStaff, ShopID: shopID, StaffID: staffID}
}

// User addresses a user outside any shop scope.
func User(userID string) Audience {
	return Audience{Kind: KindUser, UserID: userID}
}

// Validate checks that every identifier required by the audience kind is
// present and free of the reserved delimiter.
func (a Audience) Validate() error {
	switch a.Kind {
	case KindShop:
		return checkIDs(a.ShopID)
	case KindOwner:
		return checkIDs(a.ShopID, a.OwnerID)
	case KindStaff:
		return checkIDs(a.ShopID, a.StaffID)
	case KindUser:
		return checkIDs(a.UserID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
}

// Topic returns the broker topic for the audience. The mapping is injective
// for valid audiences: distinct tuples always yield distinct topics.
func (a Audience) Topic() string {
	switch a.Kind {
	case KindOwner:
		return join(prefix, "shop", a.ShopID, "owner", a.OwnerID)
	case KindStaff:
		return join(prefix, "shop", a.ShopID, "staff", a.StaffID)
	case KindUser:
		return join(prefix, "user", a.UserID)
	default:
		return join(prefix, "shop", a.ShopID)
	}
}

// ShopTopic returns the shop-wide broadcast topic.
func ShopTopic(shopID string) string {
	return Shop(shopID).Topic()
}

// OwnerTopic returns the owner-scoped topic.
func OwnerTopic(shopID, ownerProfileID string) string {
	return Owner(shopID, ownerProfileID).Topic()
}

// StaffTopic returns the staff-scoped topic.
func StaffTopic(shopID, staffID string) string {
	return Staff(shopID, staffID).Topic()
}

// UserTopic returns the user-scoped topic.
func UserTopic(userID string) string {
	return User(userID).Topic()
}

func join(parts ...string) string {
	return strings.Join(parts, Delimiter)
}

func checkIDs(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			return ErrEmptyID
		}
		if strings.Contains(id, Delimiter) {
			return fmt.Errorf("%w: %q", ErrReservedDelimiter, id)
		}
	}
	return nil
}
