package notification

import (
	"time"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/vclock"
)

// MaxMessageLength bounds the human-readable message text.
const MaxMessageLength = 500

// Type identifies the event class a notification belongs to. The set is
// closed: unknown values are rejected at creation time.
type Type string

const (
	TypeLowStock         Type = "low_stock"
	TypeOutOfStock       Type = "out_of_stock"
	TypeSaleCompleted    Type = "sale_completed"
	TypeInventoryUpdated Type = "inventory_updated"
	TypeStaffCreated     Type = "staff_created"
	TypeStaffDeleted     Type = "staff_deleted"
	TypeExpenseRecorded  Type = "expense_recorded"
	TypeSystemAlert      Type = "system_alert"
	TypeCustom           Type = "custom"
)

// Types lists every member of the closed enumeration.
func Types() []Type {
	return []Type{
		TypeLowStock,
		TypeOutOfStock,
		TypeSaleCompleted,
		TypeInventoryUpdated,
		TypeStaffCreated,
		TypeStaffDeleted,
		TypeExpenseRecorded,
		TypeSystemAlert,
		TypeCustom,
	}
}

// Valid reports whether t is a member of the closed enumeration.
func (t Type) Valid() bool {
	switch t {
	case TypeLowStock, TypeOutOfStock, TypeSaleCompleted, TypeInventoryUpdated,
		TypeStaffCreated, TypeStaffDeleted, TypeExpenseRecorded,
		TypeSystemAlert, TypeCustom:
		return true
	default:
		return false
	}
}

// AutoTriggered reports whether the type is produced by workflow automation
// (as opposed to an explicit operator action). Auto-triggered types are
// gated by per-shop notification settings before emission.
func (t Type) AutoTriggered() bool {
	switch t {
	case TypeSystemAlert, TypeCustom:
		return false
	default:
		return t.Valid()
	}
}

// Notification is one notification event addressed to a shop audience.
// The JSON encoding is the wire format published to the broker and must
// stay stable; the bson tags shape the stored document.
type Notification struct {
	ID          string         `json:"id" bson:"_id"`
	ShopID      string         `json:"shopId" bson:"shopId"`
	StaffID     string         `json:"staffId,omitempty" bson:"staffId,omitempty"`
	InventoryID string         `json:"inventoryId,omitempty" bson:"inventoryId,omitempty"`
	Message     string         `json:"message" bson:"message"`
	IsRead      bool           `json:"isRead" bson:"isRead"`
	Clock       vclock.Clock   `json:"vectorClock" bson:"vectorClock"`
	Type        Type           `json:"type" bson:"type"`
	Metadata    map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// Broadcast reports whether the record addresses the whole shop rather than
// a single staff member.
func (n *Notification) Broadcast() bool {
	return n.StaffID == ""
}
