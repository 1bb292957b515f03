package notification

import (
	"encoding/json"
	"fmt"
)

// Payload is the strongly typed event data attached to a notification.
// Each notification type has its own payload shape, validated at creation
// time before being flattened into the record's metadata map.
type Payload interface {
	// NotificationType returns the type the payload belongs to.
	NotificationType() Type
	// Validate checks the payload's own invariants.
	Validate() error
}

// LowStockData describes an inventory item that fell below its threshold.
type LowStockData struct {
	InventoryID string `json:"inventoryId"`
	ItemName    string `json:"itemName"`
	Quantity    int64  `json:"quantity"`
	Threshold   int64  `json:"threshold"`
}

func (LowStockData) NotificationType() Type { return TypeLowStock }

func (d LowStockData) Validate() error {
	if d.InventoryID == "" {
		return fmt.Errorf("%w: low_stock requires inventoryId", ErrInvalidInput)
	}
	if d.Quantity < 0 || d.Threshold < 0 {
		return fmt.Errorf("%w: low_stock quantities must be non-negative", ErrInvalidInput)
	}
	return nil
}

// OutOfStockData describes an inventory item that reached zero quantity.
type OutOfStockData struct {
	InventoryID string `json:"inventoryId"`
	ItemName    string `json:"itemName"`
}

func (OutOfStockData) NotificationType() Type { return TypeOutOfStock }

func (d OutOfStockData) Validate() error {
	if d.InventoryID == "" {
		return fmt.Errorf("%w: out_of_stock requires inventoryId", ErrInvalidInput)
	}
	return nil
}

// SaleCompletedData describes a finished sale.
type SaleCompletedData struct {
	SaleID    string  `json:"saleId"`
	Total     float64 `json:"total"`
	ItemCount int64   `json:"itemCount"`
}

func (SaleCompletedData) NotificationType() Type { return TypeSaleCompleted }

func (d SaleCompletedData) Validate() error {
	if d.SaleID == "" {
		return fmt.Errorf("%w: sale_completed requires saleId", ErrInvalidInput)
	}
	if d.Total < 0 {
		return fmt.Errorf("%w: sale_completed total must be non-negative", ErrInvalidInput)
	}
	return nil
}

// InventoryUpdatedData describes a change to an inventory item.
type InventoryUpdatedData struct {
	InventoryID string `json:"inventoryId"`
	ItemName    string `json:"itemName"`
	Quantity    int64  `json:"quantity"`
}

func (InventoryUpdatedData) NotificationType() Type { return TypeInventoryUpdated }

func (d InventoryUpdatedData) Validate() error {
	if d.InventoryID == "" {
		return fmt.Errorf("%w: inventory_updated requires inventoryId", ErrInvalidInput)
	}
	return nil
}

// StaffCreatedData describes a staff member added to the shop.
type StaffCreatedData struct {
	StaffID string `json:"staffId"`
	Name    string `json:"name"`
}

func (StaffCreatedData) NotificationType() Type { return TypeStaffCreated }

func (d StaffCreatedData) Validate() error {
	if d.StaffID == "" {
		return fmt.Errorf("%w: staff_created requires staffId", ErrInvalidInput)
	}
	return nil
}

// StaffDeletedData describes a staff member removed from the shop.
type StaffDeletedData struct {
	StaffID string `json:"staffId"`
	Name    string `json:"name"`
}

func (StaffDeletedData) NotificationType() Type { return TypeStaffDeleted }

func (d StaffDeletedData) Validate() error {
	if d.StaffID == "" {
		return fmt.Errorf("%w: staff_deleted requires staffId", ErrInvalidInput)
	}
	return nil
}

// ExpenseRecordedData describes a recorded shop expense.
type ExpenseRecordedData struct {
	ExpenseID string  `json:"expenseId"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
}

func (ExpenseRecordedData) NotificationType() Type { return TypeExpenseRecorded }

func (d ExpenseRecordedData) Validate() error {
	if d.ExpenseID == "" {
		return fmt.Errorf("%w: expense_recorded requires expenseId", ErrInvalidInput)
	}
	if d.Amount < 0 {
		return fmt.Errorf("%w: expense_recorded amount must be non-negative", ErrInvalidInput)
	}
	return nil
}

// SystemAlertData carries an operator-facing alert.
type SystemAlertData struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
}

func (SystemAlertData) NotificationType() Type { return TypeSystemAlert }

func (d SystemAlertData) Validate() error {
	if d.Code == "" {
		return fmt.Errorf("%w: system_alert requires code", ErrInvalidInput)
	}
	return nil
}

// CustomData is free-form payload for the custom type.
type CustomData map[string]any

func (CustomData) NotificationType() Type { return TypeCustom }

func (CustomData) Validate() error { return nil }

// metadataFromPayload validates the payload against the notification type
// and flattens it into the metadata map carried on the wire and in the
// store.
func metadataFromPayload(t Type, p Payload) (map[string]any, error) {
	if p.NotificationType() != t {
		return nil, fmt.Errorf("%w: payload for %q attached to %q", ErrPayloadMismatch, p.NotificationType(), t)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}
