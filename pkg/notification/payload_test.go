package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		wantErr error
	}{
		{
			name:    "valid low stock",
			payload: LowStockData{InventoryID: "inv-1", ItemName: "Flour", Quantity: 2, Threshold: 5},
		},
		{
			name:    "low stock missing inventory id",
			payload: LowStockData{Quantity: 2, Threshold: 5},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "low stock negative quantity",
			payload: LowStockData{InventoryID: "inv-1", Quantity: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "valid out of stock",
			payload: OutOfStockData{InventoryID: "inv-1", ItemName: "Flour"},
		},
		{
			name:    "valid sale",
			payload: SaleCompletedData{SaleID: "sale-1", Total: 120.50, ItemCount: 3},
		},
		{
			name:    "sale negative total",
			payload: SaleCompletedData{SaleID: "sale-1", Total: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "inventory updated missing id",
			payload: InventoryUpdatedData{ItemName: "Flour"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "valid staff created",
			payload: StaffCreatedData{StaffID: "staff-1", Name: "Ada"},
		},
		{
			name:    "staff deleted missing id",
			payload: StaffDeletedData{Name: "Ada"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "expense negative amount",
			payload: ExpenseRecordedData{ExpenseID: "exp-1", Amount: -3},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "system alert missing code",
			payload: SystemAlertData{Severity: "high"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "custom data is free form",
			payload: CustomData{"anything": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMetadataFromPayload(t *testing.T) {
	meta, err := metadataFromPayload(TypeLowStock, LowStockData{
		InventoryID: "inv-1",
		ItemName:    "Flour",
		Quantity:    2,
		Threshold:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"inventoryId": "inv-1",
		"itemName":    "Flour",
		"quantity":    float64(2),
		"threshold":   float64(5),
	}, meta)
}

func TestMetadataFromPayload_TypeMismatch(t *testing.T) {
	_, err := metadataFromPayload(TypeSaleCompleted, LowStockData{InventoryID: "inv-1"})
	assert.ErrorIs(t, err, ErrPayloadMismatch)
}

func TestMetadataFromPayload_InvalidPayload(t *testing.T) {
	_, err := metadataFromPayload(TypeLowStock, LowStockData{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
