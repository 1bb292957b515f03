package notification_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/notification"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/vclock"
)

func TestType_Valid(t *testing.T) {
	for _, typ := range notification.Types() {
		assert.True(t, typ.Valid(), "type %q", typ)
	}

	assert.False(t, notification.Type("").Valid())
	assert.False(t, notification.Type("price_drop").Valid())
}

func TestType_AutoTriggered(t *testing.T) {
	assert.True(t, notification.TypeLowStock.AutoTriggered())
	assert.True(t, notification.TypeSaleCompleted.AutoTriggered())
	assert.True(t, notification.TypeStaffDeleted.AutoTriggered())

	// Operator-originated types bypass the settings gate.
	assert.False(t, notification.TypeSystemAlert.AutoTriggered())
	assert.False(t, notification.TypeCustom.AutoTriggered())
	assert.False(t, notification.Type("bogus").AutoTriggered())
}

func TestNotification_Broadcast(t *testing.T) {
	broadcast := notification.Notification{ShopID: "shop-1"}
	assert.True(t, broadcast.Broadcast())

	scoped := notification.Notification{ShopID: "shop-1", StaffID: "staff-9"}
	assert.False(t, scoped.Broadcast())
}

// The JSON encoding is wire surface consumed by every subscriber; key names
// must not drift.
func TestNotification_WireFormat(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := notification.Notification{
		ID:          "n-1",
		ShopID:      "shop-1",
		StaffID:     "staff-9",
		InventoryID: "inv-4",
		Message:     "Item is running low",
		IsRead:      false,
		Clock:       vclock.Clock{"replica-1": 0},
		Type:        notification.TypeLowStock,
		Metadata:    map[string]any{"quantity": float64(2)},
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	wantKeys := []string{
		"id", "shopId", "staffId", "inventoryId", "message", "isRead",
		"vectorClock", "type", "metadata", "created_at", "updated_at",
	}
	assert.Len(t, decoded, len(wantKeys))
	for _, key := range wantKeys {
		assert.Contains(t, decoded, key)
	}

	assert.Equal(t, "low_stock", decoded["type"])
	assert.Equal(t, false, decoded["isRead"])
	assert.Equal(t, map[string]any{"replica-1": float64(0)}, decoded["vectorClock"])
	assert.Equal(t, "2025-06-01T12:00:00Z", decoded["created_at"])
}

func TestNotification_WireFormatOmitsEmptyRecipient(t *testing.T) {
	n := notification.Notification{
		ID:      "n-1",
		ShopID:  "shop-1",
		Message: "Shop-wide announcement",
		Type:    notification.TypeSystemAlert,
		Clock:   vclock.New("replica-1"),
	}

	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "staffId")
	assert.NotContains(t, decoded, "inventoryId")
	assert.NotContains(t, decoded, "metadata")
}

func TestNotification_WireRoundTrip(t *testing.T) {
	n := notification.Notification{
		ID:      "n-1",
		ShopID:  "shop-1",
		StaffID: "staff-9",
		Message: "msg",
		Type:    notification.TypeOutOfStock,
		Clock:   vclock.Clock{"a": 2, "b": 1},
	}

	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var back notification.Notification
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, n.Clock, back.Clock)
	assert.Equal(t, n.Type, back.Type)
	assert.Equal(t, n.StaffID, back.StaffID)
}
