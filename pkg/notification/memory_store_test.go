package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/notification"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/vclock"
)

func seedRecord(t *testing.T, s *notification.MemoryStore, n notification.Notification) {
	t.Helper()
	require.NoError(t, s.Create(context.Background(), n))
}

func TestMemoryStore_CreateGet(t *testing.T) {
	s := notification.NewMemoryStore()
	seedRecord(t, s, notification.Notification{
		ID:     "n-1",
		ShopID: "shop-1",
		Clock:  vclock.New("r1"),
	})

	got, err := s.Get(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", got.ShopID)

	// The returned clock is a copy; mutating it must not touch the store.
	got.Clock["r1"] = 99
	again, err := s.Get(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Clock["r1"])
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := notification.NewMemoryStore()
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, notification.ErrNotFound)
}

func TestMemoryStore_MarkRead(t *testing.T) {
	s := notification.NewMemoryStore()
	seedRecord(t, s, notification.Notification{ID: "n-1", ShopID: "shop-1", Clock: vclock.New("r1")})

	clock := vclock.Clock{"r1": 0, "r2": 1}
	at := time.Now().UTC()
	require.NoError(t, s.MarkRead(context.Background(), "n-1", clock, at))

	got, err := s.Get(context.Background(), "n-1")
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	assert.Equal(t, clock, got.Clock)
	assert.Equal(t, at, got.UpdatedAt)

	assert.ErrorIs(t, s.MarkRead(context.Background(), "missing", clock, at), notification.ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := notification.NewMemoryStore()
	seedRecord(t, s, notification.Notification{ID: "n-1", ShopID: "shop-1"})

	require.NoError(t, s.Delete(context.Background(), "n-1"))
	assert.ErrorIs(t, s.Delete(context.Background(), "n-1"), notification.ErrNotFound)
}

func TestMemoryStore_ListFiltersAndSorts(t *testing.T) {
	s := notification.NewMemoryStore()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seedRecord(t, s, notification.Notification{ID: "old", ShopID: "shop-1", Type: notification.TypeLowStock, CreatedAt: base})
	seedRecord(t, s, notification.Notification{ID: "new", ShopID: "shop-1", Type: notification.TypeSaleCompleted, CreatedAt: base.Add(time.Hour)})
	seedRecord(t, s, notification.Notification{ID: "read", ShopID: "shop-1", Type: notification.TypeLowStock, IsRead: true, CreatedAt: base.Add(2 * time.Hour)})
	seedRecord(t, s, notification.Notification{ID: "other", ShopID: "shop-2", Type: notification.TypeLowStock, CreatedAt: base})

	t.Run("newest first, shop scoped", func(t *testing.T) {
		got, err := s.List(context.Background(), "shop-1", notification.ListOptions{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "read", got[0].ID)
		assert.Equal(t, "new", got[1].ID)
		assert.Equal(t, "old", got[2].ID)
	})

	t.Run("only unread", func(t *testing.T) {
		got, err := s.List(context.Background(), "shop-1", notification.ListOptions{OnlyUnread: true})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("type filter", func(t *testing.T) {
		got, err := s.List(context.Background(), "shop-1", notification.ListOptions{
			Types: []notification.Type{notification.TypeSaleCompleted},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "new", got[0].ID)
	})

	t.Run("since filter", func(t *testing.T) {
		since := base.Add(30 * time.Minute)
		got, err := s.List(context.Background(), "shop-1", notification.ListOptions{Since: &since})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := s.List(context.Background(), "shop-1", notification.ListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "new", got[0].ID)
	})
}

func TestMemoryStore_StaffScope(t *testing.T) {
	s := notification.NewMemoryStore()
	seedRecord(t, s, notification.Notification{ID: "broadcast", ShopID: "shop-1"})
	seedRecord(t, s, notification.Notification{ID: "mine", ShopID: "shop-1", StaffID: "staff-9"})
	seedRecord(t, s, notification.Notification{ID: "theirs", ShopID: "shop-1", StaffID: "staff-2"})

	got, err := s.List(context.Background(), "shop-1", notification.ListOptions{StaffID: "staff-9"})
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, n := range got {
		ids[i] = n.ID
	}
	assert.ElementsMatch(t, []string{"broadcast", "mine"}, ids)
}

func TestMemoryStore_CountUnread(t *testing.T) {
	s := notification.NewMemoryStore()
	seedRecord(t, s, notification.Notification{ID: "a", ShopID: "shop-1"})
	seedRecord(t, s, notification.Notification{ID: "b", ShopID: "shop-1", StaffID: "staff-9"})
	seedRecord(t, s, notification.Notification{ID: "c", ShopID: "shop-1", StaffID: "staff-2"})
	seedRecord(t, s, notification.Notification{ID: "d", ShopID: "shop-1", IsRead: true})

	whole, err := s.CountUnread(context.Background(), "shop-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), whole)

	scoped, err := s.CountUnread(context.Background(), "shop-1", "staff-9")
	require.NoError(t, err)
	assert.Equal(t, int64(2), scoped)
}
