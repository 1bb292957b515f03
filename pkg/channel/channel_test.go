package channel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/channel"
)

func TestTopicFormats(t *testing.T) {
	tests := []struct {
		name     string
		audience channel.Audience
		want     string
	}{
		{
			name:     "shop wide",
			audience: channel.Shop("shop-1"),
			want:     "notifications:shop:shop-1",
		},
		{
			name:     "owner scoped",
			audience: channel.Owner("shop-1", "owner-7"),
			want:     "notifications:shop:shop-1:owner:owner-7",
		},
		{
			name:     "staff scoped",
			audience: channel.Staff("shop-1", "staff-9"),
			want:     "notifications:shop:shop-1:staff:staff-9",
		},
		{
			name:     "user scoped",
			audience: channel.User("user-3"),
			want:     "notifications:user:user-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.audience.Validate())
			assert.Equal(t, tt.want, tt.audience.Topic())
		})
	}
}

func TestTopicInjectivity(t *testing.T) {
	// Distinct audience tuples must never collide: a collision would leak
	// notifications across tenants or audiences.
	audiences := []channel.Audience{
		channel.Shop("shop-1"),
		channel.Shop("shop-2"),
		channel.Owner("shop-1", "owner-1"),
		channel.Owner("shop-2", "owner-1"),
		channel.Staff("shop-1", "s1"),
		channel.Staff("shop-1", "s2"),
		channel.Staff("shop-2", "s1"),
		channel.User("s1"),
		channel.User("user-1"),
	}

	seen := make(map[string]channel.Audience, len(audiences))
	for _, a := range audiences {
		topic := a.Topic()
		prev, dup := seen[topic]
		assert.False(t, dup, "topic %q produced by both %+v and %+v", topic, prev, a)
		seen[topic] = a
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		audience channel.Audience
		wantErr  error
	}{
		{
			name:     "empty shop id",
			audience: channel.Shop(""),
			wantErr:  channel.ErrEmptyID,
		},
		{
			name:     "staff audience missing staff id",
			audience: channel.Staff("shop-1", ""),
			wantErr:  channel.ErrEmptyID,
		},
		{
			name:     "delimiter in shop id",
			audience: channel.Shop("shop:1"),
			wantErr:  channel.ErrReservedDelimiter,
		},
		{
			name:     "delimiter in staff id",
			audience: channel.Staff("shop-1", "staff:9"),
			wantErr:  channel.ErrReservedDelimiter,
		},
		{
			name:     "unknown kind",
			audience: channel.Audience{Kind: channel.Kind("group"), ShopID: "shop-1"},
			wantErr:  channel.ErrUnknownKind,
		},
		{
			name:     "valid owner audience",
			audience: channel.Owner("shop-1", "owner-1"),
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.audience.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTopicHelpers(t *testing.T) {
	assert.Equal(t, "notifications:shop:s", channel.ShopTopic("s"))
	assert.Equal(t, "notifications:shop:s:owner:o", channel.OwnerTopic("s", "o"))
	assert.Equal(t, "notifications:shop:s:staff:st", channel.StaffTopic("s", "st"))
	assert.Equal(t, "notifications:user:u", channel.UserTopic("u"))
}
