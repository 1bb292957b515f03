package notification

import "context"

// SettingsProvider answers whether a shop has a given auto-triggered
// notification type enabled. It is an external collaborator owned by the
// shop-settings domain; the service fails open when the lookup errors, so a
// settings outage never suppresses notifications.
type SettingsProvider interface {
	IsNotificationEnabled(ctx context.Context, shopID string, t Type) (bool, error)
}

// AllEnabled is the default SettingsProvider: every type is enabled for
// every shop.
type AllEnabled struct{}

func (AllEnabled) IsNotificationEnabled(ctx context.Context, shopID string, t Type) (bool, error) {
	return true, nil
}
