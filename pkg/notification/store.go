package notification

import (
	"context"
	"time"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/vclock"
)

// Store handles notification persistence. Implementations must preserve the
// read-flag monotonicity: MarkRead sets isRead true and never the reverse.
type Store interface {
	// Create stores a new notification record.
	Create(ctx context.Context, n Notification) error

	// Get retrieves a record by id, ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Notification, error)

	// MarkRead sets isRead=true and replaces the record's vector clock.
	// Returns ErrNotFound when the record is absent.
	MarkRead(ctx context.Context, id string, clock vclock.Clock, at time.Time) error

	// Delete hard-deletes a record, ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// List returns a shop's notifications, newest first.
	List(ctx context.Context, shopID string, opts ListOptions) ([]Notification, error)

	// CountUnread returns the number of unread notifications visible to the
	// given staff scope. An empty staffID counts the whole shop.
	CountUnread(ctx context.Context, shopID, staffID string) (int64, error)
}

// ListOptions filters and paginates shop-scoped queries.
type ListOptions struct {
	// StaffID narrows results to records visible to one staff member:
	// shop-wide broadcasts plus records addressed to that staff id.
	// Empty means no recipient narrowing.
	StaffID string
	// OnlyUnread drops records already marked read.
	OnlyUnread bool
	// Types narrows results to the given notification types.
	Types []Type
	// Since drops records created before the given time.
	Since *time.Time
	// Limit caps the result size; 0 means no cap.
	Limit int
	// Offset skips leading results for pagination.
	Offset int
}

// visibleTo reports whether a record is within the recipient scope.
func (o ListOptions) visibleTo(n *Notification) bool {
	if o.StaffID == "" {
		return true
	}
	return n.Broadcast() || n.StaffID == o.StaffID
}
