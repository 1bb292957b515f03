package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/channel"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/logger"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/vclock"
)

// Publisher is the slice of the emitter the service needs: publish one
// record to one topic. *pubsub.Emitter[Notification] satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, n Notification) error
}

// Service orchestrates notification creation, read-state transitions, and
// queries. Construct one per process at startup and share it; there is no
// lazily initialized global state.
type Service struct {
	store    Store
	emitter  Publisher
	settings SettingsProvider
	logger   *slog.Logger

	emitTimeout time.Duration
	emissions   sync.WaitGroup
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for the Service.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSettingsProvider sets the per-shop notification settings lookup.
func WithSettingsProvider(p SettingsProvider) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.settings = p
		}
	}
}

// WithEmitTimeout bounds the background emission of a single notification,
// retries included. Default is 30s.
func WithEmitTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.emitTimeout = d
		}
	}
}

// NewService creates the notification service. The emitter may be nil, in
// which case records are persisted without real-time delivery.
func NewService(store Store, emitter Publisher, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	s := &Service{
		store:       store,
		emitter:     emitter,
		settings:    AllEnabled{},
		logger:      slog.Default(),
		emitTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateInput describes one notification to create.
type CreateInput struct {
	// ShopID is the tenant the notification belongs to.
	ShopID string
	// Audience resolves the recipients and the emission topic. A shop-kind
	// audience creates a single broadcast record rather than one per staff
	// member.
	Audience channel.Audience
	// Message is the rendered human-readable text.
	Message string
	// Type is the event class.
	Type Type
	// InventoryID optionally references a correlated inventory item.
	InventoryID string
	// Payload is the typed event data; validated against Type. Optional.
	Payload Payload
	// Metadata is free-form data used when no typed payload is given.
	Metadata map[string]any
	// ReplicaID identifies the causal actor creating the notification.
	ReplicaID string
}

func (in CreateInput) validate() error {
	if in.ShopID == "" || in.ReplicaID == "" {
		return fmt.Errorf("%w: shop id and replica id are required", ErrInvalidInput)
	}
	if in.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(in.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, in.Type)
	}
	if err := in.Audience.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if in.Audience.Kind != channel.KindUser && in.Audience.ShopID != in.ShopID {
		return fmt.Errorf("%w: audience shop %q does not match %q", ErrShopMismatch, in.Audience.ShopID, in.ShopID)
	}
	return nil
}

// Create validates the input, persists a record with a fresh vector clock,
// and emits it to the audience topic on a detached goroutine. Persistence
// failure is fatal to the call; emission failure is logged and invisible to
// the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Notification, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	metadata := in.Metadata
	if in.Payload != nil {
		m, err := metadataFromPayload(in.Type, in.Payload)
		if err != nil {
			return nil, err
		}
		metadata = m
	}

	now := time.Now().UTC()
	record := Notification{
		ID:          uuid.NewString(),
		ShopID:      in.ShopID,
		StaffID:     in.Audience.StaffID,
		InventoryID: in.InventoryID,
		Message:     in.Message,
		Type:        in.Type,
		Metadata:    metadata,
		Clock:       vclock.New(in.ReplicaID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persist notification: %w", err)
	}

	if s.emitter != nil && s.emissionEnabled(ctx, in.ShopID, in.Type) {
		s.dispatchEmit(record, in.Audience.Topic())
	}

	return &record, nil
}

// MarkAsRead transitions a record to read. The caller's observed clock (may
// be nil) is merged into the stored clock before the replica's increment,
// so knowledge from other replicas is not lost. Calling it on an already
// read record is a state-wise no-op, though the clock still advances.
func (s *Service) MarkAsRead(ctx context.Context, shopID, id, replicaID string, observed vclock.Clock) (*Notification, error) {
	if shopID == "" || id == "" || replicaID == "" {
		return nil, fmt.Errorf("%w: shop id, notification id, and replica id are required", ErrInvalidInput)
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.ShopID != shopID {
		return nil, ErrShopMismatch
	}

	newClock := vclock.Increment(vclock.Merge(record.Clock, observed), replicaID)
	now := time.Now().UTC()
	if err := s.store.MarkRead(ctx, id, newClock, now); err != nil {
		return nil, fmt.Errorf("persist read state: %w", err)
	}

	record.IsRead = true
	record.Clock = newClock
	record.UpdatedAt = now
	return record, nil
}

// BulkMarkAsRead applies the read transition to every id. A failing id
// (missing, foreign shop, or a write error) is logged and skipped; the
// returned count is the number of records actually updated.
func (s *Service) BulkMarkAsRead(ctx context.Context, shopID string, ids []string, replicaID string) (int, error) {
	if shopID == "" || replicaID == "" {
		return 0, fmt.Errorf("%w: shop id and replica id are required", ErrInvalidInput)
	}

	count := 0
	for _, id := range ids {
		if _, err := s.MarkAsRead(ctx, shopID, id, replicaID, nil); err != nil {
			level := slog.LevelWarn
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrShopMismatch) {
				level = slog.LevelDebug
			}
			s.logger.LogAttrs(ctx, level, "Skipping notification in bulk read",
				logger.ShopID(shopID),
				logger.NotificationID(id),
				logger.Error(err),
			)
			continue
		}
		count++
	}
	return count, nil
}

// List returns a shop's notifications, newest first.
func (s *Service) List(ctx context.Context, shopID string, opts ListOptions) ([]Notification, error) {
	if shopID == "" {
		return nil, fmt.Errorf("%w: shop id is required", ErrInvalidInput)
	}
	return s.store.List(ctx, shopID, opts)
}

// UnreadCount returns the number of unread notifications visible to the
// staff scope. An empty staffID counts the whole shop.
func (s *Service) UnreadCount(ctx context.Context, shopID, staffID string) (int64, error) {
	if shopID == "" {
		return 0, fmt.Errorf("%w: shop id is required", ErrInvalidInput)
	}
	return s.store.CountUnread(ctx, shopID, staffID)
}

// Delete hard-deletes a record after checking the shop scope. No tombstone
// is written; other replicas learn of the deletion only through queries.
func (s *Service) Delete(ctx context.Context, shopID, id string) error {
	if shopID == "" || id == "" {
		return fmt.Errorf("%w: shop id and notification id are required", ErrInvalidInput)
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if record.ShopID != shopID {
		return ErrShopMismatch
	}
	return s.store.Delete(ctx, id)
}

// Close waits for in-flight background emissions to finish. Call it during
// graceful shutdown before closing the emitter.
func (s *Service) Close() error {
	s.emissions.Wait()
	return nil
}

// dispatchEmit publishes the record on a goroutine detached from the
// caller's context: the client's success response depends on persistence
// alone, never on delivery.
func (s *Service) dispatchEmit(record Notification, topic string) {
	s.emissions.Add(1)
	go func() {
		defer s.emissions.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.emitTimeout)
		defer cancel()

		if err := s.emitter.Publish(ctx, topic, record); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "Failed to emit notification",
				logger.NotificationID(record.ID),
				logger.ShopID(record.ShopID),
				logger.Topic(topic),
				logger.Error(err),
			)
		}
	}()
}

// emissionEnabled consults the per-shop settings for auto-triggered types,
// treating a lookup failure as enabled.
func (s *Service) emissionEnabled(ctx context.Context, shopID string, t Type) bool {
	if !t.AutoTriggered() {
		return true
	}

	enabled, err := s.settings.IsNotificationEnabled(ctx, shopID, t)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Settings lookup failed, emitting anyway",
			logger.ShopID(shopID),
			logger.NotificationType(string(t)),
			logger.Error(err),
		)
		return true
	}
	return enabled
}
