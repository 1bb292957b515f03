package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ShopID records the shop identifier under the key "shop_id".
func ShopID(id string) slog.Attr {
	return slog.String("shop_id", id)
}

// StaffID records the staff identifier under the key "staff_id".
// If id is empty, it returns an empty Attr.
func StaffID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("staff_id", id)
}

// UserID records the user identifier under the key "user_id".
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// NotificationID records the notification identifier under the key
// "notification_id".
func NotificationID(id string) slog.Attr {
	return slog.String("notification_id", id)
}

// NotificationType records the notification type under the key "type".
func NotificationType(t string) slog.Attr {
	return slog.String("type", t)
}

// Topic records the pub/sub topic under the key "topic".
func Topic(topic string) slog.Attr {
	return slog.String("topic", topic)
}

// ReplicaID records the originating replica under the key "replica_id".
func ReplicaID(id string) slog.Attr {
	return slog.String("replica_id", id)
}

// RetryCount records the retry count under the key "retry_count".
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
