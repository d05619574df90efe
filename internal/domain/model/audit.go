package model

import (
	"fmt"
	"time"
)

// AuditEntry is one append-only change record for an order field.
type AuditEntry struct {
	ID        int64
	OrderID   string
	UpdatedBy string
	Field     Field
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}

// AuditDescriptor carries the original user edit alongside a change-set.
// Values keep whatever JSON type the client sent; they are stringified at
// append time.
type AuditDescriptor struct {
	Field    Field
	OldValue any
	NewValue any
}

// Changed reports whether the descriptor describes an actual value change
// worth recording.
func (d AuditDescriptor) Changed() bool {
	return d.Field != "" && Stringify(d.OldValue) != Stringify(d.NewValue)
}

// Stringify renders an audit value the way it is stored: nil becomes empty.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
