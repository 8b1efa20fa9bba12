package models

import (
	"context"

	"github.com/google/uuid"
)

// ReminderStore is implemented by the in-memory store and the SQL store.
// Absent records are reported as utils.ErrorRecordNotFound.
type ReminderStore interface {
	List(ctx context.Context, filter ReminderFilter) ([]ReminderView, error)
	Get(ctx context.Context, id uuid.UUID) (*ReminderView, error)
	Insert(ctx context.Context, r Reminder) (*ReminderView, error)
	Update(ctx context.Context, id uuid.UUID, patch ReminderPatch) (*ReminderView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
