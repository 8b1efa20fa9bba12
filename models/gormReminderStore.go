package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"gorm.io/gorm"
)

var ErrDatabaseNotConnected = errors.New("database not connected")

// GormReminderStore reads and writes the reminders table. It resolves the
// connection on every call because the database connects after startup.
type GormReminderStore struct {
	db func() *gorm.DB
}

func NewGormReminderStore(db func() *gorm.DB) *GormReminderStore {
	return &GormReminderStore{db: db}
}

func (s *GormReminderStore) conn(ctx context.Context) (*gorm.DB, error) {
	db := s.db()
	if db == nil {
		return nil, ErrDatabaseNotConnected
	}
	return db.WithContext(ctx), nil
}

func (s *GormReminderStore) List(ctx context.Context, filter ReminderFilter) ([]ReminderView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	stmt := BuildReminderSelect(filter)
	results := make([]ReminderView, 0)
	if err := db.Raw(stmt.SQL, stmt.Args...).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *GormReminderStore) Get(ctx context.Context, id uuid.UUID) (*ReminderView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	stmt := BuildReminderGet(id)
	var results []ReminderView
	if err := db.Raw(stmt.SQL, stmt.Args...).Scan(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, utils.ErrorRecordNotFound
	}
	return &results[0], nil
}

func (s *GormReminderStore) Insert(ctx context.Context, r Reminder) (*ReminderView, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Create(&r).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ReminderId)
}

// Update runs the partial UPDATE and then re-reads the row. MySQL reports
// zero affected rows when values are unchanged, so absence is decided by the
// read.
func (s *GormReminderStore) Update(ctx context.Context, id uuid.UUID, patch ReminderPatch) (*ReminderView, error) {
	stmt, err := BuildReminderUpdate(id, patch)
	if err != nil {
		return nil, err
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Exec(stmt.SQL, stmt.Args...).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *GormReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	result := db.Where("reminder_id = ?", id.String()).Delete(&Reminder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
