package models

import (
	"context"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/utils"
)

// CachedReminderStore serves Get from redis when it can and keeps the cached
// view in step with writes. Cache failures never fail the request.
type CachedReminderStore struct {
	next ReminderStore
}

func NewCachedReminderStore(next ReminderStore) *CachedReminderStore {
	return &CachedReminderStore{next: next}
}

func (s *CachedReminderStore) List(ctx context.Context, filter ReminderFilter) ([]ReminderView, error) {
	return s.next.List(ctx, filter)
}

func (s *CachedReminderStore) Get(ctx context.Context, id uuid.UUID) (*ReminderView, error) {
	logger := config.GetLogger()
	if cached, err := utils.RetrieveRedis[ReminderView](ctx, id.String()); err != nil {
		config.LogError(logger, "CachedReminderStore", "Get", "retrieve cache", id.String(), err)
	} else if cached != nil {
		return cached, nil
	}

	view, err := s.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, view)
	return view, nil
}

func (s *CachedReminderStore) Insert(ctx context.Context, r Reminder) (*ReminderView, error) {
	view, err := s.next.Insert(ctx, r)
	if err != nil {
		return nil, err
	}
	s.store(ctx, view)
	return view, nil
}

func (s *CachedReminderStore) Update(ctx context.Context, id uuid.UUID, patch ReminderPatch) (*ReminderView, error) {
	view, err := s.next.Update(ctx, id, patch)
	s.evict(ctx, id)
	return view, err
}

func (s *CachedReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.next.Delete(ctx, id)
	s.evict(ctx, id)
	return err
}

func (s *CachedReminderStore) store(ctx context.Context, view *ReminderView) {
	if err := utils.StoreRedis(ctx, view, view.ReminderId.String()); err != nil {
		config.LogError(config.GetLogger(), "CachedReminderStore", "store", "store cache", view.ReminderId.String(), err)
	}
}

func (s *CachedReminderStore) evict(ctx context.Context, id uuid.UUID) {
	if err := utils.RemoveRedisItem[ReminderView](ctx, id.String()); err != nil {
		config.LogError(config.GetLogger(), "CachedReminderStore", "evict", "remove cache", id.String(), err)
	}
}
