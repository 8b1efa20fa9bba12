package models

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ReminderListParams are the raw list query values; nil means not supplied.
type ReminderListParams struct {
	Limit  *string
	Offset *string
	Status *string
	From   *string
	To     *string
}

// ReminderService validates reminder requests and routes them to the mock or
// persistent store, chosen per call.
type ReminderService struct {
	mock       ReminderStore
	persistent ReminderStore
	useMock    func() bool
	logger     *logrus.Logger
	tracer     trace.Tracer
	newId      func() uuid.UUID
	now        func() time.Time
}

func NewReminderService(mock, persistent ReminderStore, useMock func() bool, logger *logrus.Logger, tracer trace.Tracer) *ReminderService {
	return &ReminderService{
		mock:       mock,
		persistent: persistent,
		useMock:    useMock,
		logger:     logger,
		tracer:     tracer,
		newId:      uuid.New,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReminderService) store() (ReminderStore, string) {
	if s.useMock() {
		return s.mock, "mock"
	}
	return s.persistent, "persistent"
}

func (s *ReminderService) start(ctx context.Context, op string) (context.Context, trace.Span, ReminderStore) {
	store, mode := s.store()
	ctx, span := s.tracer.Start(ctx, "ReminderService."+op, trace.WithAttributes(attribute.String("reminder.store", mode)))
	return ctx, span, store
}

// fail records err on the span. Errors that are not client-caused are
// logged and replaced by a StorageError.
func (s *ReminderService) fail(span trace.Span, op string, data any, err error) error {
	var verrs utils.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, utils.ErrorRecordNotFound) || errors.Is(err, ErrNoFieldsToUpdate) {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "storage failure")
	config.LogError(s.logger, "ReminderService", op, "store", data, err)
	return utils.NewStorageError(op, err)
}

func parseReminderId(id string) (uuid.UUID, error) {
	if !utils.IsUUID(id) {
		var errs utils.ValidationErrors
		errs.Add("id", "id must be a valid UUID")
		return uuid.Nil, errs
	}
	return uuid.MustParse(id), nil
}

// ParseListParams validates the list query into a filter.
func ParseListParams(p ReminderListParams) (ReminderFilter, error) {
	var filter ReminderFilter
	var errs utils.ValidationErrors

	if p.Limit != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*p.Limit))
		if err != nil || n < MinListLimit || n > MaxListLimit {
			errs.Add("limit", "limit must be an integer between 1 and 100")
		} else {
			filter.Limit = &n
		}
	}
	if p.Offset != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*p.Offset))
		if err != nil || n < 0 {
			errs.Add("offset", "offset must be a non-negative integer")
		} else {
			filter.Offset = &n
		}
	}
	if p.Status != nil {
		if status := strings.TrimSpace(*p.Status); status != "" {
			filter.Status = &status
		}
	}
	if p.From != nil {
		t, err := utils.ParseISODate(*p.From)
		if err != nil {
			errs.Add("from", err.Error())
		} else {
			filter.From = &t
		}
	}
	if p.To != nil {
		t, err := utils.ParseISODate(*p.To)
		if err != nil {
			errs.Add("to", err.Error())
		} else {
			filter.To = &t
		}
	}
	return filter, errs.OrNil()
}

func (s *ReminderService) List(ctx context.Context, params ReminderListParams) ([]ReminderView, error) {
	ctx, span, store := s.start(ctx, "List")
	defer span.End()

	filter, err := ParseListParams(params)
	if err != nil {
		return nil, s.fail(span, "List", nil, err)
	}
	views, err := store.List(ctx, filter)
	if err != nil {
		return nil, s.fail(span, "List", filter, err)
	}
	span.SetAttributes(attribute.Int("reminder.count", len(views)))
	return views, nil
}

func (s *ReminderService) Get(ctx context.Context, id string) (*ReminderView, error) {
	ctx, span, store := s.start(ctx, "Get")
	defer span.End()

	reminderId, err := parseReminderId(id)
	if err != nil {
		return nil, s.fail(span, "Get", nil, err)
	}
	view, err := store.Get(ctx, reminderId)
	if err != nil {
		return nil, s.fail(span, "Get", id, err)
	}
	return view, nil
}

// validate checks the create payload, collecting every violation.
func (input *NewReminder) validate(now time.Time) (Reminder, error) {
	var errs utils.ValidationErrors

	ref, refErr := ParseInvoiceRefJSON(input.InvoiceId)
	if refErr != nil {
		errs.Add("invoice_id", refErr.Error())
	}

	errs = append(errs, input.decodeErrs...)

	input.ClientName = strings.TrimSpace(input.ClientName)
	input.Email = utils.NormalizeEmail(input.Email)
	if err := utils.Validator().Struct(input); err != nil {
		errs = append(errs, withoutFields(utils.ProcessValidationErrors(err), input.decodeErrs)...)
	}

	reminderDate := now
	if dueDate := utils.TrimPtr(input.DueDate); dueDate != nil {
		t, err := utils.ParseISODate(*dueDate)
		if err != nil {
			errs.Add("due_date", err.Error())
		} else {
			reminderDate = t
		}
	}

	if len(errs) > 0 {
		return Reminder{}, errs
	}

	return Reminder{
		InvoiceId:    ref,
		ClientName:   input.ClientName,
		Email:        input.Email,
		ReminderDate: reminderDate,
		Message:      input.Message,
		Type:         utils.DereferencePtr(input.Type, ReminderTypePolite),
		Status:       utils.DereferencePtr(input.Status, ReminderStatusPending),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *ReminderService) Create(ctx context.Context, input NewReminder) (*ReminderView, error) {
	ctx, span, store := s.start(ctx, "Create")
	defer span.End()

	reminder, err := input.validate(s.now())
	if err != nil {
		return nil, s.fail(span, "Create", nil, err)
	}
	reminder.ReminderId = s.newId()
	span.SetAttributes(attribute.String("reminder.id", reminder.ReminderId.String()))

	view, err := store.Insert(ctx, reminder)
	if err != nil {
		return nil, s.fail(span, "Create", reminder, err)
	}
	return view, nil
}

func (s *ReminderService) Update(ctx context.Context, id string, body map[string]json.RawMessage) (*ReminderView, error) {
	ctx, span, store := s.start(ctx, "Update")
	defer span.End()

	reminderId, err := parseReminderId(id)
	if err != nil {
		return nil, s.fail(span, "Update", nil, err)
	}
	patch, err := ParseReminderPatch(body)
	if err != nil {
		return nil, s.fail(span, "Update", nil, err)
	}
	if patch.IsEmpty() {
		return nil, s.fail(span, "Update", nil, ErrNoFieldsToUpdate)
	}

	view, err := store.Update(ctx, reminderId, patch)
	if err != nil {
		return nil, s.fail(span, "Update", id, err)
	}
	return view, nil
}

func (s *ReminderService) Delete(ctx context.Context, id string) error {
	ctx, span, store := s.start(ctx, "Delete")
	defer span.End()

	reminderId, err := parseReminderId(id)
	if err != nil {
		return s.fail(span, "Delete", nil, err)
	}
	if err := store.Delete(ctx, reminderId); err != nil {
		return s.fail(span, "Delete", id, err)
	}
	return nil
}
