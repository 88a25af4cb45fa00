package service

import (
	"context"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/observability"
	"github.com/noahops/console-bfa-go/internal/port"
	"github.com/noahops/console-bfa-go/internal/state"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// openRecordPageSize bounds the open-record lookup.
const openRecordPageSize = 20

// CheckInService owns the professional portal's check-in/check-out flow.
// Preconditions are verified against the backend before any mutation, so
// the answer never depends on what another session happened to list.
type CheckInService struct {
	backend  port.CheckRecordStore
	states   *state.Registry[domain.CheckRecord]
	metrics  *observability.Metrics
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCheckInService creates the check-in service.
func NewCheckInService(backend port.CheckRecordStore, states *state.Registry[domain.CheckRecord], metrics *observability.Metrics, logger *zap.Logger) *CheckInService {
	return &CheckInService{
		backend:  backend,
		states:   states,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
	}
}

// List fetches a page of check records into the scope's state store.
func (s *CheckInService) List(ctx context.Context, scope string, req domain.PageRequest, filters map[string]string) ([]domain.CheckRecord, domain.Pagination, error) {
	ctx, span := tracer.Start(ctx, "CheckInService.List")
	defer span.End()

	store := s.states.For(scope)
	if err := store.Fetch(ctx, req, filters); err != nil {
		s.metrics.IncrCoreAPIError("checkrecord")
		return nil, store.Pagination(), err
	}
	return store.Items(), store.Pagination(), nil
}

// OpenRecord returns the professional's currently open check record, if
// any. It asks the backend directly rather than reading local state.
func (s *CheckInService) OpenRecord(ctx context.Context, professionalID string) (*domain.CheckRecord, error) {
	ctx, span := tracer.Start(ctx, "CheckInService.OpenRecord")
	defer span.End()

	page, err := s.backend.List(ctx, map[string]string{
		"professionalId": professionalID,
		"status":         domain.CheckOpen,
	}, domain.PageRequest{Page: 1, PageSize: openRecordPageSize})
	if err != nil {
		s.metrics.IncrCoreAPIError("checkrecord")
		return nil, err
	}
	for _, record := range page.Results {
		if record.ProfessionalID == professionalID && record.Open() {
			copied := record
			return &copied, nil
		}
	}
	return nil, nil
}

// CheckIn opens a new record for the appointment. The professional must be
// linked to a company and must not already have an open record.
func (s *CheckInService) CheckIn(ctx context.Context, scope, professionalID, companyID string, req domain.CheckInRequest) (*domain.CheckRecord, error) {
	ctx, span := tracer.Start(ctx, "CheckInService.CheckIn")
	defer span.End()

	if professionalID == "" {
		return nil, &domain.ErrPrecondition{Message: "no professional in session"}
	}
	if companyID == "" {
		return nil, &domain.ErrPrecondition{Message: "professional is not linked to a company"}
	}
	if err := s.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return nil, &domain.ErrValidation{Field: first.Field(), Message: "failed on '" + first.Tag() + "'"}
		}
		return nil, &domain.ErrValidation{Field: "request", Message: err.Error()}
	}
	open, err := s.OpenRecord(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, &domain.ErrPrecondition{
			Message: "check-out the open record before checking in again",
		}
	}

	payload := struct {
		domain.CheckInRequest
		ProfessionalID string `json:"professionalId"`
		CompanyID      string `json:"companyId"`
		Status         string `json:"status"`
	}{
		CheckInRequest: req,
		ProfessionalID: professionalID,
		CompanyID:      companyID,
		Status:         domain.CheckOpen,
	}

	created, err := s.states.For(scope).Create(ctx, payload)
	if err != nil {
		s.metrics.IncrCoreAPIError("checkrecord")
		return nil, err
	}
	s.logger.Info("checked in",
		zap.String("professional_id", professionalID),
		zap.String("appointment_id", req.AppointmentID),
	)
	return created, nil
}

// CheckOut closes an open record. The record is read back from the backend
// and must still be open and belong to the professional.
func (s *CheckInService) CheckOut(ctx context.Context, scope, professionalID string, req domain.CheckOutRequest) (*domain.CheckRecord, error) {
	ctx, span := tracer.Start(ctx, "CheckInService.CheckOut")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return nil, &domain.ErrValidation{Field: first.Field(), Message: "failed on '" + first.Tag() + "'"}
		}
		return nil, &domain.ErrValidation{Field: "request", Message: err.Error()}
	}

	target, err := s.backend.Get(ctx, req.RecordID)
	if err != nil {
		return nil, err
	}
	if !target.Open() {
		return nil, &domain.ErrPrecondition{Message: "record is already checked out"}
	}
	if target.ProfessionalID != professionalID {
		return nil, &domain.ErrForbidden{Action: "check out another professional's record"}
	}

	payload := struct {
		Status   string           `json:"status"`
		Notes    string           `json:"notes,omitempty"`
		Location *domain.GeoPoint `json:"location,omitempty"`
	}{
		Status:   domain.CheckClosed,
		Notes:    req.Notes,
		Location: req.Location,
	}

	updated, err := s.states.For(scope).Update(ctx, req.RecordID, payload)
	if err != nil {
		s.metrics.IncrCoreAPIError("checkrecord")
		return nil, err
	}
	s.logger.Info("checked out",
		zap.String("professional_id", professionalID),
		zap.String("record_id", req.RecordID),
	)
	return updated, nil
}
