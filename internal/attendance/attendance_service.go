package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-crm/internal/employee"
	"go-crm/internal/events"
	"go-crm/internal/messaging/kafka"
	"go-crm/internal/shared/contextutil"

	attendanceerrors "go-crm/internal/attendance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory menyediakan data master karyawan yang dibutuhkan
// kebijakan absensi (flag tech_team). employee.Repository memenuhinya.
type EmployeeDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, companyID, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, companyID, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]AttendanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) CheckIn(ctx context.Context, companyID, employeeID string, req CheckInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	at, err := parseAt(req.At)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTimestamp
	}
	day := dateOnly(at)

	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		EmployeeID:     empl.ID,
		AttendanceDate: day,
		CheckIn:        at,
		Status:         CheckInStatus(at, empl.TechTeam),
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := s.queueRecorded(ctx, tx, rid, "attendance_checked_in", row); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, companyID, employeeID string, req CheckOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	at, err := parseAt(req.At)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTimestamp
	}
	day := dateOnly(at)

	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &at
	row.Status = CheckOutStatus(row.Status, at, empl.TechTeam)
	row.WorkedHours = WorkedHours(row.CheckIn, at)
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := s.queueRecorded(ctx, tx, rid, "attendance_checked_out", row); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("status", row.Status),
		zap.Float64("worked_hours", row.WorkedHours),
	)
	return mapToResponse(*row), nil
}

// GetAll: admin/HR melihat semua, selain itu hanya baris miliknya sendiri.
func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	var (
		rows []Attendance
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		rows, err = s.repo.FindAllByCompanyAndEmployee(ctx, companyID, actorID)
	}
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) queueRecorded(ctx context.Context, tx *sql.Tx, rid, eventType string, row *Attendance) error {
	if s.outbox == nil {
		return nil
	}

	event := events.AttendanceRecordedEvent{
		EventType:    eventType,
		RequestID:    rid,
		AttendanceID: row.ID.String(),
		EmployeeID:   row.EmployeeID.String(),
		CompanyID:    row.CompanyID.String(),
		Status:       row.Status,
		WorkedHours:  row.WorkedHours,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal attendance event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "attendance",
		AggregateID:   row.ID.String(),
		EventType:     eventType,
		Topic:         events.AttendanceRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("attendance outbox persist failed",
			zap.String("attendance_id", row.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		CheckIn:        a.CheckIn.Format(time.RFC3339),
		Status:         a.Status,
		WorkedHours:    a.WorkedHours,
		Notes:          a.Notes,
	}
	if a.CheckOut != nil {
		out := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &out
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
