package attendance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-crm/internal/attendance"
	attendanceerrors "go-crm/internal/attendance/errors"
	"go-crm/internal/employee"
	"go-crm/internal/events"
	"go-crm/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepo struct {
	createFn      func(ctx context.Context, a *attendance.Attendance) error
	findByDateFn  func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error)
	findAllFn     func(ctx context.Context, companyID string) ([]attendance.Attendance, error)
	findByActorFn func(ctx context.Context, companyID, employeeID string) ([]attendance.Attendance, error)
	updateFn      func(ctx context.Context, a *attendance.Attendance) error
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return f.findByDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeAttendanceRepo) FindAllByCompany(ctx context.Context, companyID string) ([]attendance.Attendance, error) {
	return f.findAllFn(ctx, companyID)
}
func (f *fakeAttendanceRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]attendance.Attendance, error) {
	return f.findByActorFn(ctx, companyID, employeeID)
}
func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	return f.updateFn(ctx, a)
}

type fakeDirectory struct {
	employees map[string]*employee.Employee
}

func (f *fakeDirectory) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	emplID := uuid.New()

	directory := &fakeDirectory{employees: map[string]*employee.Employee{
		emplID.String(): {ID: emplID, CompanyID: uuid.MustParse(companyID), FullName: "Priya", TechTeam: false},
	}}

	t.Run("first check-in of the day derives status and queues event", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		var created *attendance.Attendance
		repo := &fakeAttendanceRepo{
			findByDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, a *attendance.Attendance) error {
				created = a
				return nil
			},
		}
		outbox := &fakeOutbox{}
		svc := attendance.NewService(db, repo, directory, outbox)

		expectTx(t, sqlMock, true)

		resp, err := svc.CheckIn(ctx, companyID, emplID.String(), attendance.CheckInRequest{
			At: "2026-03-02T09:50:00Z", // 09:50 untuk non-tech (mulai 09:30) -> Late
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, resp.Status)
		assert.Equal(t, "2026-03-02", resp.AttendanceDate)
		assert.NotNil(t, created)

		if assert.Len(t, outbox.created, 1) {
			evt := outbox.created[0]
			assert.Equal(t, events.AttendanceRecordedTopic, evt.Topic)
			assert.Equal(t, "attendance_checked_in", evt.EventType)

			var payload events.AttendanceRecordedEvent
			assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
			assert.Equal(t, attendance.StatusLate, payload.Status)
		}
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("second check-in same day conflicts", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeAttendanceRepo{
			findByDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
				return &attendance.Attendance{ID: uuid.New()}, nil
			},
		}
		svc := attendance.NewService(db, repo, directory, nil)

		expectTx(t, sqlMock, false)

		_, err := svc.CheckIn(ctx, companyID, emplID.String(), attendance.CheckInRequest{
			At: "2026-03-02T09:40:00Z",
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("unknown employee", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := attendance.NewService(db, &fakeAttendanceRepo{}, directory, nil)

		_, err := svc.CheckIn(ctx, companyID, uuid.New().String(), attendance.CheckInRequest{
			At: "2026-03-02T09:40:00Z",
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	emplID := uuid.New()

	directory := &fakeDirectory{employees: map[string]*employee.Employee{
		emplID.String(): {ID: emplID, CompanyID: uuid.MustParse(companyID), FullName: "Dev", TechTeam: true},
	}}

	t.Run("overtime suffix and worked hours on late checkout", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		row := &attendance.Attendance{
			ID:             uuid.New(),
			CompanyID:      uuid.MustParse(companyID),
			EmployeeID:     emplID,
			AttendanceDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			CheckIn:        checkIn,
			Status:         attendance.StatusPresent,
		}
		repo := &fakeAttendanceRepo{
			findByDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
				return row, nil
			},
			updateFn: func(ctx context.Context, a *attendance.Attendance) error { return nil },
		}
		outbox := &fakeOutbox{}
		svc := attendance.NewService(db, repo, directory, outbox)

		expectTx(t, sqlMock, true)

		// 18:31 untuk tim teknis (batas 18:00) -> Overtime
		resp, err := svc.CheckOut(ctx, companyID, emplID.String(), attendance.CheckOutRequest{
			At: "2026-03-02T18:31:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent+attendance.OvertimeSuffix, resp.Status)
		assert.Equal(t, 8.52, resp.WorkedHours)

		if assert.Len(t, outbox.created, 1) {
			assert.Equal(t, "attendance_checked_out", outbox.created[0].EventType)
		}
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("checkout without checkin conflicts", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeAttendanceRepo{
			findByDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := attendance.NewService(db, repo, directory, nil)

		expectTx(t, sqlMock, false)

		_, err := svc.CheckOut(ctx, companyID, emplID.String(), attendance.CheckOutRequest{
			At: "2026-03-02T18:00:00Z",
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	})

	t.Run("double checkout conflicts", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		out := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
		repo := &fakeAttendanceRepo{
			findByDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
				return &attendance.Attendance{ID: uuid.New(), CheckOut: &out}, nil
			},
		}
		svc := attendance.NewService(db, repo, directory, nil)

		expectTx(t, sqlMock, false)

		_, err := svc.CheckOut(ctx, companyID, emplID.String(), attendance.CheckOutRequest{
			At: "2026-03-02T19:00:00Z",
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})
}

func TestAttendanceService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	rows := []attendance.Attendance{
		{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), EmployeeID: uuid.New(), CheckIn: time.Now()},
	}

	t.Run("non-privileged actor sees only own rows", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		var askedEmployee string
		repo := &fakeAttendanceRepo{
			findByActorFn: func(ctx context.Context, companyID, employeeID string) ([]attendance.Attendance, error) {
				askedEmployee = employeeID
				return rows, nil
			},
		}
		svc := attendance.NewService(db, repo, &fakeDirectory{}, nil)

		resp, err := svc.GetAll(ctx, companyID, actorID, false)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, actorID, askedEmployee)
	})

	t.Run("privileged actor sees company-wide rows", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		called := false
		repo := &fakeAttendanceRepo{
			findAllFn: func(ctx context.Context, companyID string) ([]attendance.Attendance, error) {
				called = true
				return rows, nil
			},
		}
		svc := attendance.NewService(db, repo, &fakeDirectory{}, nil)

		_, err := svc.GetAll(ctx, companyID, actorID, true)
		assert.NoError(t, err)
		assert.True(t, called)
	})
}
