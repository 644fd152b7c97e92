package move_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/appointment"
	technicianRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/technician"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Appointment)
	return res, args.Error(1)
}

func (m *mockAppointmentRepo) Reschedule(ctx context.Context, id, technicianID int64, start, end time.Time) error {
	return m.Called(ctx, id, technicianID, start, end).Error(0)
}

type mockTechnicianRepo struct{ mock.Mock }

func (m *mockTechnicianRepo) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Technician)
	return res, args.Error(1)
}

type mockConflictFinder struct{ mock.Mock }

func (m *mockConflictFinder) Conflicts(ctx context.Context, candidate domain.CalendarEvent) ([]domain.EventRef, error) {
	args := m.Called(ctx, candidate)
	res, _ := args.Get(0).([]domain.EventRef)
	return res, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendRescheduleWithGracefulDegradation(ctx context.Context, notice notificationservice.RescheduleNotice) error {
	return m.Called(ctx, notice).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type recorder struct {
	moves         []string
	notifications []string
}

func (r *recorder) RecordMove(kind, result string) { r.moves = append(r.moves, kind+":"+result) }
func (r *recorder) RecordNotification(result string) {
	r.notifications = append(r.notifications, result)
}

type logRecorder struct {
	warns  []string
	errors []string
}

func (*logRecorder) Info(string, ...interface{}) {}
func (l *logRecorder) Warn(format string, _ ...interface{}) {
	l.warns = append(l.warns, format)
}
func (l *logRecorder) Error(format string, _ ...interface{}) {
	l.errors = append(l.errors, format)
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type fixture struct {
	appts     *mockAppointmentRepo
	techs     *mockTechnicianRepo
	conflicts *mockConflictFinder
	notifier  *mockNotifier
	rec       *recorder
	logs      *logRecorder
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		appts:     &mockAppointmentRepo{},
		techs:     &mockTechnicianRepo{},
		conflicts: &mockConflictFinder{},
		notifier:  &mockNotifier{},
		rec:       &recorder{},
		logs:      &logRecorder{},
	}
	f.uc = NewUseCase(f.appts, f.techs, f.conflicts, f.notifier, inlineTx{}, f.rec, f.logs)
	return f
}

func appointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:           10,
		LocationID:   5,
		TechnicianID: 1,
		StartTime:    at(9, 0),
		EndTime:      at(10, 0),
		Status:       status,
		ClientName:   "Мария",
		ClientPhone:  ptr.Ptr("+79990000000"),
		ServiceName:  "Маникюр",
	}
}

func moveRequest(notify bool) *Request {
	return &Request{AppointmentID: 10, TechnicianID: 2, StartTime: at(11, 0), EndTime: at(12, 0), NotifyClient: notify}
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture()
	conflict := []domain.EventRef{{Kind: domain.KindBlock, ID: 20}}

	f.appts.On("GetByID", mock.Anything, int64(10)).Return(appointment(domain.AppointmentConfirmed), nil)
	f.techs.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 5, Name: "Анна", IsActive: true}, nil)
	f.conflicts.On("Conflicts", mock.Anything, mock.MatchedBy(func(c domain.CalendarEvent) bool {
		return c.Ref.ID == 10 && c.TechnicianID == 2 && c.Start.Equal(at(11, 0)) && c.End.Equal(at(12, 0))
	})).Return(conflict, nil)
	f.appts.On("Reschedule", mock.Anything, int64(10), int64(2), at(11, 0), at(12, 0)).Return(nil)
	f.notifier.On("SendRescheduleWithGracefulDegradation", mock.Anything, mock.MatchedBy(func(n notificationservice.RescheduleNotice) bool {
		return n.AppointmentID == 10 && n.Phone == "+79990000000" && n.TechnicianName == "Анна" && n.NewStart.Equal(at(11, 0))
	})).Return(nil)

	resp, err := f.uc.Execute(context.Background(), moveRequest(true))
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Appointment.TechnicianID)
	assert.Equal(t, at(11, 0), resp.Appointment.StartTime)
	assert.Equal(t, conflict, resp.Conflicts, "conflicts are reported, not rejected")
	assert.True(t, resp.ClientNotified)
	assert.Equal(t, []string{"appointment:ok"}, f.rec.moves)
	assert.Equal(t, []string{"ok"}, f.rec.notifications)

	f.appts.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestUseCase_NotificationDegraded(t *testing.T) {
	f := newFixture()

	f.appts.On("GetByID", mock.Anything, int64(10)).Return(appointment(domain.AppointmentScheduled), nil)
	f.techs.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 5, IsActive: true}, nil)
	f.conflicts.On("Conflicts", mock.Anything, mock.Anything).Return([]domain.EventRef{}, nil)
	f.appts.On("Reschedule", mock.Anything, int64(10), int64(2), at(11, 0), at(12, 0)).Return(nil)
	f.notifier.On("SendRescheduleWithGracefulDegradation", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: timeout", notificationservice.ErrServiceDegraded))

	resp, err := f.uc.Execute(context.Background(), moveRequest(true))
	require.NoError(t, err, "move stays committed when SMS fails")
	assert.False(t, resp.ClientNotified)
	assert.Equal(t, []string{"degraded"}, f.rec.notifications)
	require.Len(t, f.logs.errors, 1, "failed notification is logged as an error")
	assert.Contains(t, f.logs.errors[0], "not notified")
	assert.Empty(t, f.logs.warns)
}

func TestUseCase_NoNotification(t *testing.T) {
	t.Run("not requested", func(t *testing.T) {
		f := newFixture()
		f.appts.On("GetByID", mock.Anything, int64(10)).Return(appointment(domain.AppointmentScheduled), nil)
		f.techs.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 5, IsActive: true}, nil)
		f.conflicts.On("Conflicts", mock.Anything, mock.Anything).Return([]domain.EventRef{}, nil)
		f.appts.On("Reschedule", mock.Anything, int64(10), int64(2), at(11, 0), at(12, 0)).Return(nil)

		resp, err := f.uc.Execute(context.Background(), moveRequest(false))
		require.NoError(t, err)
		assert.False(t, resp.ClientNotified)
		f.notifier.AssertNotCalled(t, "SendRescheduleWithGracefulDegradation", mock.Anything, mock.Anything)
	})

	t.Run("no phone", func(t *testing.T) {
		f := newFixture()
		a := appointment(domain.AppointmentScheduled)
		a.ClientPhone = nil
		f.appts.On("GetByID", mock.Anything, int64(10)).Return(a, nil)
		f.techs.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 5, IsActive: true}, nil)
		f.conflicts.On("Conflicts", mock.Anything, mock.Anything).Return([]domain.EventRef{}, nil)
		f.appts.On("Reschedule", mock.Anything, int64(10), int64(2), at(11, 0), at(12, 0)).Return(nil)

		resp, err := f.uc.Execute(context.Background(), moveRequest(true))
		require.NoError(t, err)
		assert.False(t, resp.ClientNotified)
		assert.Equal(t, []string{"skipped"}, f.rec.notifications)
		f.notifier.AssertNotCalled(t, "SendRescheduleWithGracefulDegradation", mock.Anything, mock.Anything)
	})
}

func TestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		setup   func(f *fixture)
		wantErr error
		metric  string
	}{
		{
			name:    "end before start",
			req:     &Request{AppointmentID: 10, TechnicianID: 2, StartTime: at(12, 0), EndTime: at(11, 0)},
			wantErr: ErrInvalidInput,
			metric:  "appointment:rejected",
		},
		{
			name: "appointment not found",
			req:  moveRequest(false),
			setup: func(f *fixture) {
				f.appts.On("GetByID", mock.Anything, int64(10)).Return(nil, appointmentRepo.ErrAppointmentNotFound)
			},
			wantErr: ErrAppointmentNotFound,
			metric:  "appointment:rejected",
		},
		{
			name: "completed appointment",
			req:  moveRequest(false),
			setup: func(f *fixture) {
				f.appts.On("GetByID", mock.Anything, int64(10)).Return(appointment(domain.AppointmentCompleted), nil)
			},
			wantErr: ErrAppointmentNotMovable,
			metric:  "appointment:rejected",
		},
		{
			name: "technician not found",
			req:  moveRequest(false),
			setup: func(f *fixture) {
				f.appts.On("GetByID", mock.Anything, int64(10)).Return(appointment(domain.AppointmentScheduled), nil)
				f.techs.On("GetByID", mock.Anything, int64(2)).Return(nil, technicianRepo.ErrTechnicianNotFound)
			},
			wantErr: ErrTechnicianNotFound,
			metric:  "appointment:rejected",
		},
		{
			name: "technician from another location",
			req:  moveRequest(false),
			setup: func(f *fixture) {
				f.appts.On("GetByID", mock.Anything, int64(10)).Return(appointment(domain.AppointmentScheduled), nil)
				f.techs.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 6, IsActive: true}, nil)
			},
			wantErr: ErrTechnicianUnavailable,
			metric:  "appointment:rejected",
		},
		{
			name: "storage failure",
			req:  moveRequest(false),
			setup: func(f *fixture) {
				f.appts.On("GetByID", mock.Anything, int64(10)).Return(appointment(domain.AppointmentScheduled), nil)
				f.techs.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 5, IsActive: true}, nil)
				f.conflicts.On("Conflicts", mock.Anything, mock.Anything).Return([]domain.EventRef{}, nil)
				f.appts.On("Reschedule", mock.Anything, int64(10), int64(2), at(11, 0), at(12, 0)).Return(errors.New("db down"))
			},
			wantErr: ErrInternal,
			metric:  "appointment:error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			resp, err := f.uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{tt.metric}, f.rec.moves)
		})
	}
}
