package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/block"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) List(ctx context.Context, f appointmentRepo.Filter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, f)
	res, _ := args.Get(0).([]*domain.Appointment)
	return res, args.Error(1)
}

type mockBlockRepo struct{ mock.Mock }

func (m *mockBlockRepo) List(ctx context.Context, f blockRepo.Filter) ([]*domain.TechnicianBlock, error) {
	args := m.Called(ctx, f)
	res, _ := args.Get(0).([]*domain.TechnicianBlock)
	return res, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestService_Load(t *testing.T) {
	appts := &mockAppointmentRepo{}
	blocks := &mockBlockRepo{}
	svc := NewService(appts, blocks, time.UTC, nopLogger{})

	appts.On("List", mock.Anything, appointmentRepo.Filter{
		LocationID: ptr.Ptr(int64(5)),
		From:       day,
		To:         day.AddDate(0, 0, 1),
	}).Return([]*domain.Appointment{
		{ID: 1, TechnicianID: 1, StartTime: at(9, 0), EndTime: at(10, 0), Status: domain.AppointmentScheduled},
	}, nil)
	blocks.On("List", mock.Anything, mock.Anything).Return([]*domain.TechnicianBlock{
		{ID: 2, TechnicianID: 1, StartTime: at(12, 0), EndTime: at(13, 0), IsActive: true},
		{
			ID: 3, TechnicianID: 1, IsActive: true,
			StartTime:      time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC),
			EndTime:        time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC),
			RecurrenceRule: ptr.Ptr("FREQ=WEEKLY;BYDAY=MO"),
		},
	}, nil)

	got, err := svc.Load(context.Background(), Query{LocationID: ptr.Ptr(int64(5)), From: day, To: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, domain.EventRef{Kind: domain.KindAppointment, ID: 1}, got[0].Ref)
	assert.Equal(t, domain.EventRef{Kind: domain.KindBlock, ID: 2}, got[1].Ref)
	assert.False(t, got[1].Locked)
	assert.Equal(t, domain.OccurrenceRef(3, at(14, 0)), got[2].Ref)
	assert.Equal(t, at(14, 0), got[2].Start)
	assert.True(t, got[2].Locked, "recurring occurrences are locked")

	appts.AssertExpectations(t)
	blocks.AssertExpectations(t)
}

func TestService_LoadErrors(t *testing.T) {
	t.Run("invalid range", func(t *testing.T) {
		svc := NewService(&mockAppointmentRepo{}, &mockBlockRepo{}, nil, nopLogger{})
		_, err := svc.Load(context.Background(), Query{From: day, To: day})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("repository failure", func(t *testing.T) {
		appts := &mockAppointmentRepo{}
		appts.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
		svc := NewService(appts, &mockBlockRepo{}, nil, nopLogger{})

		_, err := svc.Load(context.Background(), Query{From: day, To: day.AddDate(0, 0, 1)})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Conflicts(t *testing.T) {
	appts := &mockAppointmentRepo{}
	blocks := &mockBlockRepo{}
	svc := NewService(appts, blocks, time.UTC, nopLogger{})

	moving := domain.FromAppointment(&domain.Appointment{
		ID: 1, TechnicianID: 2, StartTime: at(10, 0), EndTime: at(11, 0), Status: domain.AppointmentScheduled,
	})

	appts.On("List", mock.Anything, appointmentRepo.Filter{
		TechnicianIDs: []int64{2},
		From:          at(10, 0),
		To:            at(11, 0),
	}).Return([]*domain.Appointment{
		{ID: 1, TechnicianID: 2, StartTime: at(10, 0), EndTime: at(11, 0), Status: domain.AppointmentScheduled},
		{ID: 7, TechnicianID: 2, StartTime: at(10, 30), EndTime: at(11, 30), Status: domain.AppointmentScheduled},
	}, nil)
	blocks.On("List", mock.Anything, mock.Anything).Return([]*domain.TechnicianBlock{
		{ID: 4, TechnicianID: 2, StartTime: at(9, 0), EndTime: at(10, 15), IsActive: true},
	}, nil)

	refs, err := svc.Conflicts(context.Background(), moving)
	require.NoError(t, err)
	assert.Equal(t, []domain.EventRef{
		{Kind: domain.KindBlock, ID: 4},
		{Kind: domain.KindAppointment, ID: 7},
	}, refs)
}
