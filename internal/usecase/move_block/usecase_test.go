package move_block

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	blockRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/block"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

type mockBlockRepo struct{ mock.Mock }

func (m *mockBlockRepo) GetByID(ctx context.Context, id int64) (*domain.TechnicianBlock, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.TechnicianBlock)
	return res, args.Error(1)
}

func (m *mockBlockRepo) Reschedule(ctx context.Context, id, technicianID int64, start, end time.Time) error {
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

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type recorder struct{ moves []string }

func (r *recorder) RecordMove(kind, result string) { r.moves = append(r.moves, kind+":"+result) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func lunch() *domain.TechnicianBlock {
	return &domain.TechnicianBlock{
		ID: 20, TechnicianID: 1, Title: "Обед", BlockType: domain.BlockBreak,
		StartTime: at(13, 0), EndTime: at(14, 0), IsActive: true,
	}
}

func TestUseCase_Execute(t *testing.T) {
	blocks := &mockBlockRepo{}
	techs := &mockTechnicianRepo{}
	conflicts := &mockConflictFinder{}
	rec := &recorder{}
	uc := NewUseCase(blocks, techs, conflicts, inlineTx{}, rec, nopLogger{})

	blocks.On("GetByID", mock.Anything, int64(20)).Return(lunch(), nil)
	techs.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 5, IsActive: true}, nil)
	techs.On("GetByID", mock.Anything, int64(1)).Return(&domain.Technician{ID: 1, LocationID: 5, IsActive: true}, nil)
	conflicts.On("Conflicts", mock.Anything, mock.MatchedBy(func(c domain.CalendarEvent) bool {
		return c.Ref == domain.EventRef{Kind: domain.KindBlock, ID: 20} && c.TechnicianID == 2
	})).Return([]domain.EventRef{{Kind: domain.KindAppointment, ID: 11}}, nil)
	blocks.On("Reschedule", mock.Anything, int64(20), int64(2), at(14, 0), at(15, 0)).Return(nil)

	resp, err := uc.Execute(context.Background(), &Request{BlockID: 20, TechnicianID: 2, StartTime: at(14, 0), EndTime: at(15, 0)})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Block.TechnicianID)
	assert.Equal(t, at(14, 0), resp.Block.StartTime)
	assert.Len(t, resp.Conflicts, 1)
	assert.Equal(t, []string{"block:ok"}, rec.moves)
	blocks.AssertExpectations(t)
}

func TestUseCase_Rejections(t *testing.T) {
	recurring := lunch()
	recurring.RecurrenceRule = ptr.Ptr("FREQ=DAILY")
	inactive := lunch()
	inactive.IsActive = false

	tests := []struct {
		name    string
		setup   func(*mockBlockRepo, *mockTechnicianRepo, *mockConflictFinder)
		wantErr error
		metric  string
	}{
		{
			name: "not found",
			setup: func(b *mockBlockRepo, _ *mockTechnicianRepo, _ *mockConflictFinder) {
				b.On("GetByID", mock.Anything, int64(20)).Return(nil, blockRepo.ErrBlockNotFound)
			},
			wantErr: ErrBlockNotFound,
			metric:  "block:rejected",
		},
		{
			name: "inactive",
			setup: func(b *mockBlockRepo, _ *mockTechnicianRepo, _ *mockConflictFinder) {
				b.On("GetByID", mock.Anything, int64(20)).Return(inactive, nil)
			},
			wantErr: ErrBlockNotFound,
			metric:  "block:rejected",
		},
		{
			name: "recurring",
			setup: func(b *mockBlockRepo, _ *mockTechnicianRepo, _ *mockConflictFinder) {
				b.On("GetByID", mock.Anything, int64(20)).Return(recurring, nil)
			},
			wantErr: ErrRecurringBlock,
			metric:  "block:rejected",
		},
		{
			name: "other location",
			setup: func(b *mockBlockRepo, tr *mockTechnicianRepo, _ *mockConflictFinder) {
				b.On("GetByID", mock.Anything, int64(20)).Return(lunch(), nil)
				tr.On("GetByID", mock.Anything, int64(2)).Return(&domain.Technician{ID: 2, LocationID: 6, IsActive: true}, nil)
				tr.On("GetByID", mock.Anything, int64(1)).Return(&domain.Technician{ID: 1, LocationID: 5, IsActive: true}, nil)
			},
			wantErr: ErrTechnicianUnavailable,
			metric:  "block:rejected",
		},
		{
			name: "conflict lookup failure",
			setup: func(b *mockBlockRepo, tr *mockTechnicianRepo, c *mockConflictFinder) {
				b.On("GetByID", mock.Anything, int64(20)).Return(lunch(), nil)
				tr.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Technician{LocationID: 5, IsActive: true}, nil)
				c.On("Conflicts", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
			},
			wantErr: ErrInternal,
			metric:  "block:error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := &mockBlockRepo{}
			techs := &mockTechnicianRepo{}
			conflicts := &mockConflictFinder{}
			rec := &recorder{}
			tt.setup(blocks, techs, conflicts)
			uc := NewUseCase(blocks, techs, conflicts, inlineTx{}, rec, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{BlockID: 20, TechnicianID: 2, StartTime: at(14, 0), EndTime: at(15, 0)})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{tt.metric}, rec.moves)
			blocks.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_InvalidInput(t *testing.T) {
	rec := &recorder{}
	uc := NewUseCase(&mockBlockRepo{}, &mockTechnicianRepo{}, &mockConflictFinder{}, inlineTx{}, rec, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BlockID: 20, TechnicianID: 2, StartTime: at(14, 0), EndTime: at(14, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, []string{"block:rejected"}, rec.moves)
}
