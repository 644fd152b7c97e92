package create_block

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	technicianRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/technician"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

type mockBlockRepo struct{ mock.Mock }

func (m *mockBlockRepo) Create(ctx context.Context, b *domain.TechnicianBlock) (*domain.TechnicianBlock, error) {
	args := m.Called(ctx, b)
	res, _ := args.Get(0).(*domain.TechnicianBlock)
	return res, args.Error(1)
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestUseCase_Execute(t *testing.T) {
	blocks := &mockBlockRepo{}
	techs := &mockTechnicianRepo{}
	conflicts := &mockConflictFinder{}
	uc := NewUseCase(blocks, techs, conflicts, nopLogger{})

	techs.On("GetByID", mock.Anything, int64(1)).Return(&domain.Technician{ID: 1, IsActive: true}, nil)
	conflicts.On("Conflicts", mock.Anything, mock.Anything).Return([]domain.EventRef{}, nil)
	blocks.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.TechnicianBlock) bool {
		return b.Title == "Обучение" && b.BlockType == domain.BlockTraining && b.IsActive &&
			b.RecurrenceRule != nil && *b.RecurrenceRule == "FREQ=WEEKLY;BYDAY=TU"
	})).Return(&domain.TechnicianBlock{ID: 30, TechnicianID: 1, Title: "Обучение"}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		TechnicianID:   1,
		Title:          "  Обучение ",
		BlockType:      "training",
		RecurrenceRule: ptr.Ptr(" FREQ=WEEKLY;BYDAY=TU "),
		StartTime:      at(18, 0),
		EndTime:        at(19, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30), resp.Block.ID)
	assert.Empty(t, resp.Conflicts)
	blocks.AssertExpectations(t)
}

func TestUseCase_DefaultBlockType(t *testing.T) {
	blocks := &mockBlockRepo{}
	techs := &mockTechnicianRepo{}
	conflicts := &mockConflictFinder{}
	uc := NewUseCase(blocks, techs, conflicts, nopLogger{})

	techs.On("GetByID", mock.Anything, int64(1)).Return(&domain.Technician{ID: 1, IsActive: true}, nil)
	conflicts.On("Conflicts", mock.Anything, mock.Anything).Return([]domain.EventRef{{Kind: domain.KindAppointment, ID: 3}}, nil)
	blocks.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.TechnicianBlock) bool {
		return b.BlockType == domain.BlockPersonal && b.RecurrenceRule == nil
	})).Return(&domain.TechnicianBlock{ID: 31}, nil)

	resp, err := uc.Execute(context.Background(), &Request{TechnicianID: 1, Title: "Врач", StartTime: at(9, 0), EndTime: at(10, 0)})
	require.NoError(t, err)
	assert.Len(t, resp.Conflicts, 1)
}

func TestUseCase_Errors(t *testing.T) {
	valid := func() *Request {
		return &Request{TechnicianID: 1, Title: "Обед", StartTime: at(13, 0), EndTime: at(14, 0)}
	}

	tests := []struct {
		name    string
		mutate  func(*Request)
		setup   func(*mockBlockRepo, *mockTechnicianRepo, *mockConflictFinder)
		wantErr error
	}{
		{name: "empty title", mutate: func(r *Request) { r.Title = "   " }, wantErr: ErrInvalidInput},
		{name: "empty range", mutate: func(r *Request) { r.EndTime = r.StartTime }, wantErr: ErrInvalidInput},
		{name: "unknown type", mutate: func(r *Request) { r.BlockType = "party" }, wantErr: ErrInvalidInput},
		{name: "bad rule", mutate: func(r *Request) { r.RecurrenceRule = ptr.Ptr("FREQ=NEVER") }, wantErr: ErrInvalidRecurrence},
		{
			name: "technician not found",
			setup: func(_ *mockBlockRepo, tr *mockTechnicianRepo, _ *mockConflictFinder) {
				tr.On("GetByID", mock.Anything, int64(1)).Return(nil, technicianRepo.ErrTechnicianNotFound)
			},
			wantErr: ErrTechnicianNotFound,
		},
		{
			name: "technician inactive",
			setup: func(_ *mockBlockRepo, tr *mockTechnicianRepo, _ *mockConflictFinder) {
				tr.On("GetByID", mock.Anything, int64(1)).Return(&domain.Technician{ID: 1}, nil)
			},
			wantErr: ErrTechnicianInactive,
		},
		{
			name: "storage failure",
			setup: func(b *mockBlockRepo, tr *mockTechnicianRepo, c *mockConflictFinder) {
				tr.On("GetByID", mock.Anything, int64(1)).Return(&domain.Technician{ID: 1, IsActive: true}, nil)
				c.On("Conflicts", mock.Anything, mock.Anything).Return([]domain.EventRef{}, nil)
				b.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := &mockBlockRepo{}
			techs := &mockTechnicianRepo{}
			conflicts := &mockConflictFinder{}
			if tt.setup != nil {
				tt.setup(blocks, techs, conflicts)
			}
			req := valid()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			_, err := NewUseCase(blocks, techs, conflicts, nopLogger{}).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
