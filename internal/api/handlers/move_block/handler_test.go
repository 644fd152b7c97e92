package move_block

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	moveBlock "github.com/m04kA/SMC-CalendarService/internal/usecase/move_block"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *moveBlock.Request) (*moveBlock.Response, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*moveBlock.Response)
	return res, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"technicianId":2,"start":"2025-03-10T13:00:00Z","end":"2025-03-10T14:00:00Z"}`

func serve(uc MoveBlockUseCase, id, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/blocks/{blockId}/move", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/blocks/"+id+"/move", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	start := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &moveBlock.Request{
		BlockID:      20,
		TechnicianID: 2,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
	}).Return(&moveBlock.Response{
		Block: &domain.TechnicianBlock{
			ID: 20, TechnicianID: 2, Title: "Обед", BlockType: domain.BlockBreak,
			StartTime: start, EndTime: start.Add(time.Hour), IsActive: true,
		},
		Conflicts: []domain.EventRef{{Kind: domain.KindAppointment, ID: 10}},
	}, nil)

	rec := serve(uc, "20", validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.BlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(20), resp.ID)
	assert.Equal(t, int64(2), resp.TechnicianID)
	assert.Equal(t, "break", resp.BlockType)
	assert.Equal(t, "2025-03-10T13:00:00Z", resp.Start)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "appointment", resp.Conflicts[0].Kind)
	uc.AssertExpectations(t)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{"bad id", "abc", validBody},
		{"bad json", "20", `{`},
		{"unknown field", "20", `{"technicianId":2,"foo":1}`},
		{"bad time", "20", `{"technicianId":2,"start":"13:00","end":"14:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := serve(uc, tt.id, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{moveBlock.ErrInvalidInput, http.StatusBadRequest},
		{moveBlock.ErrBlockNotFound, http.StatusNotFound},
		{moveBlock.ErrTechnicianNotFound, http.StatusNotFound},
		{moveBlock.ErrRecurringBlock, http.StatusConflict},
		{moveBlock.ErrTechnicianUnavailable, http.StatusConflict},
		{moveBlock.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))

			rec := serve(uc, "20", validBody)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
