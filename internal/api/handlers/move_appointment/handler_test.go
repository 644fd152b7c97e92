package move_appointment

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

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	moveAppointment "github.com/m04kA/SMC-CalendarService/internal/usecase/move_appointment"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *moveAppointment.Request) (*moveAppointment.Response, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*moveAppointment.Response)
	return res, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc MoveAppointmentUseCase, id, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/move", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/move", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &moveAppointment.Request{
		AppointmentID: 10,
		TechnicianID:  2,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		NotifyClient:  true,
	}).Return(&moveAppointment.Response{
		Appointment: &domain.Appointment{
			ID: 10, TechnicianID: 2, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.AppointmentConfirmed,
		},
		Conflicts:      []domain.EventRef{{Kind: domain.KindBlock, ID: 20}},
		ClientNotified: true,
	}, nil)

	rec := serve(uc, "10", `{"technicianId":2,"start":"2025-03-10T10:00:00Z","end":"2025-03-10T11:00:00Z","notifyClient":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MoveAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.TechnicianID)
	assert.Equal(t, "2025-03-10T10:00:00Z", resp.Start)
	assert.True(t, resp.ClientNotified)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "block", resp.Conflicts[0].Kind)
	assert.Equal(t, int64(20), resp.Conflicts[0].ID)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{name: "invalid id", id: "abc", body: `{}`},
		{name: "malformed json", id: "10", body: `{`},
		{name: "unknown field", id: "10", body: `{"technicianId":2,"duration":60}`},
		{name: "invalid time", id: "10", body: `{"technicianId":2,"start":"10:00","end":"11:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&mockUseCase{}, tt.id, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{moveAppointment.ErrInvalidInput, http.StatusBadRequest},
		{moveAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{moveAppointment.ErrTechnicianNotFound, http.StatusNotFound},
		{moveAppointment.ErrAppointmentNotMovable, http.StatusConflict},
		{moveAppointment.ErrTechnicianUnavailable, http.StatusConflict},
		{fmt.Errorf("%w: db down", moveAppointment.ErrInternal), http.StatusInternalServerError},
	}

	body := `{"technicianId":2,"start":"2025-03-10T10:00:00Z","end":"2025-03-10T11:00:00Z"}`
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, "10", body)
			assert.Equal(t, tt.code, rec.Code)

			var resp struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
