package calendarapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Client клиент HTTP API календаря для терминального интерфейса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDay загружает мастеров и события дня
func (c *Client) GetDay(ctx context.Context, q DayQuery) (*Day, error) {
	params := url.Values{}
	params.Set("date", q.Date.Format(domain.DateFormat))
	if len(q.TechnicianIDs) > 0 {
		ids := make([]string, len(q.TechnicianIDs))
		for i, id := range q.TechnicianIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		params.Set("technicianIds", strings.Join(ids, ","))
	}
	if q.StartHour != nil {
		params.Set("startHour", strconv.Itoa(*q.StartHour))
	}
	if q.EndHour != nil {
		params.Set("endHour", strconv.Itoa(*q.EndHour))
	}

	path := fmt.Sprintf("/api/v1/locations/%d/calendar?%s", q.LocationID, params.Encode())

	var resp DayResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	day, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return day, nil
}

// MoveAppointment переносит запись
func (c *Client) MoveAppointment(ctx context.Context, appointmentID, technicianID int64, start, end time.Time, notifyClient bool) error {
	c.log.Info("Moving appointment_id=%d to technician_id=%d at %s", appointmentID, technicianID, start.Format(time.RFC3339))
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%d/move", appointmentID), moveRequest{
		TechnicianID: technicianID,
		Start:        start.Format(time.RFC3339),
		End:          end.Format(time.RFC3339),
		NotifyClient: &notifyClient,
	}, nil)
}

// MoveBlock переносит блок личного времени
func (c *Client) MoveBlock(ctx context.Context, blockID, technicianID int64, start, end time.Time) error {
	c.log.Info("Moving block_id=%d to technician_id=%d at %s", blockID, technicianID, start.Format(time.RFC3339))
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/blocks/%d/move", blockID), moveRequest{
		TechnicianID: technicianID,
		Start:        start.Format(time.RFC3339),
		End:          end.Format(time.RFC3339),
	}, nil)
}

// CreateBlock создаёт блок по выделенному диапазону
func (c *Client) CreateBlock(ctx context.Context, technicianID int64, title string, start, end time.Time) error {
	c.log.Info("Creating block for technician_id=%d at %s", technicianID, start.Format(time.RFC3339))
	return c.do(ctx, http.MethodPost, "/api/v1/blocks", createBlockRequest{
		TechnicianID: technicianID,
		Title:        title,
		Start:        start.Format(time.RFC3339),
		End:          end.Format(time.RFC3339),
	}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)

		switch resp.StatusCode {
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, errResp.Message)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", ErrRejected, errResp.Message)
		default:
			c.log.Error("%s %s failed: status=%d, message=%s", method, path, resp.StatusCode, errResp.Message)
			return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
