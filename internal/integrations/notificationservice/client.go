package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Client клиент для работы с NotificationService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendReschedule отправляет клиенту SMS о переносе записи
func (c *Client) SendReschedule(ctx context.Context, notice RescheduleNotice) (*SMSResponse, error) {
	payload := SMSRequest{
		Phone:    notice.Phone,
		Template: TemplateAppointmentRescheduled,
		Params: map[string]string{
			"appointment_id":  strconv.FormatInt(notice.AppointmentID, 10),
			"client_name":     notice.ClientName,
			"service_name":    notice.ServiceName,
			"technician_name": notice.TechnicianName,
			"date":            notice.NewStart.Format("02.01.2006"),
			"time":            notice.NewStart.Format("15:04"),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/sms", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &out, nil
}

// SendRescheduleWithGracefulDegradation отправляет SMS о переносе с graceful degradation.
// Отказ по данным (ErrInvalidRequest) пробрасывается как есть, остальные ошибки
// (недоступность, timeout) превращаются в ErrServiceDegraded
func (c *Client) SendRescheduleWithGracefulDegradation(ctx context.Context, notice RescheduleNotice) error {
	c.log.Info("Sending reschedule SMS for appointment_id=%d", notice.AppointmentID)

	resp, err := c.SendReschedule(ctx, notice)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			c.log.Warn("NotificationService rejected SMS for appointment_id=%d: %v", notice.AppointmentID, err)
			return err
		}

		c.log.Error("NotificationService unavailable, applying graceful degradation for appointment_id=%d: %v", notice.AppointmentID, err)
		return fmt.Errorf("%w: appointment_id=%d, error=%v", ErrServiceDegraded, notice.AppointmentID, err)
	}

	c.log.Info("Reschedule SMS queued for appointment_id=%d, message_id=%s", notice.AppointmentID, resp.MessageID)
	return nil
}
