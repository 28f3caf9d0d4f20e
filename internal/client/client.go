// Package client calls the healthAI HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pathakanu/healthAI/internal/doctor"
	"github.com/pathakanu/healthAI/internal/model"
	"github.com/pathakanu/healthAI/internal/notify"
	"github.com/pathakanu/healthAI/internal/openai"
	"github.com/pathakanu/healthAI/internal/reminder"
)

// ErrNetwork marks any failed remote call.
var ErrNetwork = errors.New("network error")

// NetworkError is a transport failure (Status 0) or a non-2xx answer.
type NetworkError struct {
	Status int
	Body   string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	if msg := errorMessage(e.Body); msg != "" {
		return fmt.Sprintf("HTTP error! status: %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// errorMessage pulls "error" out of a JSON error body.
func errorMessage(body string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(body), &payload) != nil {
		return ""
	}
	return payload.Error
}

// Client talks to one API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 30 * time.Second})
}

// NewWithHTTPClient returns a client using hc for transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// AnalyzeSymptoms posts symptoms for assessment.
func (c *Client) AnalyzeSymptoms(ctx context.Context, symptoms string) (openai.Analysis, error) {
	var out openai.Analysis
	err := c.do(ctx, http.MethodPost, "/api/analyze-symptoms", map[string]string{"symptoms": symptoms}, &out)
	if err != nil {
		return openai.Analysis{}, err
	}
	if out.Severity == "" {
		out.Severity = openai.SeverityMedium
	}
	return out, nil
}

// Search runs a doctor search. It satisfies doctor.Searcher.
func (c *Client) Search(ctx context.Context, criteria doctor.Criteria) ([]doctor.Provider, error) {
	var out doctor.Result
	if err := c.do(ctx, http.MethodPost, "/api/search-doctors", criteria, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("search doctors: %s", out.Error)
	}
	return out.Doctors, nil
}

// DoctorDetails fetches one provider.
func (c *Client) DoctorDetails(ctx context.Context, id string) (doctor.Provider, error) {
	var out doctor.DetailsResult
	if err := c.do(ctx, http.MethodGet, "/api/doctor/"+id, nil, &out); err != nil {
		return doctor.Provider{}, err
	}
	if !out.Success || out.Doctor == nil {
		return doctor.Provider{}, fmt.Errorf("doctor details: %s", out.Error)
	}
	return *out.Doctor, nil
}

type reminderResponse struct {
	Reminder  model.Reminder   `json:"reminder"`
	Reminders []model.Reminder `json:"reminders"`
	Deleted   bool             `json:"deleted"`
}

// ListReminders returns the server's reminders in insertion order.
func (c *Client) ListReminders(ctx context.Context) ([]model.Reminder, error) {
	var out reminderResponse
	if err := c.do(ctx, http.MethodGet, "/api/reminders", nil, &out); err != nil {
		return nil, err
	}
	return out.Reminders, nil
}

// AddReminder creates a reminder.
func (c *Client) AddReminder(ctx context.Context, in reminder.Input) (model.Reminder, error) {
	var out reminderResponse
	if err := c.do(ctx, http.MethodPost, "/api/reminders", in, &out); err != nil {
		return model.Reminder{}, err
	}
	return out.Reminder, nil
}

// EditReminder replaces reminder id; the result carries a new id.
func (c *Client) EditReminder(ctx context.Context, id int, in reminder.Input) (model.Reminder, error) {
	var out reminderResponse
	if err := c.do(ctx, http.MethodPut, "/api/reminders/"+strconv.Itoa(id), in, &out); err != nil {
		return model.Reminder{}, err
	}
	return out.Reminder, nil
}

// DeleteReminder removes reminder id and reports whether it existed.
func (c *Client) DeleteReminder(ctx context.Context, id int) (bool, error) {
	var out reminderResponse
	if err := c.do(ctx, http.MethodDelete, "/api/reminders/"+strconv.Itoa(id), nil, &out); err != nil {
		return false, err
	}
	return out.Deleted, nil
}

// Notifications returns recent in-app banners.
func (c *Client) Notifications(ctx context.Context) ([]notify.BannerEvent, error) {
	var out struct {
		Notifications []notify.BannerEvent `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

var _ doctor.Searcher = (*Client)(nil)
