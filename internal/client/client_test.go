package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pathakanu/healthAI/internal/api"
	"github.com/pathakanu/healthAI/internal/doctor"
	"github.com/pathakanu/healthAI/internal/kvstore"
	"github.com/pathakanu/healthAI/internal/logger"
	"github.com/pathakanu/healthAI/internal/notify"
	"github.com/pathakanu/healthAI/internal/openai"
	"github.com/pathakanu/healthAI/internal/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct{}

func (fakeAnalyzer) AnalyzeSymptoms(_ context.Context, symptoms string) (openai.Analysis, error) {
	if symptoms == "" {
		return openai.Analysis{}, openai.ErrEmptySymptoms
	}
	return openai.Analysis{Severity: openai.SeverityHigh, Analysis: "See a doctor.", IsEmergency: true, Recommendations: []string{"Call emergency services"}}, nil
}

func newServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := logger.Discard()
	feed := notify.NewFeed(0)
	dispatcher := notify.NewDispatcher(l)
	dispatcher.AddBanner(feed)

	router := api.NewRouter(api.Deps{
		Reminders: reminder.NewStore(kvstore.NewMemoryStore(), l),
		Analyzer:  fakeAnalyzer{},
		Doctors:   doctor.NewDirectory(time.Hour, nil, l),
		Announcer: dispatcher,
		Feed:      feed,
		Logger:    l,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestReminderCalls(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	r, err := c.AddReminder(ctx, reminder.Input{MedicineName: "Metformin", Dosage: "500mg", Time: "08:00"})
	require.NoError(t, err)
	assert.Equal(t, 0, r.ID)

	edited, err := c.EditReminder(ctx, r.ID, reminder.Input{MedicineName: "Metformin", Dosage: "1000mg", Time: "08:30"})
	require.NoError(t, err)
	assert.Equal(t, 1, edited.ID)

	list, err := c.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1000mg", list[0].Dosage)

	deleted, err := c.DeleteReminder(ctx, edited.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	events, err := c.Notifications(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestNon2xxIsNetworkError(t *testing.T) {
	c := newServer(t)

	_, err := c.AddReminder(context.Background(), reminder.Input{MedicineName: "Metformin"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusBadRequest, netErr.Status)
	assert.Contains(t, netErr.Body, "dosage")
	assert.Contains(t, err.Error(), "HTTP error! status: 400")

	_, err = c.DoctorDetails(context.Background(), "nope")
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusNotFound, netErr.Status)
	assert.Equal(t, "HTTP error! status: 404: Doctor not found", err.Error())
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListReminders(context.Background())
	require.Error(t, err)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, 0, netErr.Status)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestAnalyzeSymptoms(t *testing.T) {
	c := newServer(t)

	got, err := c.AnalyzeSymptoms(context.Background(), "chest pain")
	require.NoError(t, err)
	assert.Equal(t, openai.SeverityHigh, got.Severity)
	assert.True(t, got.IsEmergency)

	_, err = c.AnalyzeSymptoms(context.Background(), "")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestAnalyzeSymptomsDefaultsSeverity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"analysis":"ok","recommendations":[],"isEmergency":false}`))
	}))
	t.Cleanup(srv.Close)

	got, err := New(srv.URL).AnalyzeSymptoms(context.Background(), "cough")
	require.NoError(t, err)
	assert.Equal(t, openai.SeverityMedium, got.Severity)
}

func TestDoctorCalls(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	providers, err := c.Search(ctx, doctor.Criteria{Specialty: "Neurology", MaxDistance: doctor.Float(50)})
	require.NoError(t, err)
	require.NotEmpty(t, providers)

	p, err := c.DoctorDetails(ctx, providers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, providers[0].Phone, p.Phone)

	s := doctor.NewSession(c)
	got, err := s.SearchByCity(ctx, "pune", doctor.Criteria{MaxDistance: doctor.Float(50)})
	require.NoError(t, err)
	assert.Equal(t, got, s.Results())
}
