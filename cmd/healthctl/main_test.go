package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
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

type cannedAnalyzer struct{}

func (cannedAnalyzer) AnalyzeSymptoms(context.Context, string) (openai.Analysis, error) {
	return openai.Analysis{
		Severity:        openai.SeverityHigh,
		Analysis:        "Chest pain with shortness of breath needs urgent care.",
		Recommendations: []string{"Call emergency services"},
		IsEmergency:     true,
	}, nil
}

func startServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	color.NoColor = true

	l := logger.Discard()
	feed := notify.NewFeed(0)
	dispatcher := notify.NewDispatcher(l)
	dispatcher.AddBanner(feed)
	srv := httptest.NewServer(api.NewRouter(api.Deps{
		Reminders: reminder.NewStore(kvstore.NewMemoryStore(), l),
		Analyzer:  cannedAnalyzer{},
		Doctors:   doctor.NewDirectory(time.Hour, nil, l),
		Announcer: dispatcher,
		Feed:      feed,
		Logger:    l,
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", server, "--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRemindersCommands(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "reminders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No reminders set")

	out, err = run(t, server, "reminders", "add", "Aspirin", "1 tablet", "21:15", "--frequency", "twice")
	require.NoError(t, err)
	assert.Contains(t, out, "Reminder added for Aspirin at 9:15 PM")
	assert.Contains(t, out, "Twice daily")

	out, err = run(t, server, "reminders", "edit", "0", "Aspirin", "2 tablets", "21:30")
	require.NoError(t, err)
	assert.Contains(t, out, "#1")

	out, err = run(t, server, "r", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2 tablets")
	assert.Contains(t, out, "9:30 PM")

	out, err = run(t, server, "reminders", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Reminder deleted successfully!")

	out, err = run(t, server, "reminders", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No reminder with id 1")

	out, err = run(t, server, "notifications")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Reminder"))
}

func TestRemindersAddRejected(t *testing.T) {
	server := startServer(t)

	_, err := run(t, server, "reminders", "add", "Aspirin", "1 tablet", "9pm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error! status: 400")

	_, err = run(t, server, "reminders", "delete", "abc")
	require.Error(t, err)
}

func TestSymptomsCommand(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "symptoms", "chest", "pain")
	require.NoError(t, err)
	assert.Contains(t, out, "EMERGENCY")
	assert.Contains(t, out, "Severity: HIGH")
	assert.Contains(t, out, "• Call emergency services")
}

func TestDoctorsCommands(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "doctors", "search", "--city", "mumbai", "--max-distance", "50", "--specialty", "Dermatology")
	require.NoError(t, err)
	assert.Contains(t, out, "Mumbai, Maharashtra, India")
	assert.Contains(t, out, "Found 25 doctors")
	assert.Contains(t, out, "Dermatology")

	providers, err := doctor.NewDirectory(time.Hour, nil, logger.Discard()).Search(context.Background(), doctor.Criteria{
		Latitude:    doctor.Float(19.0760),
		Longitude:   doctor.Float(72.8777),
		Specialty:   "Dermatology",
		MaxDistance: doctor.Float(50),
		SearchCity:  "Mumbai, Maharashtra, India",
	})
	require.NoError(t, err)

	out, err = run(t, server, "doctors", "show", providers[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, providers[0].Name)
	assert.Contains(t, out, "https://www.google.com/maps/dir/")

	_, err = run(t, server, "doctors", "search", "--city", "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
