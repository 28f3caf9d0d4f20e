// Package api exposes reminders, symptom analysis and doctor search over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pathakanu/healthAI/internal/doctor"
	"github.com/pathakanu/healthAI/internal/metrics"
	"github.com/pathakanu/healthAI/internal/model"
	"github.com/pathakanu/healthAI/internal/notify"
	"github.com/pathakanu/healthAI/internal/openai"
	"github.com/pathakanu/healthAI/internal/reminder"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reminders is the reminder store as seen by the handlers.
type Reminders interface {
	List() []model.Reminder
	Get(id int) (model.Reminder, bool)
	Add(ctx context.Context, in reminder.Input) (model.Reminder, error)
	Edit(ctx context.Context, id int, in reminder.Input) (model.Reminder, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Analyzer assesses free-text symptoms.
type Analyzer interface {
	AnalyzeSymptoms(ctx context.Context, symptoms string) (openai.Analysis, error)
}

// Doctors searches the provider directory.
type Doctors interface {
	doctor.Searcher
	Details(id string) (doctor.Provider, error)
}

// Announcer shows in-app banners.
type Announcer interface {
	Announce(message string, sound bool)
}

// Recents lists recent in-app banners.
type Recents interface {
	Recent() []notify.BannerEvent
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Reminders Reminders
	Analyzer  Analyzer
	Doctors   Doctors
	Announcer Announcer
	Feed      Recents
	Metrics   *metrics.Collectors
	Gatherer  prometheus.Gatherer
	StaticDir string
	Logger    *log.Logger
}

type handler struct {
	Deps
}

// NewRouter wires every route onto a gin engine.
func NewRouter(d Deps) *gin.Engine {
	h := &handler{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(d.Logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	g := r.Group("/api")
	g.GET("/reminders", h.listReminders)
	g.POST("/reminders", h.addReminder)
	g.PUT("/reminders/:id", h.editReminder)
	g.DELETE("/reminders/:id", h.deleteReminder)
	g.GET("/notifications", h.notifications)
	g.POST("/analyze-symptoms", h.analyzeSymptoms)
	g.POST("/search-doctors", h.searchDoctors)
	g.GET("/doctor/:id", h.doctorDetails)

	if d.StaticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(d.StaticDir))))
	}
	return r
}

func (h *handler) notifications(c *gin.Context) {
	events := []notify.BannerEvent{}
	if h.Feed != nil {
		events = h.Feed.Recent()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": events})
}

func (h *handler) announce(message string) {
	if h.Announcer != nil {
		h.Announcer.Announce(message, false)
	}
}
