package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathakanu/healthAI/internal/doctor"
)

type symptomsRequest struct {
	Symptoms string `json:"symptoms"`
}

func (h *handler) analyzeSymptoms(c *gin.Context) {
	var req symptomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
		return
	}

	analysis, err := h.Analyzer.AnalyzeSymptoms(c.Request.Context(), req.Symptoms)
	if err != nil {
		h.Metrics.Analysis("error")
		h.handleError(c, "analyze symptoms", err, nil)
		return
	}
	h.Metrics.Analysis(string(analysis.Severity))
	c.JSON(http.StatusOK, analysis)
}

func (h *handler) searchDoctors(c *gin.Context) {
	var criteria doctor.Criteria
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&criteria); err != nil {
			c.JSON(http.StatusBadRequest, doctor.Result{Doctors: []doctor.Provider{}, Error: "Invalid JSON"})
			return
		}
	}

	providers, err := h.Doctors.Search(c.Request.Context(), criteria)
	if err != nil {
		h.handleError(c, "search doctors", err, gin.H{"count": 0, "doctors": []doctor.Provider{}})
		return
	}
	c.JSON(http.StatusOK, doctor.Result{Success: true, Count: len(providers), Doctors: providers})
}

func (h *handler) doctorDetails(c *gin.Context) {
	p, err := h.Doctors.Details(c.Param("id"))
	if err != nil {
		h.handleError(c, "doctor details", err, nil)
		return
	}
	c.JSON(http.StatusOK, doctor.DetailsResult{Success: true, Doctor: &p})
}
