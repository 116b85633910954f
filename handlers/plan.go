package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"wayplan/database"
	"wayplan/planner"

	"github.com/gin-gonic/gin"
)

// Planner is the aggregator shared by the plan handlers, wired in main.
var Planner *planner.Aggregator

type PlanRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	Travelers   int      `json:"travelers"`
	Interests   []string `json:"interests"`
	Budget      float64  `json:"budget" binding:"required,gt=0"`
	Currency    string   `json:"currency"`
	Style       string   `json:"style"`
	Pace        string   `json:"pace"`
}

func PlanHandler(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format. Use YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format. Use YYYY-MM-DD"})
		return
	}

	if req.Travelers <= 0 {
		req.Travelers = 1
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	tripReq := planner.TripRequest{
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Travelers:   req.Travelers,
		Interests:   req.Interests,
		Budget:      planner.Money{Amount: req.Budget, Currency: req.Currency},
		Style:       planner.PlanningStyle(req.Style),
		Pace:        planner.TripPace(req.Pace),
	}
	if err := tripReq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := Planner.Plan(c.Request.Context(), tripReq)
	if err != nil {
		// Validation passed, so only caller cancellation lands here.
		log.Printf("⚠️  Planning aborted: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Planning was cancelled"})
		return
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		log.Printf("❌ Failed to serialize report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize report"})
		return
	}

	if err := database.SavePlan(&database.Plan{
		ID:          report.ID,
		Destination: tripReq.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Travelers:   tripReq.Travelers,
		Budget:      tripReq.Budget.Amount,
		Currency:    tripReq.Budget.Currency,
		ReportJSON:  string(reportJSON),
	}); err != nil {
		log.Printf("❌ Failed to save plan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan"})
		return
	}

	log.Printf("✅ Plan %s generated for %s (%d nights)", report.ID, tripReq.Destination, tripReq.Nights())
	c.JSON(http.StatusOK, report)
}

func HealthHandler(c *gin.Context) {
	db := database.DB
	dbStatus := "ok"
	if db == nil {
		dbStatus = "not initialized"
	} else if err := db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "WayPlan API",
		"database": dbStatus,
	})
}
