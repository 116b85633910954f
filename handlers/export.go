package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wayplan/database"
	"wayplan/export"
	"wayplan/planner"

	"github.com/gin-gonic/gin"
)

func loadReport(c *gin.Context) (*database.Plan, *planner.TripReport, bool) {
	id := c.Param("id")
	plan, err := database.GetPlan(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		} else {
			log.Printf("❌ Failed to load plan %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		}
		return nil, nil, false
	}

	var report planner.TripReport
	if err := json.Unmarshal([]byte(plan.ReportJSON), &report); err != nil {
		log.Printf("❌ Corrupt report for plan %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored report is unreadable"})
		return nil, nil, false
	}
	return plan, &report, true
}

func MarkdownHandler(c *gin.Context) {
	_, report, ok := loadReport(c)
	if !ok {
		return
	}
	body := export.Markdown(report)
	c.Header("Content-Disposition", "attachment; filename="+export.Filename(report, "md"))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(body))
}

func CSVHandler(c *gin.Context) {
	_, report, ok := loadReport(c)
	if !ok {
		return
	}
	body, err := export.CSV(report)
	if err != nil {
		log.Printf("❌ CSV export failed for plan %s: %v", report.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSV"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.Filename(report, "csv"))
	c.Data(http.StatusOK, "text/csv", body)
}

func PDFHandler(c *gin.Context) {
	plan, report, ok := loadReport(c)
	if !ok {
		return
	}

	data := plan.PDFData
	if len(data) == 0 {
		var err error
		data, err = export.PDF(report)
		if err != nil {
			log.Printf("❌ PDF export failed for plan %s: %v", report.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
		if err := database.UpdatePlanPDF(plan.ID, data); err != nil {
			log.Printf("⚠️  Could not cache PDF for plan %s: %v", plan.ID, err)
		}
	}

	c.Header("Content-Disposition", "attachment; filename="+export.Filename(report, "pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}
