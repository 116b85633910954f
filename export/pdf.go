package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"wayplan/planner"
)

// PDF renders a trip report as a printable document with the same section
// order as the Markdown export.
func PDF(report *planner.TripReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	req := report.Request

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "WayPlan", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr("Travel Plan: "+req.Destination), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	text := func(s string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, tr(s), "", "L", false)
		pdf.Ln(1)
	}

	degradedNote := func(status planner.OutcomeStatus) {
		if status != planner.StatusDegraded {
			return
		}
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(130, 90, 20)
		pdf.MultiCell(170, 4, "Estimated data - live lookup unavailable.", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Destination", req.Destination)
	row("Dates", fmt.Sprintf("%s to %s (%d nights)",
		req.StartDate.Format("02 Jan 2006"), req.EndDate.Format("02 Jan 2006"), req.Nights()))
	row("Travelers", fmt.Sprintf("%d", req.Travelers))
	row("Generated", report.GeneratedAt.Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Weather ───────────────────────────────────────────────
	sectionHeader("Weather")
	degradedNote(report.Weather.Status)
	row("Current", report.Weather.Payload.Current)
	for _, f := range report.Weather.Payload.Forecast {
		row(f.Date, f.Summary)
	}
	pdf.Ln(4)

	// ── Budget Summary ────────────────────────────────────────
	v := report.Budget
	sectionHeader("Budget Summary")
	row("Total Budget", fmt.Sprintf("%.2f %s", req.Budget.Amount, v.Currency))
	row("Accommodation", fmt.Sprintf("%.2f %s", v.AccommodationBudget, v.Currency))
	row("Food", fmt.Sprintf("%.2f %s", v.FoodBudget, v.Currency))
	row("Travel", fmt.Sprintf("%.2f %s", v.TravelBudget, v.Currency))
	row("Leisure", fmt.Sprintf("%.2f %s", v.LeisureBudget, v.Currency))
	row("Per Night", fmt.Sprintf("%.2f %s", v.PerNightBudget, v.Currency))
	switch v.Status {
	case planner.InsufficientData:
		row("Status", "Not enough live cost data")
	case planner.WithinBudget:
		row("Est. Daily Cost", fmt.Sprintf("%.2f %s", v.EstimatedDailyCost, v.Currency))
		row("Status", "Within budget")
	case planner.OverBudget:
		row("Est. Daily Cost", fmt.Sprintf("%.2f %s", v.EstimatedDailyCost, v.Currency))
		row("Status", "May exceed budget")
	}
	pdf.Ln(4)

	// ── Hotel Options ─────────────────────────────────────────
	sectionHeader("Hotel Options")
	degradedNote(report.Hotels.Status)
	if report.Hotels.Payload.Note != "" {
		text(report.Hotels.Payload.Note)
	}
	for _, h := range report.Hotels.Payload.Options {
		detail := h.Area
		if h.PricePerNight > 0 {
			detail = fmt.Sprintf("%s, ~%.0f %s/night", detail, h.PricePerNight, h.Currency)
		}
		row(h.Name, detail)
	}
	pdf.Ln(4)

	// ── Restaurant Suggestions ────────────────────────────────
	sectionHeader("Restaurant Suggestions")
	degradedNote(report.Restaurants.Status)
	for _, r := range report.Restaurants.Payload.Options {
		detail := r.Address
		if r.PriceTier != "" {
			detail = fmt.Sprintf("%s (%s)", detail, r.PriceTier)
		}
		row(r.Name, detail)
	}
	pdf.Ln(4)

	// ── Insights ──────────────────────────────────────────────
	sectionHeader("Real-Time Insights")
	degradedNote(report.Insights.Status)
	groups := []struct {
		name     string
		insights []planner.Insight
	}{
		{"Local", report.Insights.Payload.Local},
		{"Weather", report.Insights.Payload.Weather},
		{"Budget tips", report.Insights.Payload.BudgetTips},
	}
	for _, g := range groups {
		for _, i := range g.insights {
			text(fmt.Sprintf("%s / %s: %s", g.name, i.Topic, i.Text))
		}
	}
	pdf.Ln(4)

	// ── Itinerary ─────────────────────────────────────────────
	sectionHeader("AI Itinerary")
	degradedNote(report.Itinerary.Status)
	for _, day := range report.Itinerary.Payload.Days {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(170, 7, fmt.Sprintf("Day %d", day.Number), "", 1, "L", false, 0, "")
		text("Morning: " + day.Morning)
		text("Lunch: " + day.Lunch)
		text("Afternoon: " + day.Afternoon)
		text("Evening: " + day.Evening)
		text("Dinner: " + day.Dinner)
		text("Night: " + day.Night)
		pdf.Ln(2)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		tr("Generated "+time.Now().Format("02 Jan 2006")+" · Prices are estimates and subject to change"),
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
