package export

import (
	"fmt"
	"strings"
	"time"

	"wayplan/planner"
)

// Markdown renders a full trip report as a shareable document. Section
// order is fixed: Weather, Budget Summary, Hotel Options, Restaurant
// Suggestions, Real-Time Insights, AI Itinerary.
func Markdown(report *planner.TripReport) string {
	var b strings.Builder
	req := report.Request

	fmt.Fprintf(&b, "# 🌏 Travel Plan: %s\n\n", req.Destination)
	fmt.Fprintf(&b, "**Trip Dates:** %s to %s  \n", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Travelers:** %d  \n", req.Travelers)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	writeSection(&b, "🌤️ Weather", sourceLine(report.Weather.Source, report.Weather.Status), weatherBody(report.Weather.Payload))
	writeSection(&b, "💰 Budget Summary", "", budgetBody(report.Budget, req))
	writeSection(&b, "🏨 Hotel Options", sourceLine(report.Hotels.Source, report.Hotels.Status), hotelsBody(report.Hotels.Payload))
	writeSection(&b, "🍽️ Restaurant Suggestions", sourceLine(report.Restaurants.Source, report.Restaurants.Status), restaurantsBody(report.Restaurants.Payload))
	writeSection(&b, "🔍 Real-Time Insights", sourceLine(report.Insights.Source, report.Insights.Status), insightsBody(report.Insights.Payload))
	writeSection(&b, "📖 AI Itinerary", sourceLine(report.Itinerary.Source, report.Itinerary.Status), itineraryBody(report.Itinerary.Payload))

	b.WriteString("---\n\n*All prices and availability should be verified before booking.*\n")
	return b.String()
}

// Filename builds the export filename:
// travel_plan_<dest>_<start>_to_<end>_<timestamp>.<ext>
func Filename(report *planner.TripReport, ext string) string {
	dest := strings.ReplaceAll(strings.TrimSpace(report.Request.Destination), " ", "_")
	return fmt.Sprintf("travel_plan_%s_%s_to_%s_%s.%s",
		dest,
		report.Request.StartDate.Format("2006-01-02"),
		report.Request.EndDate.Format("2006-01-02"),
		time.Now().Format("20060102_150405"),
		ext)
}

func writeSection(b *strings.Builder, title, source, body string) {
	fmt.Fprintf(b, "---\n\n## %s\n\n", title)
	if source != "" {
		b.WriteString(source)
	}
	b.WriteString(body)
	b.WriteString("\n")
}

func sourceLine(source string, status planner.OutcomeStatus) string {
	if status == planner.StatusDegraded {
		return fmt.Sprintf("_Source: %s (fallback data — live lookup unavailable)_\n\n", source)
	}
	return fmt.Sprintf("_Source: %s_\n\n", source)
}

func weatherBody(w planner.WeatherReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current: %s\n\nForecast during trip:\n\n", w.Current)
	for _, f := range w.Forecast {
		fmt.Fprintf(&b, "- %s: %s\n", f.Date, f.Summary)
	}
	return b.String()
}

func budgetBody(v planner.BudgetVerdict, req planner.TripRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Trip Budget: %.2f %s for %d night(s)\n\n", req.Budget.Amount, v.Currency, req.Nights())
	b.WriteString("Breakdown:\n\n")
	fmt.Fprintf(&b, "- Accommodation: %.2f %s\n", v.AccommodationBudget, v.Currency)
	fmt.Fprintf(&b, "- Food: %.2f %s\n", v.FoodBudget, v.Currency)
	fmt.Fprintf(&b, "- Travel: %.2f %s\n", v.TravelBudget, v.Currency)
	fmt.Fprintf(&b, "- Leisure: %.2f %s\n\n", v.LeisureBudget, v.Currency)
	fmt.Fprintf(&b, "Per Night Budget: %.2f %s | Daily Budget: %.2f %s\n\n", v.PerNightBudget, v.Currency, v.DailyBudget, v.Currency)

	switch v.Status {
	case planner.InsufficientData:
		b.WriteString("Budget status: ℹ️ Not enough live cost data to estimate daily spend.\n")
	default:
		fmt.Fprintf(&b, "Estimated Daily Cost: %.2f %s | Estimated Trip Cost: %.2f %s\n\n",
			v.EstimatedDailyCost, v.Currency, v.EstimatedTotalCost, v.Currency)
		if v.Status == planner.WithinBudget {
			b.WriteString("Budget status: ✅ Within budget\n")
		} else {
			b.WriteString("Budget status: ⚠️ May exceed budget\n")
		}
		if len(v.MissingCategories) > 0 {
			cats := make([]string, len(v.MissingCategories))
			for i, c := range v.MissingCategories {
				cats[i] = string(c)
			}
			fmt.Fprintf(&b, "\nNo live data for: %s\n", strings.Join(cats, ", "))
		}
	}
	return b.String()
}

func hotelsBody(h planner.HotelList) string {
	var b strings.Builder
	if h.Note != "" {
		fmt.Fprintf(&b, "%s\n\n", h.Note)
	}
	for _, opt := range h.Options {
		fmt.Fprintf(&b, "- **%s**", opt.Name)
		if opt.Area != "" {
			fmt.Fprintf(&b, " — %s", opt.Area)
		}
		if opt.Rating > 0 {
			fmt.Fprintf(&b, " | ⭐ %.1f", opt.Rating)
		}
		if opt.PricePerNight > 0 {
			fmt.Fprintf(&b, " | ~%.0f %s/night", opt.PricePerNight, opt.Currency)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func restaurantsBody(r planner.RestaurantList) string {
	var b strings.Builder
	for _, opt := range r.Options {
		fmt.Fprintf(&b, "- **%s**", opt.Name)
		if opt.Address != "" {
			fmt.Fprintf(&b, " — %s", opt.Address)
		}
		if opt.Rating > 0 {
			fmt.Fprintf(&b, " | ⭐ %.1f", opt.Rating)
		}
		if opt.PriceTier != "" {
			fmt.Fprintf(&b, " | 💰 %s", opt.PriceTier)
		}
		if opt.MealCost > 0 {
			fmt.Fprintf(&b, " | ~%.0f %s/meal", opt.MealCost, opt.Currency)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func insightsBody(s planner.InsightSet) string {
	var b strings.Builder
	writeInsightGroup(&b, "📍 Local Insights", s.Local)
	writeInsightGroup(&b, "🌤️ Weather Insights", s.Weather)
	writeInsightGroup(&b, "💡 Budget Tips", s.BudgetTips)
	return b.String()
}

func writeInsightGroup(b *strings.Builder, title string, insights []planner.Insight) {
	if len(insights) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n\n", title)
	for _, i := range insights {
		fmt.Fprintf(b, "- **%s**: %s\n", i.Topic, i.Text)
	}
	b.WriteString("\n")
}

func itineraryBody(it planner.Itinerary) string {
	var b strings.Builder
	for _, day := range it.Days {
		fmt.Fprintf(&b, "### Day %d\n\n", day.Number)
		fmt.Fprintf(&b, "**🌅 Morning:** %s\n\n", day.Morning)
		fmt.Fprintf(&b, "**🍽️ Lunch:** %s\n\n", day.Lunch)
		fmt.Fprintf(&b, "**☀️ Afternoon:** %s\n\n", day.Afternoon)
		fmt.Fprintf(&b, "**🌆 Evening:** %s\n\n", day.Evening)
		fmt.Fprintf(&b, "**🍴 Dinner:** %s\n\n", day.Dinner)
		fmt.Fprintf(&b, "**🌙 Night:** %s\n\n", day.Night)
	}
	return b.String()
}
