package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"wayplan/planner"
)

// CSV renders the itinerary portion of a report as spreadsheet rows, six
// per day (morning / lunch / afternoon / evening / dinner / night).
func CSV(report *planner.TripReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Day", "Time", "Activity", "Description"}); err != nil {
		return nil, err
	}

	for _, day := range report.Itinerary.Payload.Days {
		label := fmt.Sprintf("Day %d", day.Number)
		rows := [][]string{
			{label, "Morning", "Morning Activity", day.Morning},
			{label, "Lunch", "Lunch", day.Lunch},
			{label, "Afternoon", "Afternoon Activity", day.Afternoon},
			{label, "Evening", "Evening Activity", day.Evening},
			{label, "Dinner", "Dinner", day.Dinner},
			{label, "Night", "Night Activity", day.Night},
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
