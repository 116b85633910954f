package planner

// SplitPolicy fixes how the total budget is allocated across spending
// categories. Shares are fractions of 1 and should sum to 1.
type SplitPolicy struct {
	Accommodation float64
	Food          float64
	Travel        float64
	Leisure       float64
}

// DefaultSplit mirrors the breakdown shown to travelers: accommodation 50%,
// food 20%, travel 10%, leisure 20%.
var DefaultSplit = SplitPolicy{
	Accommodation: 0.5,
	Food:          0.2,
	Travel:        0.1,
	Leisure:       0.2,
}

type BudgetStatus string

const (
	WithinBudget     BudgetStatus = "within_budget"
	OverBudget       BudgetStatus = "over_budget"
	InsufficientData BudgetStatus = "insufficient_data"
)

// BudgetVerdict is derived once per planning run, in the currency of the
// trip request. Amounts are USD-free: signals are converted before analysis.
type BudgetVerdict struct {
	Currency string `json:"currency"`

	AccommodationBudget float64 `json:"accommodation_budget"`
	FoodBudget          float64 `json:"food_budget"`
	TravelBudget        float64 `json:"travel_budget"`
	LeisureBudget       float64 `json:"leisure_budget"`

	PerNightBudget float64 `json:"per_night_budget"`
	DailyBudget    float64 `json:"daily_budget"`

	EstimatedDailyCost float64 `json:"estimated_daily_cost"`
	EstimatedTotalCost float64 `json:"estimated_total_cost"`

	CategoryMeans     map[CostCategory]float64 `json:"category_means"`
	MissingCategories []CostCategory           `json:"missing_categories,omitempty"`

	Status BudgetStatus `json:"status"`
}

var costCategories = []CostCategory{CostAccommodation, CostFood, CostTransport}

// AnalyzeBudget combines the planned allocations with whatever cost signals
// the providers returned. Pure function: no I/O, no errors. Signals in a
// currency other than the budget's are ignored (conversion is the caller's
// job), and categories with no usable signal count as missing.
func AnalyzeBudget(budget Money, nights int, signals []CostSignal, split SplitPolicy) BudgetVerdict {
	v := BudgetVerdict{
		Currency:            budget.Currency,
		AccommodationBudget: budget.Amount * split.Accommodation,
		FoodBudget:          budget.Amount * split.Food,
		TravelBudget:        budget.Amount * split.Travel,
		LeisureBudget:       budget.Amount * split.Leisure,
		CategoryMeans:       make(map[CostCategory]float64, len(costCategories)),
	}
	v.PerNightBudget = v.AccommodationBudget / float64(nights)
	v.DailyBudget = budget.Amount / float64(nights)

	sums := make(map[CostCategory]float64)
	counts := make(map[CostCategory]int)
	for _, s := range signals {
		if s.Currency != budget.Currency || s.DailyAmount <= 0 {
			continue
		}
		sums[s.Category] += s.DailyAmount
		counts[s.Category]++
	}

	available := 0
	for _, cat := range costCategories {
		if counts[cat] == 0 {
			v.CategoryMeans[cat] = 0
			v.MissingCategories = append(v.MissingCategories, cat)
			continue
		}
		mean := sums[cat] / float64(counts[cat])
		v.CategoryMeans[cat] = mean
		v.EstimatedDailyCost += mean
		available++
	}
	v.EstimatedTotalCost = v.EstimatedDailyCost * float64(nights)

	switch {
	case available == 0:
		v.Status = InsufficientData
	case v.EstimatedDailyCost <= v.DailyBudget:
		v.Status = WithinBudget
	default:
		v.Status = OverBudget
	}
	return v
}
