package api

import "github.com/google/uuid"

// =============================================================================
// WEATHER
// =============================================================================

// Observation is the current weather at the looked-up postcode.
type Observation struct {
	Temperature float64 `json:"temperature"` // °C
	Condition   string  `json:"condition"`   // e.g. "mainly rain"
}

// ForecastDay is one day of the backend's forecast.
type ForecastDay struct {
	Date    string  `json:"date"`     // YYYY-MM-DD
	AvgTemp float64 `json:"avg_temp"` // °C
	Mainly  string  `json:"mainly"`   // majority condition label
}

// WeatherResult is the payload of POST /api/weather.
// Forecast is chronological and normally five days long.
type WeatherResult struct {
	Postcode string        `json:"postcode"`
	Current  Observation   `json:"current"`
	Forecast []ForecastDay `json:"forecast"`
}

type weatherRequest struct {
	Postcode string `json:"postcode"`
}

type weatherResponse struct {
	WeatherResult
	Error string `json:"error,omitempty"`
}

func (r *weatherResponse) domainError() string { return r.Error }

// =============================================================================
// NUTRITION
// =============================================================================

// NutritionItem is the estimate for one ingredient line.
type NutritionItem struct {
	Ingredient    string `json:"ingredient"`
	AssumedAmount string `json:"assumed_amount"`
	CaloriesKcal  int    `json:"calories_kcal"`
	Notes         string `json:"notes"`
}

// NutritionResult is the payload of POST /api/nutrition. TotalCaloriesKcal is
// expected to equal the sum of item calories but is not re-checked here.
type NutritionResult struct {
	Items             []NutritionItem `json:"items"`
	TotalCaloriesKcal int             `json:"total_calories_kcal"`
}

type nutritionRequest struct {
	Ingredients []string `json:"ingredients"`
}

type nutritionResponse struct {
	NutritionResult
	Error string `json:"error,omitempty"`
}

func (r *nutritionResponse) domainError() string { return r.Error }

// =============================================================================
// MENU
// =============================================================================

// NutritionFacts are per-item values; everything except energy is grams.
type NutritionFacts struct {
	EnergyKJ      float64 `json:"energy_kj"`
	EnergyKcal    float64 `json:"energy_kcal"`
	Fat           float64 `json:"fat"`
	Saturates     float64 `json:"saturates"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugars        float64 `json:"sugars"`
	Fibre         float64 `json:"fibre"`
	Protein       float64 `json:"protein"`
	Salt          float64 `json:"salt"`
}

// MenuItem is one product from GET /api/mcdonalds/menu.
type MenuItem struct {
	// Key is assigned by the client when the menu is decoded and stays the
	// same for the same product across reloads.
	Key uuid.UUID `json:"-"`

	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       string         `json:"price"`     // empty means "see menu"
	ImageURL    string         `json:"image_url"` // may be empty
	Nutrition   NutritionFacts `json:"nutrition"`
	Ingredients string         `json:"ingredients"`
	Allergens   string         `json:"allergens"`
}

// DisplayPrice returns the price or the "see menu" placeholder.
func (m MenuItem) DisplayPrice() string {
	if m.Price == "" {
		return "see menu"
	}
	return m.Price
}

type menuResponse struct {
	Products []MenuItem `json:"products"`
	Total    int        `json:"total"`
	Error    string     `json:"error,omitempty"`
}

func (r *menuResponse) domainError() string { return r.Error }

type healthResponse struct {
	OK bool `json:"ok"`
}

func (r *healthResponse) domainError() string { return "" }
