package schema

import "time"

// DayForecast is one day of the outlook window.
type DayForecast struct {
	Date       time.Time `json:"date"`
	TempMin    float64   `json:"temp_min"`
	TempMax    float64   `json:"temp_max"`
	PrecipProb float64   `json:"precip_prob"`
	Condition  string    `json:"condition"`
}

// WeatherOutlook is the ordered per-day forecast for one destination.
// Consumers treat it as read-only once aggregated.
type WeatherOutlook struct {
	Destination string        `json:"destination"`
	Days        []DayForecast `json:"days"`
}

// TempRange returns the min and max temperature across all days.
func (w *WeatherOutlook) TempRange() (min, max float64) {
	if len(w.Days) == 0 {
		return 0, 0
	}
	min, max = w.Days[0].TempMin, w.Days[0].TempMax
	for _, d := range w.Days[1:] {
		if d.TempMin < min {
			min = d.TempMin
		}
		if d.TempMax > max {
			max = d.TempMax
		}
	}
	return min, max
}

// MaxPrecipProb returns the highest precipitation probability across days.
func (w *WeatherOutlook) MaxPrecipProb() float64 {
	var max float64
	for _, d := range w.Days {
		if d.PrecipProb > max {
			max = d.PrecipProb
		}
	}
	return max
}

// HasCondition reports whether any day carries the given condition label.
func (w *WeatherOutlook) HasCondition(label string) bool {
	for _, d := range w.Days {
		if d.Condition == label {
			return true
		}
	}
	return false
}
