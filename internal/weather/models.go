package weather

import "fmt"

// UnitSystem is the measurement convention the provider reports in.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// ParseUnitSystem converts a query value into a UnitSystem.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch u := UnitSystem(s); u {
	case Metric, Imperial:
		return u, nil
	default:
		return "", fmt.Errorf("unknown unit system %q", s)
	}
}

// Toggle returns the other unit system.
func (u UnitSystem) Toggle() UnitSystem {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

func (u UnitSystem) TemperatureLabel() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

func (u UnitSystem) WindSpeedLabel() string {
	if u == Imperial {
		return "mph"
	}
	return "m/s"
}

// Observation is one current-conditions snapshot for a city.
// Temperature and WindSpeed are expressed in UnitSystem.
type Observation struct {
	CityName        string     `json:"city"`
	Temperature     float64    `json:"temperature"`
	WeatherMain     string     `json:"weatherMain"`
	Description     string     `json:"description,omitempty"`
	IconCode        string     `json:"iconCode"`
	HumidityPercent float64    `json:"humidityPercent"`
	WindSpeed       float64    `json:"windSpeed"`
	PressureHPa     float64    `json:"pressureHpa"`
	UnitSystem      UnitSystem `json:"units"`
}

// Display holds the fields the weather view renders.
type Display struct {
	CityName             string             `json:"city"`
	Temperature          float64            `json:"temperature"`
	TemperatureUnitLabel string             `json:"temperatureUnit"`
	WindSpeed            float64            `json:"windSpeed"`
	WindSpeedUnitLabel   string             `json:"windSpeedUnit"`
	WeatherMain          string             `json:"weatherMain"`
	Description          string             `json:"description,omitempty"`
	HumidityPercent      float64            `json:"humidityPercent"`
	PressureHPa          float64            `json:"pressureHpa"`
	UnitSystem           UnitSystem         `json:"units"`
	BackgroundCategory   BackgroundCategory `json:"background"`
	IconCategory         IconCategory       `json:"icon"`
}

// NewDisplay derives display fields from an observation.
func NewDisplay(obs Observation) Display {
	return Display{
		CityName:             obs.CityName,
		Temperature:          obs.Temperature,
		TemperatureUnitLabel: obs.UnitSystem.TemperatureLabel(),
		WindSpeed:            obs.WindSpeed,
		WindSpeedUnitLabel:   obs.UnitSystem.WindSpeedLabel(),
		WeatherMain:          obs.WeatherMain,
		Description:          obs.Description,
		HumidityPercent:      obs.HumidityPercent,
		PressureHPa:          obs.PressureHPa,
		UnitSystem:           obs.UnitSystem,
		BackgroundCategory:   MapBackground(obs.WeatherMain),
		IconCategory:         MapIcon(obs.IconCode),
	}
}
