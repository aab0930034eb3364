package weather

import "testing"

func TestMapIcon(t *testing.T) {
	cases := map[string]IconCategory{
		"01d": IconClearDay,
		"01n": IconClearDay,
		"02d": IconPartlyCloudyDay,
		"03n": IconCloudy,
		"04d": IconCloudy,
		"09d": IconRain,
		"10n": IconRain,
		"11d": IconRain,
		"13d": IconSnow,
		"50n": IconFog,
		"99x": IconCloudy,
		"":    IconCloudy,
		"1":   IconCloudy,
		"01":  IconClearDay,
	}

	for code, want := range cases {
		if got := MapIcon(code); got != want {
			t.Errorf("MapIcon(%q): expected %s, got %s", code, want, got)
		}
	}
}

func TestMapBackground(t *testing.T) {
	cases := map[string]BackgroundCategory{
		"Clear":        BackgroundClear,
		"Clouds":       BackgroundClouds,
		"Rain":         BackgroundRain,
		"Thunderstorm": BackgroundThunderstorm,
		"Mist":         BackgroundDefault,
		"Snow":         BackgroundDefault,
		"rain":         BackgroundDefault,
		"":             BackgroundDefault,
	}

	for main, want := range cases {
		if got := MapBackground(main); got != want {
			t.Errorf("MapBackground(%q): expected %s, got %s", main, want, got)
		}
	}
}

func TestUnitLabels(t *testing.T) {
	if Metric.TemperatureLabel() != "°C" || Metric.WindSpeedLabel() != "m/s" {
		t.Errorf("unexpected metric labels: %s %s", Metric.TemperatureLabel(), Metric.WindSpeedLabel())
	}
	if Imperial.TemperatureLabel() != "°F" || Imperial.WindSpeedLabel() != "mph" {
		t.Errorf("unexpected imperial labels: %s %s", Imperial.TemperatureLabel(), Imperial.WindSpeedLabel())
	}
	if Metric.Toggle() != Imperial || Imperial.Toggle() != Metric {
		t.Errorf("Toggle should flip between metric and imperial")
	}
}

func TestParseUnitSystem(t *testing.T) {
	if u, err := ParseUnitSystem("imperial"); err != nil || u != Imperial {
		t.Errorf("expected imperial, got %s (%v)", u, err)
	}
	if _, err := ParseUnitSystem("kelvin"); err == nil {
		t.Errorf("expected error for unknown unit system")
	}
}

func TestNewDisplay(t *testing.T) {
	d := NewDisplay(Observation{
		CityName:        "Oslo",
		Temperature:     41.2,
		WeatherMain:     "Rain",
		IconCode:        "10d",
		HumidityPercent: 81,
		WindSpeed:       9.1,
		PressureHPa:     1003,
		UnitSystem:      Imperial,
	})

	if d.TemperatureUnitLabel != "°F" || d.WindSpeedUnitLabel != "mph" {
		t.Errorf("unexpected labels: %s %s", d.TemperatureUnitLabel, d.WindSpeedUnitLabel)
	}
	if d.IconCategory != IconRain || d.BackgroundCategory != BackgroundRain {
		t.Errorf("unexpected categories: %s %s", d.IconCategory, d.BackgroundCategory)
	}
	if d.CityName != "Oslo" || d.Temperature != 41.2 || d.PressureHPa != 1003 {
		t.Errorf("unexpected display: %+v", d)
	}
}
