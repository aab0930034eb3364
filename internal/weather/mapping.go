package weather

// IconCategory is the animated icon shown for a weather condition.
type IconCategory string

const (
	IconClearDay        IconCategory = "CLEAR_DAY"
	IconPartlyCloudyDay IconCategory = "PARTLY_CLOUDY_DAY"
	IconCloudy          IconCategory = "CLOUDY"
	IconRain            IconCategory = "RAIN"
	IconSnow            IconCategory = "SNOW"
	IconFog             IconCategory = "FOG"
)

// BackgroundCategory selects the page background image.
type BackgroundCategory string

const (
	BackgroundClear        BackgroundCategory = "clear"
	BackgroundClouds       BackgroundCategory = "clouds"
	BackgroundRain         BackgroundCategory = "rain"
	BackgroundThunderstorm BackgroundCategory = "thunderstorm"
	BackgroundDefault      BackgroundCategory = "default"
)

// MapIcon maps an OpenWeatherMap icon code such as "10n" to an icon category.
// Only the two-digit prefix is considered; unknown prefixes are Cloudy.
func MapIcon(iconCode string) IconCategory {
	prefix := iconCode
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}

	switch prefix {
	case "01":
		return IconClearDay
	case "02":
		return IconPartlyCloudyDay
	case "03", "04":
		return IconCloudy
	case "09", "10", "11":
		return IconRain
	case "13":
		return IconSnow
	case "50":
		return IconFog
	default:
		return IconCloudy
	}
}

// MapBackground maps a weather main category to a background.
// Anything outside Clear/Clouds/Rain/Thunderstorm falls back to the default.
func MapBackground(weatherMain string) BackgroundCategory {
	switch weatherMain {
	case "Clear":
		return BackgroundClear
	case "Clouds":
		return BackgroundClouds
	case "Rain":
		return BackgroundRain
	case "Thunderstorm":
		return BackgroundThunderstorm
	default:
		return BackgroundDefault
	}
}
