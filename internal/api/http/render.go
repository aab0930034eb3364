package httpapi

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/city-weather/internal/cities"
	"github.com/i474232898/city-weather/internal/session"
	"github.com/i474232898/city-weather/internal/weather"
)

//go:embed views/*.html
var viewFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"pathEscape": url.PathEscape,
}).ParseFS(viewFS, "views/*.html"))

// cityListResponse is the city list view model as rendered to HTML or JSON.
type cityListResponse struct {
	Status    cities.Status    `json:"status"`
	Cities    []cities.Record  `json:"cities"`
	Timezones []string         `json:"timezones"`
	Search    string           `json:"search"`
	Timezone  *string          `json:"timezone"`
	Sort      cities.SortKey   `json:"sort,omitempty"`
	Direction cities.Direction `json:"direction,omitempty"`
	Notices   []session.Notice `json:"notices,omitempty"`
}

// SelectedTimezone returns the active timezone filter, or "" when unset.
func (r cityListResponse) SelectedTimezone() string {
	if r.Timezone == nil {
		return ""
	}
	return *r.Timezone
}

// Arrow returns the sort indicator for a column header.
func (r cityListResponse) Arrow(column string) string {
	if string(r.Sort) != column {
		return ""
	}
	if r.Direction == cities.Descending {
		return " ▼"
	}
	return " ▲"
}

func renderCities(c *fiber.Ctx, sess *session.Session) error {
	projection := sess.Cities.Projection()
	state := sess.Cities.State()

	resp := cityListResponse{
		Status:    projection.Status,
		Cities:    projection.Records,
		Timezones: sess.Cities.TimezoneOptions(),
		Search:    state.Search(),
		Sort:      state.SortKey(),
		Direction: state.Direction(),
		Notices:   sess.DrainNotices(),
	}
	if tz, ok := state.Timezone(); ok {
		resp.Timezone = &tz
	}
	if resp.Cities == nil {
		resp.Cities = []cities.Record{}
	}
	if resp.Timezones == nil {
		resp.Timezones = []string{}
	}

	if wantsJSON(c) {
		return c.JSON(resp)
	}
	return renderPage(c, "cities.html", resp)
}

// weatherResponse is the weather view model as rendered to HTML or JSON.
type weatherResponse struct {
	Status  weather.Status     `json:"status"`
	City    string             `json:"city"`
	Units   weather.UnitSystem `json:"units"`
	Weather *weather.Display   `json:"weather,omitempty"`
	Notices []session.Notice   `json:"notices,omitempty"`
}

func renderWeather(c *fiber.Ctx, sess *session.Session) error {
	resp := weatherResponse{
		Status: sess.Weather.Status(),
		City:   sess.Weather.City(),
		Units:  sess.Weather.Units(),
	}
	if d, ok := sess.Weather.Display(); ok {
		resp.Weather = &d
	}
	resp.Notices = sess.DrainNotices()

	if wantsJSON(c) {
		if resp.Status == weather.StatusFailed {
			c.Status(fiber.StatusBadGateway)
		}
		return c.JSON(resp)
	}
	return renderPage(c, "weather.html", resp)
}

func renderPage(c *fiber.Ctx, name string, data interface{}) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return pages.ExecuteTemplate(c, name, data)
}
