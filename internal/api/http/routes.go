package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/city-weather/internal/cities"
	"github.com/i474232898/city-weather/internal/session"
	"github.com/i474232898/city-weather/internal/weather"
)

var validate = validator.New()

// Options tunes the routes.
type Options struct {
	// SessionMaxAge is the session cookie lifetime (0 = browser session).
	SessionMaxAge time.Duration
	// FetchTimeout bounds a single provider fetch issued by a handler.
	FetchTimeout time.Duration
}

type handlers struct {
	fetchTimeout time.Duration
}

// RegisterRoutes wires the city list and weather views into the Fiber app.
func RegisterRoutes(app *fiber.App, store SessionStore, opts Options) {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}
	h := &handlers{fetchTimeout: opts.FetchTimeout}

	withSession := sessionMiddleware(store, opts.SessionMaxAge)

	app.Get("/", withSession, h.listCities)
	app.Post("/cities/search", withSession, h.searchCities)
	app.Post("/cities/timezone", withSession, h.filterTimezone)
	app.Post("/cities/sort/:column", withSession, h.sortCities)

	app.Get("/weather/:city", withSession, h.showWeather)
	app.Post("/weather/:city/unit", withSession, h.toggleUnit)
}

func (h *handlers) listCities(c *fiber.Ctx) error {
	sess := currentSession(c)

	if !sess.Cities.Loaded() {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.fetchTimeout)
		defer cancel()

		err := sess.Cities.Refresh(ctx)
		switch {
		case err == nil:
			sess.Notify(session.LevelSuccess, "Cities data loaded successfully.")
		case errors.Is(err, cities.ErrSuperseded):
		default:
			log.Printf("ERROR: session %s: cities fetch failed: %v", sess.ID, err)
			sess.Notify(session.LevelError, "Failed to fetch cities data. Please try again later.")
		}
	}

	return renderCities(c, sess)
}

// searchForm holds the search box input.
type searchForm struct {
	Term string `validate:"max=200"`
}

func (h *handlers) searchCities(c *fiber.Ctx) error {
	form := searchForm{Term: utils.CopyString(c.FormValue("q"))}
	if err := validate.Struct(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	sess.Cities.SetSearchTerm(form.Term)
	return afterCityAction(c, sess)
}

// timezoneForm holds the timezone selector; an empty value clears the filter.
type timezoneForm struct {
	Timezone string `validate:"max=100"`
}

func (h *handlers) filterTimezone(c *fiber.Ctx) error {
	form := timezoneForm{Timezone: utils.CopyString(c.FormValue("timezone"))}
	if err := validate.Struct(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	if form.Timezone == "" {
		sess.Cities.ClearTimezoneFilter()
	} else {
		sess.Cities.SetTimezoneFilter(form.Timezone)
	}
	return afterCityAction(c, sess)
}

func (h *handlers) sortCities(c *fiber.Ctx) error {
	key, err := cities.ParseSortKey(c.Params("column"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	sess.Cities.SetSort(key)
	return afterCityAction(c, sess)
}

// afterCityAction answers JSON clients with the new list and sends browsers
// back to the list view.
func afterCityAction(c *fiber.Ctx, sess *session.Session) error {
	if wantsJSON(c) {
		return renderCities(c, sess)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// cityParam holds the city path segment. The name is the only lookup key, so
// cities sharing a name resolve to whichever one the weather provider picks.
type cityParam struct {
	City string `validate:"required,max=200"`
}

func parseCityParam(c *fiber.Ctx) (cityParam, error) {
	// PathUnescape hands back its input when nothing is escaped, and Params
	// points into a request buffer that fasthttp reuses.
	raw := utils.CopyString(c.Params("city"))
	name, err := url.PathUnescape(raw)
	if err != nil {
		return cityParam{}, fmt.Errorf("invalid city name %q", raw)
	}

	p := cityParam{City: name}
	if err := validate.Struct(p); err != nil {
		return p, err
	}
	return p, nil
}

func (h *handlers) showWeather(c *fiber.Ctx) error {
	p, err := parseCityParam(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	ctx, cancel := context.WithTimeout(c.UserContext(), h.fetchTimeout)
	defer cancel()

	// ?units= picks the unit system up front, e.g. for a bookmarked imperial view.
	if raw := c.Query("units"); raw != "" {
		units, err := weather.ParseUnitSystem(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		notifyWeatherResult(sess, p.City, sess.Weather.Select(ctx, p.City, units))
		return renderWeather(c, sess)
	}

	notifyWeatherResult(sess, p.City, sess.Weather.SetCity(ctx, p.City))
	return renderWeather(c, sess)
}

func (h *handlers) toggleUnit(c *fiber.Ctx) error {
	p, err := parseCityParam(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	ctx, cancel := context.WithTimeout(c.UserContext(), h.fetchTimeout)
	defer cancel()

	// The page may belong to a different city than the one last viewed in this session.
	if sess.Weather.City() != p.City {
		units := sess.Weather.Units().Toggle()
		notifyWeatherResult(sess, p.City, sess.Weather.Select(ctx, p.City, units))
		return renderWeather(c, sess)
	}

	notifyWeatherResult(sess, p.City, sess.Weather.ToggleUnit(ctx))
	return renderWeather(c, sess)
}

func notifyWeatherResult(sess *session.Session, city string, err error) {
	switch {
	case err == nil:
		sess.Notify(session.LevelSuccess, fmt.Sprintf("Weather data for %s loaded successfully.", city))
	case errors.Is(err, weather.ErrSuperseded):
	default:
		log.Printf("ERROR: session %s: weather fetch for %s failed: %v", sess.ID, city, err)
		sess.Notify(session.LevelError, "Failed to fetch weather data. Please try again later.")
	}
}
