package httpapi

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/smartpack/internal/forecast"
	"github.com/i474232898/smartpack/internal/gear"
	"github.com/i474232898/smartpack/internal/snapshot"
	"github.com/i474232898/smartpack/internal/store"
)

var validate = validator.New()

// Deps holds what the HTTP handlers read from.
type Deps struct {
	Cache     *store.Cache
	Locations []forecast.Location

	// Live serves ad-hoc forecast lookups. The route is not registered when nil.
	Live forecast.Fetcher

	Logger *zap.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	v1 := app.Group("/api/v1")

	v1.Get("/locations", func(c *fiber.Ctx) error {
		locations := deps.Locations
		if locations == nil {
			locations = []forecast.Location{}
		}
		return c.JSON(locations)
	})

	v1.Get("/snapshot", func(c *fiber.Ctx) error {
		snap, err := deps.Cache.Snapshot(c.UserContext())
		if err != nil {
			return snapshotError(deps.Logger, err)
		}
		return c.JSON(snap)
	})

	v1.Post("/snapshot/reload", func(c *fiber.Ctx) error {
		deps.Cache.Invalidate()
		deps.Logger.Info("snapshot cache invalidated", zap.Uint64("epoch", deps.Cache.Epoch()))
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/snapshot/:name", func(c *fiber.Ctx) error {
		entry, err := lookupEntry(c, deps)
		if err != nil {
			return err
		}
		return c.JSON(entry)
	})

	v1.Get("/snapshot/:name/days", func(c *fiber.Ctx) error {
		entry, err := lookupEntry(c, deps)
		if err != nil {
			return err
		}
		return c.JSON(forecast.Dates(entry.Forecast))
	})

	v1.Get("/snapshot/:name/days/:date", func(c *fiber.Ctx) error {
		date := c.Params("date")
		if err := validate.Var(date, "required,datetime=2006-01-02"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}

		entry, err := lookupEntry(c, deps)
		if err != nil {
			return err
		}

		summary, ok := forecast.SummarizeDay(entry.Forecast, date)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no forecast periods on "+date)
		}
		return c.JSON(summary)
	})

	if deps.Live != nil {
		v1.Get("/forecast", func(c *fiber.Ctx) error {
			q, err := parseCoordinateQuery(c)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			periods, err := deps.Live.Fetch(c.UserContext(), q.lat, q.lon)
			if err != nil {
				return liveError(deps.Logger, err)
			}

			set, err := gear.Recommend(periods)
			if err != nil {
				return liveError(deps.Logger, err)
			}

			loc := forecast.Location{Name: "custom", Latitude: q.lat, Longitude: q.lon}
			return c.JSON(snapshot.NewEntry(loc, periods, set))
		})
	}
}

func lookupEntry(c *fiber.Ctx, deps Deps) (snapshot.Entry, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return snapshot.Entry{}, fiber.NewError(fiber.StatusBadRequest, "invalid location name")
	}

	entry, err := deps.Cache.Entry(c.UserContext(), name)
	if err != nil {
		return snapshot.Entry{}, snapshotError(deps.Logger, err)
	}
	return entry, nil
}

func snapshotError(logger *zap.Logger, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	logger.Error("failed to read snapshot", zap.Error(err))
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read snapshot")
}

func liveError(logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, forecast.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, "too many live forecast requests, try again shortly")
	case errors.Is(err, gear.ErrInsufficientData):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, forecast.ErrFetchFailed), errors.Is(err, forecast.ErrMalformedResponse):
		logger.Warn("live forecast failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "could not fetch weather data: "+err.Error())
	}
	logger.Error("live forecast failed", zap.Error(err))
	return fiber.NewError(fiber.StatusInternalServerError, "failed to build forecast")
}

// coordinateQuery holds the raw query parameters of a live lookup.
type coordinateQuery struct {
	Lat string `validate:"required,latitude"`
	Lon string `validate:"required,longitude"`

	lat, lon float64
}

func parseCoordinateQuery(c *fiber.Ctx) (coordinateQuery, error) {
	q := coordinateQuery{
		Lat: c.Query("lat"),
		Lon: c.Query("lon"),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	var err error
	if q.lat, err = strconv.ParseFloat(q.Lat, 64); err != nil {
		return q, err
	}
	if q.lon, err = strconv.ParseFloat(q.Lon, 64); err != nil {
		return q, err
	}
	return q, nil
}
