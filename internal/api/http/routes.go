package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

var validate = validator.New()

// LookupTimeout bounds the upstream work done for a single request.
var LookupTimeout = 15 * time.Second

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	api := app.Group("/api")

	api.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), LookupTimeout)
		defer cancel()

		payload, err := service.Current(ctx, q.City, requestID(c))
		if err != nil {
			if errors.Is(err, weather.ErrCityNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "city not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
		}

		return c.JSON(payload)
	})

	api.Get("/lookups", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := service.History(q.City)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no lookups recorded for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read lookup log")
		}

		return c.JSON(fiber.Map{
			"city":    q.City,
			"lookups": records,
		})
	})
}

// cityQuery holds query parameters for identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	var q cityQuery

	// Query values alias the request buffer, which fasthttp reuses; the city
	// outlives the handler in the lookup log.
	q.City = utils.CopyString(c.Query("city"))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// requestID returns the ID assigned by the requestid middleware, if any.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return utils.CopyString(c.Get(fiber.HeaderXRequestID))
}
