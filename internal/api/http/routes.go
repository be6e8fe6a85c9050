package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/somersetradio/weather-bulletin/internal/store"
)

var validate = validator.New()

// Runner triggers one bulletin generation. Satisfied by pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context) (store.Bulletin, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, st *store.MemoryStore, runner Runner) {
	v1 := app.Group("/api/v1")

	v1.Get("/bulletin/latest", func(c *fiber.Ctx) error {
		b, err := st.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no bulletin generated yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load bulletin")
		}
		return c.JSON(b)
	})

	v1.Get("/bulletin/audio", func(c *fiber.Ctx) error {
		b, err := st.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no bulletin generated yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load bulletin")
		}
		if err := c.SendFile(b.AudioPath); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read audio file")
		}
		c.Set(fiber.HeaderContentType, "audio/wav")
		return nil
	})

	v1.Get("/bulletin/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bulletins, err := st.Range(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no bulletins for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load bulletin history")
		}

		return c.JSON(fiber.Map{
			"from":      req.From,
			"to":        req.To,
			"bulletins": bulletins,
		})
	})

	v1.Post("/bulletin/refresh", func(c *fiber.Ctx) error {
		b, err := runner.Run(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(b)
	})
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
