package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/MikaLeppala/uk-rail-departures/internal/grid"
	"github.com/MikaLeppala/uk-rail-departures/internal/rail"
	"github.com/MikaLeppala/uk-rail-departures/internal/stations"
	"github.com/MikaLeppala/uk-rail-departures/internal/weather"
)

var validate = validator.New()

// Deps are the components the API serves.
type Deps struct {
	Grid     *grid.Manager
	Board    *rail.Board
	Weather  *weather.Poller
	Stations *stations.Directory
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/board", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"grid":  deps.Grid.Snapshot(),
			"cells": deps.Board.Snapshots(),
		})
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		return c.JSON(deps.Weather.Snapshot())
	})

	v1.Put("/grid/cell", func(c *fiber.Ctx) error {
		var req setCellRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		deps.Grid.SetCode(req.Row, req.Col, req.Code)
		return c.JSON(deps.Grid.Snapshot())
	})

	v1.Delete("/grid/cell", func(c *fiber.Ctx) error {
		row, err := queryInt(c, "row")
		if err != nil {
			return err
		}
		col, err := queryInt(c, "col")
		if err != nil {
			return err
		}
		deps.Grid.RemoveCell(row, col)
		return c.JSON(deps.Grid.Snapshot())
	})

	v1.Post("/grid/rows", func(c *fiber.Ctx) error {
		deps.Grid.AddRow()
		return c.JSON(deps.Grid.Snapshot())
	})

	v1.Post("/grid/columns", func(c *fiber.Ctx) error {
		deps.Grid.AddColumn()
		return c.JSON(deps.Grid.Snapshot())
	})

	v1.Post("/grid/swap", func(c *fiber.Ctx) error {
		var req swapRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		deps.Grid.SwapCells(
			grid.Position{Row: req.From.Row, Col: req.From.Col},
			grid.Position{Row: req.To.Row, Col: req.To.Col},
		)
		return c.JSON(deps.Grid.Snapshot())
	})

	v1.Get("/theme", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"primaryColor": deps.Grid.Theme()})
	})

	v1.Put("/theme", func(c *fiber.Ctx) error {
		var req themeRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		deps.Grid.SetTheme(req.PrimaryColor)
		return c.JSON(fiber.Map{"primaryColor": deps.Grid.Theme()})
	})

	v1.Get("/stations/nearest", func(c *fiber.Ctx) error {
		lat, err := queryFloat(c, "lat")
		if err != nil {
			return err
		}
		lon, err := queryFloat(c, "lon")
		if err != nil {
			return err
		}
		n := c.QueryInt("n", 2)
		if n < 1 || n > 10 {
			return fiber.NewError(fiber.StatusBadRequest, "n must be between 1 and 10")
		}
		return c.JSON(deps.Stations.Nearest(lat, lon, n))
	})
}

type setCellRequest struct {
	Row  int    `json:"row" validate:"min=0"`
	Col  int    `json:"col" validate:"min=0"`
	Code string `json:"code" validate:"required,max=3"`
}

type cellRef struct {
	Row int `json:"row" validate:"min=0"`
	Col int `json:"col" validate:"min=0"`
}

type swapRequest struct {
	From cellRef `json:"from"`
	To   cellRef `json:"to"`
}

type themeRequest struct {
	PrimaryColor string `json:"primaryColor" validate:"required,max=32"`
}

func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" query parameter is required")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return n, nil
}

func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" query parameter is required")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return f, nil
}
