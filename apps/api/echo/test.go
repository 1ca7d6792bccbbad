package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core/school"
)

type testApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerTestAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := testApi{svc: svc, validate: validate}

	tg := g.Group("/tests")
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *testApi) create(ctx echo.Context) error {
	var data school.NewTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tst, err := api.svc.CreateTest(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating test")
	}
	return ctx.JSON(http.StatusCreated, tst)
}

func (api *testApi) query(ctx echo.Context) error {
	tests, err := api.svc.QueryAllTests(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tests")
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *testApi) retrieve(ctx echo.Context) error {
	tst, err := api.svc.GetTest(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting test")
	}
	return ctx.JSON(http.StatusOK, tst)
}

func (api *testApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orig, err := api.svc.GetTest(reqCtx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting test")
	}

	var data school.UpdateTest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTest")
	}
	if err = data.Validate(api.validate, orig); err != nil {
		return err
	}

	tst, err := api.svc.UpdateTest(reqCtx, orig, data)
	if err != nil {
		return errors.Wrap(err, "updating test")
	}
	return ctx.JSON(http.StatusOK, tst)
}

func (api *testApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteTest(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting test")
	}
	return ctx.NoContent(http.StatusNoContent)
}
