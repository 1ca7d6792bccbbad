package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core/school"
)

type courseApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := courseApi{svc: svc, validate: validate}

	cg := g.Group("/courses")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)

	// derived routes
	cg.GET("/:id/tests", api.queryTests)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data school.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAllCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetCourse(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orig, err := api.svc.GetCourse(reqCtx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}

	var data school.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(api.validate, orig); err != nil {
		return err
	}

	crs, err := api.svc.UpdateCourse(reqCtx, orig, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteCourse(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) queryTests(ctx echo.Context) error {
	tests, err := api.svc.TestsForCourse(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying course tests")
	}
	return ctx.JSON(http.StatusOK, tests)
}
