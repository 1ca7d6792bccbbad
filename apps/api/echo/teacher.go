package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core/school"
)

type teacherApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerTeacherAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := teacherApi{svc: svc, validate: validate}

	tg := g.Group("/teachers")
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *teacherApi) create(ctx echo.Context) error {
	var data school.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tch, err := api.svc.CreateTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.QueryAllTeachers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tch, err := api.svc.GetTeacher(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orig, err := api.svc.GetTeacher(reqCtx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting teacher")
	}

	var data school.UpdateTeacher
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err = data.Validate(api.validate, orig); err != nil {
		return err
	}

	tch, err := api.svc.UpdateTeacher(reqCtx, orig, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteTeacher(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}
