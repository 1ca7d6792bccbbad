package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Daisy2077/ICS4U/core/school"
)

type studentApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, validate: validate}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)

	// derived routes
	sg.GET("/:id/tests", api.queryTests)
	sg.GET("/:id/average", api.average)
}

// AverageResponse is the payload of GET /students/:id/average.
type AverageResponse struct {
	StudentID string  `json:"student_id"`
	Average   float64 `json:"average"`
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data school.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAllStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.GetStudent(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orig, err := api.svc.GetStudent(reqCtx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting student")
	}

	var data school.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(api.validate, orig); err != nil {
		return err
	}

	std, err := api.svc.UpdateStudent(reqCtx, orig, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteStudent(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) queryTests(ctx echo.Context) error {
	tests, err := api.svc.TestsForStudent(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student tests")
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *studentApi) average(ctx echo.Context) error {
	id := ctx.Param("id")
	avg, err := api.svc.StudentAverage(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "computing student average")
	}
	return ctx.JSON(http.StatusOK, AverageResponse{StudentID: id, Average: avg})
}
