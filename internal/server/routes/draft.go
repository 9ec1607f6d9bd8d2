package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/stepeditor"
	"github.com/yz4230/asgard-console/internal/usecase"
)

func RegisterDraftAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api/drafts")

	g.POST("", func(c echo.Context) error {
		type request struct {
			ClusterName  string        `json:"clusterName"`
			TemplateName string        `json:"templateName"`
			Steps        []entity.Step `json:"steps"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: err.Error()})
		}

		create := do.MustInvoke[usecase.CreateDraftUsecase](injector)
		view, err := create.Execute(c.Request().Context(), &usecase.CreateDraftInput{
			ClusterName:  req.ClusterName,
			TemplateName: req.TemplateName,
			Steps:        req.Steps,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, view)
	})

	g.GET("", func(c echo.Context) error {
		usecase := do.MustInvoke[usecase.ListDraftsUsecase](injector)
		drafts, err := usecase.Execute(c.Request().Context(), c.QueryParam("cluster"))
		if err != nil {
			return respondError(c, err)
		}

		type item struct {
			ID           entity.ID `json:"id"`
			ClusterName  string    `json:"clusterName"`
			TemplateName string    `json:"templateName"`
			UpdatedAt    time.Time `json:"updatedAt"`
		}
		type response struct {
			Drafts []item `json:"drafts"`
		}
		result := &response{Drafts: make([]item, len(drafts))}
		for i, d := range drafts {
			result.Drafts[i] = item{
				ID:           d.ID,
				ClusterName:  d.ClusterName,
				TemplateName: d.TemplateName,
				UpdatedAt:    d.UpdatedAt,
			}
		}
		return c.JSON(http.StatusOK, result)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := entity.ParseID(c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		usecase := do.MustInvoke[usecase.GetDraftUsecase](injector)
		view, err := usecase.Execute(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := entity.ParseID(c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		usecase := do.MustInvoke[usecase.DeleteDraftUsecase](injector)
		if err := usecase.Execute(c.Request().Context(), id); err != nil {
			return respondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})

	g.GET("/:id/allowed", func(c echo.Context) error {
		id, err := entity.ParseID(c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		index, err := strconv.Atoi(c.QueryParam("index"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: "index must be an integer"})
		}
		usecase := do.MustInvoke[usecase.GetDraftUsecase](injector)
		view, err := usecase.Execute(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}

		type response struct {
			Index int               `json:"index"`
			Types []entity.StepType `json:"types"`
		}
		return c.JSON(http.StatusOK, &response{
			Index: index,
			Types: stepeditor.AllowedTypes(view.Display, index),
		})
	})

	edit := func(c echo.Context, ev stepeditor.Event) error {
		id, err := entity.ParseID(c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		usecase := do.MustInvoke[usecase.EditDraftUsecase](injector)
		view, err := usecase.Execute(c.Request().Context(), id, ev)
		if err != nil {
			var pe *stepeditor.ParseError
			if errors.As(err, &pe) && view != nil {
				return c.JSON(http.StatusUnprocessableEntity, view)
			}
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	}

	g.POST("/:id/steps", func(c echo.Context) error {
		var ev stepeditor.AddStep
		if err := c.Bind(&ev); err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: err.Error()})
		}
		t, err := entity.ParseStepType(string(ev.Type))
		if err != nil {
			return respondError(c, err)
		}
		ev.Type = t
		return edit(c, ev)
	})

	g.PUT("/:id/steps/:index", func(c echo.Context) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: "index must be an integer"})
		}
		var step entity.Step
		if err := c.Bind(&step); err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: err.Error()})
		}
		return edit(c, stepeditor.UpdateStep{Index: index, Step: step})
	})

	g.DELETE("/:id/steps/:index", func(c echo.Context) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: "index must be an integer"})
		}
		return edit(c, stepeditor.RemoveStep{Index: index})
	})

	g.POST("/:id/markers/:index/toggle", func(c echo.Context) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: "index must be an integer"})
		}
		return edit(c, stepeditor.ToggleMenu{Index: index})
	})

	g.PUT("/:id/json", func(c echo.Context) error {
		var ev stepeditor.EditJSON
		if err := c.Bind(&ev); err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: err.Error()})
		}
		return edit(c, ev)
	})
}
