package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/usecase"
)

func RegisterDeploymentAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api")

	g.GET("/clusters/:cluster/prepare", func(c echo.Context) error {
		usecase := do.MustInvoke[usecase.PrepareDeploymentUsecase](injector)
		prepared, err := usecase.Execute(c.Request().Context(), c.Param("cluster"), c.QueryParam("template"))
		if err != nil {
			return respondError(c, err)
		}

		type response struct {
			*entity.PreparedDeployment
			VpcID string `json:"vpcId"`
		}
		return c.JSON(http.StatusOK, &response{
			PreparedDeployment: prepared,
			VpcID:              prepared.Environment.VpcID(prepared.AsgOptions.SubnetPurpose()),
		})
	})

	g.POST("/deployments", func(c echo.Context) error {
		type request struct {
			ClusterName        string          `json:"clusterName"`
			TemplateName       string          `json:"templateName"`
			DraftID            entity.ID       `json:"draftId"`
			Steps              []entity.Step   `json:"steps"`
			SubnetPurpose      string          `json:"subnetPurpose"`
			SuspendedProcesses map[string]bool `json:"suspendedProcesses"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, &errorResponse{Error: err.Error()})
		}

		ctx := c.Request().Context()
		if req.DraftID != "" {
			id, err := entity.ParseID(req.DraftID.String())
			if err != nil {
				return respondError(c, err)
			}
			draft, err := do.MustInvoke[usecase.GetDraftUsecase](injector).Execute(ctx, id)
			if err != nil {
				return respondError(c, err)
			}
			req.Steps = draft.Steps
			if req.ClusterName == "" {
				req.ClusterName = draft.ClusterName
			}
			if req.TemplateName == "" {
				req.TemplateName = draft.TemplateName
			}
		}

		start := do.MustInvoke[usecase.StartDeploymentUsecase](injector)
		id, err := start.Execute(ctx, &usecase.StartDeploymentInput{
			ClusterName:        req.ClusterName,
			TemplateName:       req.TemplateName,
			Steps:              req.Steps,
			SubnetPurpose:      req.SubnetPurpose,
			SuspendedProcesses: req.SuspendedProcesses,
		})
		if err != nil {
			return respondError(c, err)
		}

		type response struct {
			DeploymentID string `json:"deploymentId"`
		}
		return c.JSON(http.StatusCreated, &response{DeploymentID: id})
	})

	g.GET("/deployments", func(c echo.Context) error {
		usecase := do.MustInvoke[usecase.ListDeploymentsUsecase](injector)
		records, err := usecase.Execute(c.Request().Context(), c.QueryParam("cluster"))
		if err != nil {
			return respondError(c, err)
		}

		type response struct {
			Deployments []*entity.DeploymentRecord `json:"deployments"`
		}
		result := &response{Deployments: make([]*entity.DeploymentRecord, len(records))}
		copy(result.Deployments, records)
		return c.JSON(http.StatusOK, result)
	})

	g.GET("/deployments/:id", func(c echo.Context) error {
		usecase := do.MustInvoke[usecase.GetDeploymentUsecase](injector)
		view, err := usecase.Execute(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	})

	// watch streams one JSON view per line until the deployment is done.
	g.GET("/deployments/:id/watch", func(c echo.Context) error {
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "application/x-ndjson")
		res.Header().Set("Cache-Control", "no-cache")
		res.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(res)
		watch := do.MustInvoke[usecase.WatchDeploymentUsecase](injector)
		_, err := watch.Execute(c.Request().Context(), c.Param("id"), usecase.WatchDeploymentOptions{
			OnUpdate: func(view *usecase.DeploymentView) {
				if err := enc.Encode(view); err == nil {
					res.Flush()
				}
			},
		})
		if err != nil && c.Request().Context().Err() == nil {
			return enc.Encode(&errorResponse{Error: err.Error()})
		}
		return nil
	})

	judge := func(judgment entity.Judgment) echo.HandlerFunc {
		return func(c echo.Context) error {
			usecase := do.MustInvoke[usecase.JudgeDeploymentUsecase](injector)
			if err := usecase.Execute(c.Request().Context(), c.Param("id"), judgment); err != nil {
				return respondError(c, err)
			}
			return c.NoContent(http.StatusAccepted)
		}
	}
	g.POST("/deployments/:id/proceed", judge(entity.JudgmentProceed))
	g.POST("/deployments/:id/rollback", judge(entity.JudgmentRollback))

	g.POST("/deployments/:id/cancel", func(c echo.Context) error {
		usecase := do.MustInvoke[usecase.CancelDeploymentUsecase](injector)
		if err := usecase.Execute(c.Request().Context(), c.Param("id")); err != nil {
			return respondError(c, err)
		}
		return c.NoContent(http.StatusAccepted)
	})

	g.GET("/images", func(c echo.Context) error {
		usecase := do.MustInvoke[usecase.ListImagesUsecase](injector)
		images, err := usecase.Execute(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}

		type response struct {
			Images []entity.Image `json:"images"`
		}
		return c.JSON(http.StatusOK, &response{Images: images})
	})
}
