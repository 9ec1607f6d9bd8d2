package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

type errorResponse struct {
	Error            string `json:"error"`
	ValidationErrors any    `json:"validationErrors,omitempty"`
}

// statusOf maps an error from the usecases onto an HTTP status.
func statusOf(err error) int {
	var (
		verr *entity.ValidationError
		perr *stepeditor.ParseError
		aerr *entity.APIError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &perr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &aerr):
		if aerr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrNotAllowed), errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(c echo.Context, err error) error {
	status := statusOf(err)
	res := &errorResponse{Error: err.Error()}
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		res.ValidationErrors = verr.Details
	}
	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("request failed")
		res.Error = http.StatusText(status)
	}
	return c.JSON(status, res)
}
