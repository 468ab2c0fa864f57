package ui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	apperrors "github.com/GhaziAlmutairii/survey-analyzerFYP/internal/errors"
)

// writeError maps an error onto the JSON envelope every endpoint shares:
// {"error": ..., "code": ...}. Unknown datasets and unloaded processors
// are 404, bad requests 400, computations that cannot run on the data
// 422, everything else 500.
func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, survey.ErrNotLoaded):
		return http.StatusNotFound, apperrors.CodeNotLoaded
	case survey.IsValidationError(err):
		return http.StatusBadRequest, apperrors.CodeValidationError
	case survey.IsComputationError(err):
		return http.StatusUnprocessableEntity, apperrors.CodeComputationError
	case survey.IsLoadError(err):
		return http.StatusBadRequest, apperrors.CodeLoadFailed
	}

	var app *apperrors.AppError
	if errors.As(err, &app) {
		switch app.Code {
		case apperrors.CodeNotFound, apperrors.CodeNotLoaded:
			return http.StatusNotFound, app.Code
		case apperrors.CodeValidationError, apperrors.CodeInvalidInput,
			apperrors.CodeLoadFailed, apperrors.CodeConfigInvalid:
			return http.StatusBadRequest, app.Code
		case apperrors.CodeComputationError:
			return http.StatusUnprocessableEntity, app.Code
		default:
			return http.StatusInternalServerError, app.Code
		}
	}

	return http.StatusInternalServerError, apperrors.CodeInternalError
}

// badRequest reports a malformed request (missing parameter, unparseable
// body) without going through the error taxonomy.
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": apperrors.CodeInvalidInput})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message, "code": apperrors.CodeNotFound})
}
