package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// respondError writes the HTTP response for a service error. Journal
// validation failures carry their totals; persistence details never leave the server.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromContext(c)

	var je *apperrors.JournalError
	if errors.As(err, &je) {
		if !je.IsValidation() {
			logger.Error(fallback, slog.String("error", err.Error()), slog.String("kind", string(je.Kind)))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
			return
		}
		logger.Warn("Journal rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, journalErrorResponse(je))
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, dto.ErrorResponse{Error: appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: clientMessage(err)})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Request conflicts with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: clientMessage(err)})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: clientMessage(err)})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: clientMessage(err)})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// clientMessage is the text of the primary error. Errors appended to it, such
// as a failed rollback, are only logged.
func clientMessage(err error) string {
	if errs := multierr.Errors(err); len(errs) > 0 {
		return errs[0].Error()
	}
	return err.Error()
}

func journalErrorResponse(je *apperrors.JournalError) dto.JournalErrorResponse {
	resp := dto.JournalErrorResponse{
		Error: je.Error(),
		Kind:  string(je.Kind),
		Line:  je.Line,
		Field: je.Field,
	}
	if je.Kind == apperrors.KindUnbalanced {
		resp.TotalDebit = je.TotalDebit.StringFixed(2)
		resp.TotalCredit = je.TotalCredit.StringFixed(2)
		resp.Difference = je.Difference().StringFixed(2)
	}
	return resp
}

// bindError answers a request whose body or query failed binding.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// ownerID reads the authenticated owner. It aborts with 401 when missing.
func ownerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok || userID == "" {
		middleware.GetLoggerFromContext(c).Error("User ID not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// uuidParam reads a path parameter that must be a UUID. It answers 400 otherwise.
func uuidParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if _, err := uuid.Parse(value); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return "", false
	}
	return value, true
}
