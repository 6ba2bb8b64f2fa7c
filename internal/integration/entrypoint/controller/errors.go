// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/pluto-finance/ledger/internal/domain/error"
	"github.com/pluto-finance/ledger/internal/integration/entrypoint/dto"
)

// respondError maps domain errors to HTTP responses. Not-found errors
// become 404, validation failures 400, anything else a generic 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrAccountNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Account not found",
			Code:  string(domainerror.ErrCodeAccountNotFound),
		})
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Transaction not found",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
	default:
		var txnErr *domainerror.TransactionError
		if errors.As(err, &txnErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: txnErr.Message,
				Code:  string(txnErr.Code),
			})
			return
		}
		var validationErr *domainerror.ValidationError
		if errors.As(err, &validationErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Validation failed",
				Details: validationErr.Field,
			})
			return
		}
		if errors.Is(err, domainerror.ErrAccountNameRequired) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Account name is required",
				Code:  string(domainerror.ErrCodeAccountNameRequired),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}
