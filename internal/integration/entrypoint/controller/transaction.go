package controller

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/application/usecase/transaction"
	"github.com/pluto-finance/ledger/internal/application/usecase/transactionlist"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	"github.com/pluto-finance/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	monthViewUseCase *transaction.MonthViewUseCase
	getUseCase       *transaction.GetTransactionUseCase
	createUseCase    *transaction.CreateTransactionUseCase
	updateUseCase    *transaction.UpdateTransactionUseCase
	deleteUseCase    *transaction.DeleteTransactionUseCase

	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	monthViewUseCase *transaction.MonthViewUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
) *TransactionController {
	return &TransactionController{
		monthViewUseCase: monthViewUseCase,
		getUseCase:       getUseCase,
		createUseCase:    createUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		transactionRepo:  transactionRepo,
		accountRepo:      accountRepo,
	}
}

// MonthView handles GET /transactions requests. The response is the
// grouped-by-day view of the calendar month selected by the year and month
// query parameters, optionally scoped to a single account.
func (c *TransactionController) MonthView(ctx *gin.Context) {
	reference, ok := parseMonthReference(ctx)
	if !ok {
		return
	}

	input := transaction.MonthViewInput{Reference: reference}
	if accountIDStr := ctx.Query("accountId"); accountIDStr != "" {
		accountID, err := strconv.ParseUint(accountIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid accountId",
			})
			return
		}
		id := uint(accountID)
		input.AccountID = &id
	}

	output, err := c.monthViewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthViewResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	txn, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	input, ok := bindTransactionInput(ctx)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	input, ok := bindTransactionInput(ctx)
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		ID:          id,
		Title:       input.Title,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Type:        input.Type,
		Description: input.Description,
		AccountID:   input.AccountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Events handles GET /transactions/events requests. It streams live month
// view snapshots over server-sent events until the client disconnects.
// The accountId parameter scopes the stream to one account; "all" disables
// the default first-account selection.
func (c *TransactionController) Events(ctx *gin.Context) {
	reference, ok := parseMonthReference(ctx)
	if !ok {
		return
	}

	list := transactionlist.New(ctx.Request.Context(), c.transactionRepo, c.accountRepo, reference)
	defer list.Close()

	switch accountIDStr := ctx.Query("accountId"); accountIDStr {
	case "":
		// keep the default first-account selection
	case "all":
		list.ClearAccount()
	default:
		accountID, err := strconv.ParseUint(accountIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid accountId",
			})
			return
		}
		list.SelectAccount(uint(accountID))
	}

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Stream(func(w io.Writer) bool {
		select {
		case snapshot, open := <-list.Snapshots():
			if !open {
				return false
			}
			ctx.SSEvent("snapshot", dto.ToSnapshotResponse(snapshot))
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

// parseMonthReference reads the year and month query parameters into a
// reference date, defaulting to the current month.
func parseMonthReference(ctx *gin.Context) (time.Time, bool) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year",
			})
			return time.Time{}, false
		}
		year = parsed
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month",
			})
			return time.Time{}, false
		}
		month = parsed
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// bindTransactionInput parses the shared create/update request body.
func bindTransactionInput(ctx *gin.Context) (transaction.CreateTransactionInput, bool) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return transaction.CreateTransactionInput{}, false
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount: " + req.Amount,
		})
		return transaction.CreateTransactionInput{}, false
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return transaction.CreateTransactionInput{}, false
	}

	return transaction.CreateTransactionInput{
		Title:       req.Title,
		Amount:      amount,
		Category:    req.Category,
		Date:        date,
		Type:        entity.TransactionType(req.Type),
		Description: req.Description,
		AccountID:   req.AccountID,
	}, true
}
