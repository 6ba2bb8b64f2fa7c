package dto

import (
	"github.com/pluto-finance/ledger/internal/application/usecase/transaction"
	"github.com/pluto-finance/ledger/internal/application/usecase/transactionlist"
	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category,omitempty" binding:"omitempty,max=255"`
	Date        string `json:"date" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=expense income"`
	Description string `json:"description,omitempty" binding:"omitempty,max=1000"`
	AccountID   uint   `json:"account_id" binding:"required"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category,omitempty" binding:"omitempty,max=255"`
	Date        string `json:"date" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=expense income"`
	Description string `json:"description,omitempty" binding:"omitempty,max=1000"`
	AccountID   uint   `json:"account_id" binding:"required"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Amount      string           `json:"amount"`
	Category    string           `json:"category"`
	Date        string           `json:"date"`
	Type        string           `json:"type"`
	Description string           `json:"description,omitempty"`
	AccountID   uint             `json:"account_id"`
	Account     *AccountResponse `json:"account,omitempty"`
}

// DayGroupResponse represents one day bucket of the month view.
type DayGroupResponse struct {
	Day          string                `json:"day"`
	Total        string                `json:"total"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TotalsResponse represents the month-level aggregated totals.
type TotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// MonthViewResponse represents the response for the month view endpoint.
type MonthViewResponse struct {
	Start  string             `json:"start"`
	End    string             `json:"end"`
	Groups []DayGroupResponse `json:"groups"`
	Totals TotalsResponse     `json:"totals"`
}

// SnapshotResponse represents one emission of the live transaction list
// stream: the month view plus the account picker state.
type SnapshotResponse struct {
	Start     string             `json:"start"`
	End       string             `json:"end"`
	AccountID *uint              `json:"account_id,omitempty"`
	Accounts  []AccountResponse  `json:"accounts"`
	Groups    []DayGroupResponse `json:"groups"`
	Totals    TotalsResponse     `json:"totals"`
	Error     string             `json:"error,omitempty"`
}

const dateLayout = "2006-01-02"

// ToTransactionResponse converts a Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		Title:       txn.Title,
		Amount:      txn.Amount.String(),
		Category:    txn.Category,
		Date:        txn.Date.Format(dateLayout),
		Type:        string(txn.Type),
		Description: txn.Description,
		AccountID:   txn.AccountID,
	}
}

// ToJoinedTransactionResponse converts a transaction joined with its account.
func ToJoinedTransactionResponse(txn *entity.TransactionWithAccount) TransactionResponse {
	response := ToTransactionResponse(txn.Transaction)
	if txn.Account != nil {
		account := ToAccountResponse(txn.Account)
		response.Account = &account
	}
	return response
}

func toDayGroupResponses(groups []entity.DayGroup) []DayGroupResponse {
	out := make([]DayGroupResponse, len(groups))
	for i, group := range groups {
		transactions := make([]TransactionResponse, len(group.Transactions))
		for j, txn := range group.Transactions {
			transactions[j] = ToJoinedTransactionResponse(txn)
		}
		out[i] = DayGroupResponse{
			Day:          group.Day.Format(dateLayout),
			Total:        group.Total.String(),
			Transactions: transactions,
		}
	}
	return out
}

func toTotalsResponse(totals entity.Totals) TotalsResponse {
	return TotalsResponse{
		Income:  totals.Income.String(),
		Expense: totals.Expense.String(),
		Net:     totals.Net.String(),
	}
}

// ToMonthViewResponse converts a MonthViewOutput to a MonthViewResponse.
func ToMonthViewResponse(output *transaction.MonthViewOutput) MonthViewResponse {
	return MonthViewResponse{
		Start:  output.Window.Start.Format(dateLayout),
		End:    output.Window.End.Format(dateLayout),
		Groups: toDayGroupResponses(output.Groups),
		Totals: toTotalsResponse(output.Totals),
	}
}

// ToSnapshotResponse converts a list controller snapshot to its wire form.
func ToSnapshotResponse(snapshot transactionlist.Snapshot) SnapshotResponse {
	accounts := make([]AccountResponse, len(snapshot.Accounts))
	for i, account := range snapshot.Accounts {
		accounts[i] = ToAccountResponse(account)
	}
	response := SnapshotResponse{
		Start:     snapshot.Window.Start.Format(dateLayout),
		End:       snapshot.Window.End.Format(dateLayout),
		AccountID: snapshot.AccountID,
		Accounts:  accounts,
		Groups:    toDayGroupResponses(snapshot.Groups),
		Totals:    toTotalsResponse(snapshot.Totals),
	}
	if snapshot.Err != nil {
		response.Error = snapshot.Err.Error()
	}
	return response
}
