// Package transactionform implements the state controller behind the
// add/edit transaction form: it owns the transient field values and
// persists them on an explicit save.
package transactionform

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	domainerror "github.com/pluto-finance/ledger/internal/domain/error"
)

// State is the immutable snapshot of the form. Amount holds the raw text
// as typed; it is parsed only on save. Saved flips to true after a
// successful save, which the caller observes to navigate back.
type State struct {
	ID          uint
	Title       string
	Amount      string
	Category    string
	Description string
	Date        time.Time
	Type        entity.TransactionType
	Accounts    []*entity.Account
	AccountID   *uint
	Editing     bool
	Saved       bool
}

// Controller owns the add/edit form state.
type Controller struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository

	mu    sync.Mutex
	state State
}

// New creates a form controller. When transactionID is non-nil the form is
// in edit mode: the existing transaction is loaded once and every field is
// pre-populated, including its owning account. In create mode the first
// account (by insertion order) is pre-selected as a convenience default.
// The accounts list for the selector is loaded in both modes.
func New(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	transactionID *uint,
) (*Controller, error) {
	c := &Controller{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		state: State{
			Date: time.Now(),
			Type: entity.TransactionTypeExpense,
		},
	}

	accounts, err := accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.state.Accounts = accounts

	if transactionID != nil {
		transaction, err := transactionRepo.FindByID(ctx, *transactionID)
		if err != nil {
			return nil, err
		}
		accountID := transaction.AccountID
		c.state.ID = transaction.ID
		c.state.Title = transaction.Title
		c.state.Amount = transaction.Amount.String()
		c.state.Category = transaction.Category
		c.state.Description = transaction.Description
		c.state.Date = transaction.Date
		c.state.Type = transaction.Type
		c.state.AccountID = &accountID
		c.state.Editing = true
	} else if len(accounts) > 0 {
		id := accounts[0].ID
		c.state.AccountID = &id
	}

	return c, nil
}

// State returns the current form snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetTitle updates the title field.
func (c *Controller) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Title = title
}

// SetAmount updates the amount field. Input that is not a non-negative
// decimal numeral (or a prefix of one) is rejected and the field keeps its
// previous value.
func (c *Controller) SetAmount(amount string) {
	if !acceptAmountInput(amount) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Amount = amount
}

// SetCategory updates the category field.
func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Category = category
}

// SetDescription updates the description field.
func (c *Controller) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Description = description
}

// SetDate updates the transaction date.
func (c *Controller) SetDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Date = date
}

// SetType updates the transaction type.
func (c *Controller) SetType(transactionType entity.TransactionType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Type = transactionType
}

// SelectAccount updates the selected owning account.
func (c *Controller) SelectAccount(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.AccountID = &id
}

// Save validates the form and persists the transaction. A blank title,
// blank amount or missing account selection fails with a ValidationError
// naming the field and performs no storage write. On success the state is
// marked Saved; in create mode storage assigns the new ID.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if strings.TrimSpace(state.Title) == "" {
		return domainerror.NewValidationError(domainerror.FieldTitle)
	}
	if strings.TrimSpace(state.Amount) == "" {
		return domainerror.NewValidationError(domainerror.FieldAmount)
	}
	if state.AccountID == nil {
		return domainerror.NewValidationError(domainerror.FieldAccount)
	}

	transaction := &entity.Transaction{
		ID:          state.ID,
		Title:       state.Title,
		Amount:      parseAmountOrZero(state.Amount),
		Category:    state.Category,
		Date:        state.Date,
		Type:        state.Type,
		Description: state.Description,
		AccountID:   *state.AccountID,
	}

	var err error
	if state.Editing {
		err = c.transactionRepo.Update(ctx, transaction)
	} else {
		err = c.transactionRepo.Create(ctx, transaction)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state.ID = transaction.ID
	c.state.Saved = true
	c.mu.Unlock()
	return nil
}
