package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	domainerror "github.com/pluto-finance/ledger/internal/domain/error"
	"github.com/pluto-finance/ledger/internal/integration/persistence/model"
)

// newTestStore opens a private in-memory sqlite database. A single
// connection keeps every query on the same memory store.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := db.AutoMigrate(&model.AccountModel{}, &model.TransactionModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = dbSQL.Close() })

	return NewStore(db)
}

func seedAccount(t *testing.T, repo adapter.AccountRepository, name string) *entity.Account {
	t.Helper()
	account := entity.NewAccount(name, decimal.Zero)
	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func seedTransaction(t *testing.T, repo adapter.TransactionRepository, accountID uint, date time.Time, amount string, transactionType entity.TransactionType) *entity.Transaction {
	t.Helper()
	tx := entity.NewTransaction("tx", decimal.RequireFromString(amount), "misc", date, transactionType, "", accountID)
	if err := repo.Create(context.Background(), tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return tx
}

func march(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func marchFilter(accountID *uint) adapter.RangeFilter {
	return adapter.RangeFilter{
		AccountID: accountID,
		Start:     march(1),
		End:       march(31),
	}
}

func TestAccountRepository(t *testing.T) {
	t.Run("create assigns ids in insertion order", func(t *testing.T) {
		store := newTestStore(t)
		repo := NewAccountRepository(store)

		a := seedAccount(t, repo, "Checking")
		b := seedAccount(t, repo, "Savings")
		if a.ID == 0 || b.ID == 0 || b.ID <= a.ID {
			t.Fatalf("expected increasing assigned ids, got %d and %d", a.ID, b.ID)
		}

		accounts, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("find all failed: %v", err)
		}
		if len(accounts) != 2 || accounts[0].Name != "Checking" || accounts[1].Name != "Savings" {
			t.Errorf("expected insertion order, got %+v", accounts)
		}
	})

	t.Run("find by id returns domain error when missing", func(t *testing.T) {
		store := newTestStore(t)
		repo := NewAccountRepository(store)

		if _, err := repo.FindByID(context.Background(), 42); !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("update persists changes", func(t *testing.T) {
		store := newTestStore(t)
		repo := NewAccountRepository(store)

		account := seedAccount(t, repo, "Checking")
		account.Name = "Main"
		account.InitialBalance = decimal.RequireFromString("100")
		if err := repo.Update(context.Background(), account); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		got, err := repo.FindByID(context.Background(), account.ID)
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if got.Name != "Main" || !got.InitialBalance.Equal(decimal.RequireFromString("100")) {
			t.Errorf("expected updated account, got %+v", got)
		}
	})

	t.Run("delete cascades to transactions", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)

		account := seedAccount(t, accountRepo, "Checking")
		other := seedAccount(t, accountRepo, "Savings")
		seedTransaction(t, txRepo, account.ID, march(5), "10", entity.TransactionTypeExpense)
		kept := seedTransaction(t, txRepo, other.ID, march(6), "5", entity.TransactionTypeExpense)

		if err := accountRepo.Delete(context.Background(), account); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		remaining, err := txRepo.FindInRange(context.Background(), marchFilter(nil))
		if err != nil {
			t.Fatalf("find in range failed: %v", err)
		}
		if len(remaining) != 1 || remaining[0].Transaction.ID != kept.ID {
			t.Errorf("expected only the other account's transaction to survive, got %+v", remaining)
		}
	})
}

func TestTransactionRepository(t *testing.T) {
	t.Run("find in range orders date descending and joins accounts", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)

		account := seedAccount(t, accountRepo, "Checking")
		seedTransaction(t, txRepo, account.ID, march(1), "20", entity.TransactionTypeExpense)
		seedTransaction(t, txRepo, account.ID, march(5), "100", entity.TransactionTypeExpense)
		seedTransaction(t, txRepo, account.ID, march(3), "40", entity.TransactionTypeIncome)

		txs, err := txRepo.FindInRange(context.Background(), marchFilter(nil))
		if err != nil {
			t.Fatalf("find in range failed: %v", err)
		}
		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txs))
		}
		wantDays := []int{5, 3, 1}
		for i, want := range wantDays {
			if got := txs[i].Transaction.Date.Day(); got != want {
				t.Errorf("position %d: expected day %d, got %d", i, want, got)
			}
			if txs[i].Account == nil || txs[i].Account.ID != account.ID {
				t.Errorf("position %d: expected joined account", i)
			}
		}
	})

	t.Run("range bounds are inclusive at day granularity", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)

		account := seedAccount(t, accountRepo, "Checking")
		seedTransaction(t, txRepo, account.ID, march(1), "1", entity.TransactionTypeExpense)
		seedTransaction(t, txRepo, account.ID, time.Date(2024, time.March, 31, 18, 30, 0, 0, time.UTC), "2", entity.TransactionTypeExpense)
		seedTransaction(t, txRepo, account.ID, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "3", entity.TransactionTypeExpense)
		seedTransaction(t, txRepo, account.ID, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "4", entity.TransactionTypeExpense)

		txs, err := txRepo.FindInRange(context.Background(), marchFilter(nil))
		if err != nil {
			t.Fatalf("find in range failed: %v", err)
		}
		if len(txs) != 2 {
			t.Fatalf("expected both boundary days included and neighbors excluded, got %d", len(txs))
		}
	})

	t.Run("account filter is optional", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)

		first := seedAccount(t, accountRepo, "Checking")
		second := seedAccount(t, accountRepo, "Savings")
		seedTransaction(t, txRepo, first.ID, march(5), "10", entity.TransactionTypeExpense)
		seedTransaction(t, txRepo, second.ID, march(6), "5", entity.TransactionTypeExpense)

		all, err := txRepo.FindInRange(context.Background(), marchFilter(nil))
		if err != nil {
			t.Fatalf("find in range failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected global view without account filter, got %d", len(all))
		}

		scoped, err := txRepo.FindInRange(context.Background(), marchFilter(&first.ID))
		if err != nil {
			t.Fatalf("find in range failed: %v", err)
		}
		if len(scoped) != 1 || scoped[0].Transaction.AccountID != first.ID {
			t.Errorf("expected only the first account's transactions, got %+v", scoped)
		}
	})

	t.Run("sum by type returns zero without matching rows", func(t *testing.T) {
		store := newTestStore(t)
		txRepo := NewTransactionRepository(store)

		sum, err := txRepo.SumByType(context.Background(), marchFilter(nil), entity.TransactionTypeIncome)
		if err != nil {
			t.Fatalf("sum failed: %v", err)
		}
		if !sum.IsZero() {
			t.Errorf("expected zero, got %s", sum)
		}
	})

	t.Run("sum by type totals only the requested type", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)

		account := seedAccount(t, accountRepo, "Checking")
		seedTransaction(t, txRepo, account.ID, march(5), "100", entity.TransactionTypeExpense)
		seedTransaction(t, txRepo, account.ID, march(5), "40", entity.TransactionTypeIncome)
		seedTransaction(t, txRepo, account.ID, march(1), "20", entity.TransactionTypeExpense)

		expense, err := txRepo.SumByType(context.Background(), marchFilter(nil), entity.TransactionTypeExpense)
		if err != nil {
			t.Fatalf("sum failed: %v", err)
		}
		if want := decimal.RequireFromString("120"); !expense.Equal(want) {
			t.Errorf("expected expense %s, got %s", want, expense)
		}

		income, err := txRepo.SumByType(context.Background(), marchFilter(nil), entity.TransactionTypeIncome)
		if err != nil {
			t.Fatalf("sum failed: %v", err)
		}
		if want := decimal.RequireFromString("40"); !income.Equal(want) {
			t.Errorf("expected income %s, got %s", want, income)
		}
	})

	t.Run("update and delete round trip", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)

		account := seedAccount(t, accountRepo, "Checking")
		tx := seedTransaction(t, txRepo, account.ID, march(5), "10", entity.TransactionTypeExpense)

		tx.Title = "Dinner"
		tx.Amount = decimal.RequireFromString("25")
		if err := txRepo.Update(context.Background(), tx); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		got, err := txRepo.FindByID(context.Background(), tx.ID)
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if got.Title != "Dinner" || !got.Amount.Equal(decimal.RequireFromString("25")) {
			t.Errorf("expected updated transaction, got %+v", got)
		}

		if err := txRepo.Delete(context.Background(), tx); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := txRepo.FindByID(context.Background(), tx.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestWatchStreams(t *testing.T) {
	awaitValue := func(t *testing.T, ch <-chan []*entity.TransactionWithAccount, match func([]*entity.TransactionWithAccount) bool) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case v := <-ch:
				if match(v) {
					return
				}
			case <-deadline:
				t.Fatal("timed out waiting for stream emission")
			}
		}
	}

	t.Run("watch in range re-emits on writes", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)
		account := seedAccount(t, accountRepo, "Checking")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		s := txRepo.WatchInRange(ctx, marchFilter(nil))

		awaitValue(t, s.Values(), func(txs []*entity.TransactionWithAccount) bool { return len(txs) == 0 })

		tx := seedTransaction(t, txRepo, account.ID, march(5), "10", entity.TransactionTypeExpense)
		awaitValue(t, s.Values(), func(txs []*entity.TransactionWithAccount) bool { return len(txs) == 1 })

		if err := txRepo.Delete(context.Background(), tx); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		awaitValue(t, s.Values(), func(txs []*entity.TransactionWithAccount) bool { return len(txs) == 0 })
	})

	t.Run("account delete wakes transaction watchers", func(t *testing.T) {
		store := newTestStore(t)
		accountRepo := NewAccountRepository(store)
		txRepo := NewTransactionRepository(store)
		account := seedAccount(t, accountRepo, "Checking")
		seedTransaction(t, txRepo, account.ID, march(5), "10", entity.TransactionTypeExpense)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		s := txRepo.WatchInRange(ctx, marchFilter(nil))

		awaitValue(t, s.Values(), func(txs []*entity.TransactionWithAccount) bool { return len(txs) == 1 })

		if err := accountRepo.Delete(context.Background(), account); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		awaitValue(t, s.Values(), func(txs []*entity.TransactionWithAccount) bool { return len(txs) == 0 })
	})
}
