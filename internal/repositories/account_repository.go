package repositories

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"bankledger/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account number already exists")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidEntry         = errors.New("invalid balance entry")
)

// fileAccountRepository implements AccountRepositoryInterface backed by a
// whole-file CSV snapshot. A single mutex serializes every operation,
// including the two legs of a transfer, so snapshot writes never interleave.
type fileAccountRepository struct {
	mu       sync.Mutex
	path     string
	accounts map[int]*models.Account
}

// NewAccountRepository creates a file-backed account repository and loads the
// snapshot at path. A missing snapshot file is an empty store, not an error.
func NewAccountRepository(path string) (AccountRepositoryInterface, error) {
	r := &fileAccountRepository{
		path:     path,
		accounts: make(map[int]*models.Account),
	}

	if err := r.loadLocked(); err != nil {
		return nil, err
	}

	return r, nil
}

// Create allocates max(existing)+1 (or the starting number when empty),
// stores the account and persists the snapshot.
func (r *fileAccountRepository) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.AccountNumber == 0 {
		account.AccountNumber = r.nextAccountNumberLocked()
	} else if _, exists := r.accounts[account.AccountNumber]; exists {
		return ErrAccountAlreadyExists
	}

	if err := account.Validate(); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	stored := *account
	r.accounts[stored.AccountNumber] = &stored

	if err := r.persistLocked(); err != nil {
		delete(r.accounts, stored.AccountNumber)
		return err
	}

	return nil
}

// GetByNumber retrieves an account by account number as a value copy.
func (r *fileAccountRepository) GetByNumber(accountNumber int) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return nil, ErrAccountNotFound
	}

	cp := *account
	return &cp, nil
}

// List returns value copies of all accounts ordered by account number.
func (r *fileAccountRepository) List() []models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, *account)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountNumber < out[j].AccountNumber
	})

	return out
}

// Count returns the number of stored accounts.
func (r *fileAccountRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// UpdateBalance applies one credit or debit entry and persists the snapshot.
func (r *fileAccountRepository) UpdateBalance(accountNumber int, amount decimal.Decimal, entry string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}

	before := account.Balance

	switch entry {
	case EntryCredit:
		if err := account.Credit(amount); err != nil {
			return decimal.Zero, err
		}
	case EntryDebit:
		if err := account.Debit(amount); err != nil {
			if errors.Is(err, models.ErrInsufficientFunds) {
				return decimal.Zero, ErrInsufficientFunds
			}
			return decimal.Zero, err
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidEntry, entry)
	}

	if err := r.persistLocked(); err != nil {
		account.Balance = before
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// ExecuteAtomicTransfer runs both transfer legs inside one critical section
// with a single snapshot persist. Either both balances change or neither does.
func (r *fileAccountRepository) ExecuteAtomicTransfer(fromNumber, toNumber int, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.accounts[fromNumber]
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("source account %d: %w", fromNumber, ErrAccountNotFound)
	}

	to, ok := r.accounts[toNumber]
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("recipient account %d: %w", toNumber, ErrAccountNotFound)
	}

	fromBefore, toBefore := from.Balance, to.Balance

	if err := from.Debit(amount); err != nil {
		if errors.Is(err, models.ErrInsufficientFunds) {
			return decimal.Zero, decimal.Zero, ErrInsufficientFunds
		}
		return decimal.Zero, decimal.Zero, err
	}

	if err := to.Credit(amount); err != nil {
		from.Balance = fromBefore
		return decimal.Zero, decimal.Zero, err
	}

	if err := r.persistLocked(); err != nil {
		from.Balance = fromBefore
		to.Balance = toBefore
		return decimal.Zero, decimal.Zero, err
	}

	return from.Balance, to.Balance, nil
}

// Reload replaces the in-memory collection with the snapshot file contents.
func (r *fileAccountRepository) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// nextAccountNumberLocked returns max(existing account numbers)+1, or the
// starting number for an empty store. Numbers are never reused.
func (r *fileAccountRepository) nextAccountNumberLocked() int {
	next := models.StartingAccountNumber
	for number := range r.accounts {
		if number >= next {
			next = number + 1
		}
	}
	return next
}

// loadLocked reads the snapshot line by line, skipping malformed records.
func (r *fileAccountRepository) loadLocked() error {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.accounts = make(map[int]*models.Account)
			return nil
		}
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	accounts := make(map[int]*models.Account)

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if err != nil {
			if errors.As(err, &parseErr) {
				// Malformed lines are skipped rather than failing the load.
				continue
			}
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		account, err := models.AccountFromSnapshotFields(fields)
		if err != nil {
			continue
		}

		accounts[account.AccountNumber] = account
	}

	r.accounts = accounts
	return nil
}

// persistLocked rewrites the whole snapshot via write-temp-then-rename, so a
// crash mid-write leaves the previously committed snapshot intact.
func (r *fileAccountRepository) persistLocked() error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	tmp := r.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}

	writer := csv.NewWriter(f)

	numbers := make([]int, 0, len(r.accounts))
	for number := range r.accounts {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	for _, number := range numbers {
		if err := writer.Write(r.accounts[number].SnapshotFields()); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("failed to write snapshot record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
