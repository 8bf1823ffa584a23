package repositories

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"bankledger/internal/models"
)

// csvTransactionLogRepository implements TransactionLogRepositoryInterface as
// an append-only CSV file with a fixed header row. The file is never
// truncated and prior lines are never rewritten.
type csvTransactionLogRepository struct {
	mu   sync.Mutex
	path string
}

// NewTransactionLogRepository creates the audit log repository, writing the
// header row if the file does not exist yet.
func NewTransactionLogRepository(path string) (TransactionLogRepositoryInterface, error) {
	r := &csvTransactionLogRepository{path: path}

	if err := r.ensureHeader(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *csvTransactionLogRepository) ensureHeader() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat audit log: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create audit log directory: %w", err)
		}
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(models.AuditLogHeader); err != nil {
		return fmt.Errorf("failed to write audit log header: %w", err)
	}
	writer.Flush()

	return writer.Error()
}

// Append writes one audit line. The record is validated before anything
// touches the file.
func (r *csvTransactionLogRepository) Append(record *models.TransactionRecord) error {
	if record == nil {
		return errors.New("nil audit record")
	}

	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid audit record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(record.AuditFields()); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush audit record: %w", err)
	}

	return nil
}

// Tail returns the last n records, excluding the header, in file order.
func (r *csvTransactionLogRepository) Tail(n int) ([]models.TransactionRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var records []models.TransactionRecord
	header := true

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if err != nil {
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("failed to read audit log: %w", err)
		}

		if header {
			header = false
			continue
		}

		record, err := models.RecordFromAuditFields(fields)
		if err != nil {
			continue
		}

		records = append(records, *record)
	}

	if len(records) > n {
		records = records[len(records)-n:]
	}

	return records, nil
}
