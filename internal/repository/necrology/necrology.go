package necrology

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/chenders/deadonfilm/configs"
	"github.com/chenders/deadonfilm/internal/domain"
)

const recordPrefix = "deceased:"

// Store keeps death records keyed by actor ID in an embedded badger database.
// Records come from a seed file and survive restarts.
type Store struct {
	db  *badger.DB
	log *slog.Logger
}

func NewStore(config *configs.Config, log *slog.Logger) (*Store, error) {
	const op = "necrology.NewStore"
	opts := badger.DefaultOptions(config.NC.Path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{db: db, log: log}, nil
}

// OpenInMemory backs the store with a throwaway in-memory database.
func OpenInMemory(log *slog.Logger) (*Store, error) {
	const op = "necrology.OpenInMemory"
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetRecords looks up the given actor IDs and returns whatever records exist.
// IDs with no record are simply absent from the result.
func (s *Store) GetRecords(ctx context.Context, actorIDs []int) (map[int]domain.DeceasedRecord, error) {
	const op = "necrology.GetRecords"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make(map[int]domain.DeceasedRecord, len(actorIDs))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, actorID := range actorIDs {
			item, err := txn.Get(recordKey(actorID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			var record domain.DeceasedRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			records[actorID] = record
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

func (s *Store) PutRecords(ctx context.Context, records []domain.DeceasedRecord) error {
	const op = "necrology.PutRecords"
	if err := ctx.Err(); err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := wb.Set(recordKey(record.ID), data); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ImportFile loads a JSON array of records from path and stores them all.
// Existing records with the same ID are overwritten.
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	const op = "necrology.ImportFile"
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var records []domain.DeceasedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.PutRecords(ctx, records); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("necrology records imported", "path", path, "count", len(records))
	return len(records), nil
}

func recordKey(actorID int) []byte {
	return []byte(recordPrefix + strconv.Itoa(actorID))
}
