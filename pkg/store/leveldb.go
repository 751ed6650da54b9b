package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBStore keeps redirect records in an embedded LevelDB database,
// for single-node deployments that run without Redis. Key scheme and
// record encoding match the Redis backend.
type LevelDBStore struct {
	db    *leveldb.DB
	table string
}

// OpenLevelDBStore opens (or creates) a LevelDB database at path.
func OpenLevelDBStore(path, table string) (*LevelDBStore, error) {
	if table == "" {
		table = DefaultTable
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &LevelDBStore{
		db:    db,
		table: table,
	}, nil
}

func (s *LevelDBStore) key(host string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", s.table, host, RowKey))
}

// Get fetches the record for a host. Returns ErrNotFound when the key
// does not exist.
func (s *LevelDBStore) Get(ctx context.Context, host string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		lookupsTotal.WithLabelValues(backendLevelDB, resultError).Inc()
		return nil, fmt.Errorf("leveldb get: %w", err)
	}

	start := time.Now()
	data, err := s.db.Get(s.key(host), nil)
	lookupDuration.WithLabelValues(backendLevelDB).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			lookupsTotal.WithLabelValues(backendLevelDB, resultNotFound).Inc()
			return nil, ErrNotFound
		}
		lookupsTotal.WithLabelValues(backendLevelDB, resultError).Inc()
		return nil, fmt.Errorf("leveldb get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		lookupsTotal.WithLabelValues(backendLevelDB, resultError).Inc()
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	lookupsTotal.WithLabelValues(backendLevelDB, resultFound).Inc()
	return &rec, nil
}

// Put writes the record for a host, overwriting any previous one.
func (s *LevelDBStore) Put(ctx context.Context, host string, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("leveldb put: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := s.db.Put(s.key(host), data, nil); err != nil {
		return fmt.Errorf("leveldb put: %w", err)
	}
	return nil
}

// Ping verifies the database handle is still usable.
func (s *LevelDBStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.db.GetProperty("leveldb.stats"); err != nil {
		return fmt.Errorf("leveldb ping: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
