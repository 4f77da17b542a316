//go:generate go run go.uber.org/mock/mockgen -source=inspect.go -destination=../mocks/mock_inspector.go -package=mocks
package repositories

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const defaultInspectLimit = 100

// KeyRow describes one stored key without exposing its value.
type KeyRow struct {
	Key       string `json:"key"`
	Namespace string `json:"namespace"`
	Size      int64  `json:"size"`
}

type IInspector interface {
	Inspect(prefix string, limit int) ([]KeyRow, error)
}

type Inspector struct {
	db *badger.DB
}

func NewInspector(db *badger.DB) Inspector {
	return Inspector{db: db}
}

// Inspect lists at most limit keys under prefix, in key order.
// Values are never loaded: rows only carry their size.
func (i Inspector) Inspect(prefix string, limit int) ([]KeyRow, error) {
	if limit <= 0 {
		limit = defaultInspectLimit
	}
	rows := make([]KeyRow, 0)
	err := i.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p) && len(rows) < limit; it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			namespace, _, _ := strings.Cut(key, ":")
			rows = append(rows, KeyRow{Key: key, Namespace: namespace, Size: item.ValueSize()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
