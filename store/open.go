package store

import "fmt"

const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// Open returns the store named by kind. dataFile is only read for sqlite.
func Open(kind, dataFile string) (Store, error) {
	switch kind {
	case "", KindMemory:
		return NewMemoryStore(), nil
	case KindSQLite:
		if dataFile == "" {
			return nil, fmt.Errorf("sqlite store needs a data file")
		}
		return NewSQLiteStore(dataFile)
	default:
		return nil, fmt.Errorf("unknown storage %q", kind)
	}
}
