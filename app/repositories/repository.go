package repositories

import "github.com/dgraph-io/badger/v4"

// Open opens the Badger store at the given path with the options the whole
// application shares.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	return badger.Open(opts)
}
