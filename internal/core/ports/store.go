package ports

// KeyValueStore is a string-keyed store of JSON encodable values, persisted as a whole.
// Mutations stay in memory until Persist is called.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type KeyValueStore interface {
	// Get decodes the value stored under key into out.
	// It returns false, nil if the key is absent.
	Get(key string, out any) (bool, error)

	// Set stores value under key.
	Set(key string, value any) error

	// Has reports whether key is present.
	Has(key string) bool

	// Keys returns all keys in sorted order.
	Keys() []string

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string)

	// ClearAll deletes every key.
	ClearAll()

	// Persist writes the store to its backing file atomically.
	Persist() error
}

// StoreOpener opens the KeyValueStore backed by a file.
type StoreOpener interface {
	// Open loads the store at path. A missing or corrupt file yields an empty store.
	Open(path string) (KeyValueStore, error)
}
