package persistence

import "gorm.io/gorm"

// Store bundles the database handle with the shared change notifier; both
// repositories are built from one Store so every write is visible to every
// watch stream.
type Store struct {
	db       *gorm.DB
	notifier *changeNotifier
}

// NewStore creates a Store over the given database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		notifier: newChangeNotifier(),
	}
}
