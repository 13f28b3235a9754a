package database

// DataStore defines the unified interface for all data operations.
// It is composed of smaller, domain-specific interfaces; consumers should
// depend on the smallest one that covers their needs.
type DataStore interface {
	UserRepository
	ProjectRepository
	TaskRepository
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
