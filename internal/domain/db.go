package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres, etc.) owns its own migration
// files and strategy, ensuring the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

// Store groups the owner-scoped repositories that take part in a single
// unit of work.
type Store interface {
	Tags() TagRepository
	Ingredients() IngredientRepository
	Recipes() RecipeRepository
}

// Transactor runs fn against a Store whose repositories share one
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(Store) error) error
}
