package repositories

import (
	"fmt"
)

// Repositories bundles the store handles injected into the services at
// construction. Lifecycle is bound to process startup; no per-module store
// clients.
type Repositories struct {
	Users UserRepository
	Cards CardRepository
}

// Config selects and parameterizes the document-store backend.
type Config struct {
	Type   string // memory, dynamodb, postgres
	DSN    string // for postgres
	Dynamo DynamoConfig
}

// New builds the repositories for the configured backend.
func New(cfg Config) (*Repositories, error) {
	switch cfg.Type {
	case "memory":
		return &Repositories{
			Users: NewMemoryUserRepository(),
			Cards: NewMemoryCardRepository(),
		}, nil

	case "dynamodb":
		client, err := NewDynamoClient(cfg.Dynamo)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Users: NewDynamoUserRepository(client, cfg.Dynamo.UsersTable),
			Cards: NewDynamoCardRepository(client, cfg.Dynamo.CardsTable),
		}, nil

	case "postgres":
		db, err := OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Users: NewGormUserRepository(db),
			Cards: NewGormCardRepository(db),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
