package storage

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/carson-networks/payment-webhook-service/internal/config"
	"github.com/carson-networks/payment-webhook-service/internal/storage/transaction"
)

type Storage struct {
	DB           *sql.DB
	Transactions transaction.ITransactionTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	return &Storage{
		DB:           db,
		Transactions: transaction.NewTransactionsTable(db),
	}, nil
}
