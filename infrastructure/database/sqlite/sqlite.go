package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vfg2006/lead-tracker-api/infrastructure/database"
	_ "modernc.org/sqlite"
)

// InMemory abre um banco efêmero, usado nos testes
const InMemory = ":memory:"

type Connection struct {
	*sql.DB
}

var _ database.Conn = (*Connection)(nil)

// NewConnection abre (ou cria) o arquivo SQLite em path
func NewConnection(ctx context.Context, path string) (*Connection, error) {
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório de dados: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao testar conexão sqlite: %w", err)
	}

	// Uma única conexão evita "database is locked" e mantém o banco em memória vivo
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("erro ao aplicar %q: %w", pragma, err)
		}
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Dialect() database.Dialect {
	return database.SQLite
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return database.RunInTransaction(ctx, c.DB, fn)
}
