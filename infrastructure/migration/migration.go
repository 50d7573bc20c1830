// Package migration aplica o schema versionado embutido no binário
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

const schemaVersionTable = "schema_version"

type script struct {
	version int
	name    string
}

// Run aplica, em ordem, as migrações ainda não registradas em schema_version
func Run(ctx context.Context, conn database.Conn) ([]int, error) {
	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, fmt.Errorf("erro ao criar tabela schema_version: %w", err)
	}

	scripts, err := listScripts(conn.Dialect())
	if err != nil {
		return nil, err
	}

	applied, err := Applied(ctx, conn)
	if err != nil {
		return nil, err
	}
	alreadyApplied := make(map[int]bool, len(applied))
	for _, version := range applied {
		alreadyApplied[version] = true
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(placeholderFor(conn.Dialect()))
	newlyApplied := make([]int, 0)

	for _, s := range scripts {
		if alreadyApplied[s.version] {
			continue
		}

		content, err := migrationsFS.ReadFile(s.name)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler migração %s: %w", s.name, err)
		}

		insert, args, err := builder.Insert(schemaVersionTable).Columns("version").Values(s.version).ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir a query: %w", err)
		}

		err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("erro ao aplicar migração %d: %w", s.version, err)
			}
			if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
				return fmt.Errorf("erro ao registrar migração %d: %w", s.version, err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		logrus.WithFields(logrus.Fields{
			"version": s.version,
			"dialect": conn.Dialect(),
		}).Info("Migração aplicada")
		newlyApplied = append(newlyApplied, s.version)
	}

	return newlyApplied, nil
}

// Applied retorna as versões já aplicadas em ordem crescente
func Applied(ctx context.Context, conn database.Conn) ([]int, error) {
	query, args, err := squirrel.
		Select("version").
		From(schemaVersionTable).
		OrderBy("version ASC").
		PlaceholderFormat(placeholderFor(conn.Dialect())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar schema_version: %w", err)
	}
	defer rows.Close()

	versions := make([]int, 0)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("erro ao escanear versão: %w", err)
		}
		versions = append(versions, version)
	}

	return versions, rows.Err()
}

func listScripts(dialect database.Dialect) ([]script, error) {
	dir := string(dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar migrações de %s: %w", dir, err)
	}

	scripts := make([]script, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseVersion(entry.Name())
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script{version: version, name: dir + "/" + entry.Name()})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].version < scripts[j].version
	})

	return scripts, nil
}

func parseVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("erro ao extrair versão de %q: %w", filename, err)
	}
	return version, nil
}

func placeholderFor(dialect database.Dialect) squirrel.PlaceholderFormat {
	if dialect == database.Postgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}
