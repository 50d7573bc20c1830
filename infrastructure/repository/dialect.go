package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// sqliteTimeLayout tem largura fixa para que a comparação textual preserve a ordem cronológica
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

var timeLayouts = []string{
	sqliteTimeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type dialect struct {
	name database.Dialect
}

func dialectOf(conn database.Conn) dialect {
	return dialect{name: conn.Dialect()}
}

func (d dialect) builder() squirrel.StatementBuilderType {
	if d.name == database.Postgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// timeValue converte o instante para o formato de parâmetro do dialeto
func (d dialect) timeValue(t time.Time) any {
	if d.name == database.SQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

func (d dialect) nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return d.timeValue(*t)
}

// withFilter aplica escopo de location e janela como predicados parametrizados
func (d dialect) withFilter(
	query squirrel.SelectBuilder,
	locationColumn, timeColumn string,
	filter domain.ResolvedFilter,
) squirrel.SelectBuilder {
	if !filter.Location.IsAll() {
		query = query.Where(squirrel.Eq{locationColumn: filter.Location.LocationID()})
	}

	query = query.Where(squirrel.GtOrEq{timeColumn: d.timeValue(filter.Range.Start)})
	if filter.Range.End != nil {
		query = query.Where(squirrel.Lt{timeColumn: d.timeValue(*filter.Range.End)})
	}

	return query
}

// nullTime aceita os formatos retornados por lib/pq (time.Time) e pelo sqlite (texto)
type nullTime struct {
	Time  time.Time
	Valid bool
}

func (n *nullTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v.UTC(), true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	default:
		return fmt.Errorf("tipo de data não suportado: %T", value)
	}
}

func (n *nullTime) parse(value string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			n.Time, n.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("formato de data inválido: %q", value)
}

func (n nullTime) Ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func marshalJSON(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// execError inclui o código do Postgres quando disponível
func execError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
