package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
)

const leadEventsTable = "lead_events"

var leadEventColumns = []string{
	"id",
	"contact_id",
	"location_id",
	"event_type",
	"occurred_at",
	"source",
	"duration_minutes",
	"outcome",
	"metadata",
	"day_of_week",
	"hour_of_day",
	"received_at",
}

type leadEventRepository struct {
	conn    database.Queryer
	dialect dialect
}

func NewLeadEventRepository(conn database.Conn) LeadEventRepository {
	return &leadEventRepository{
		conn:    conn,
		dialect: dialectOf(conn),
	}
}

func (r *leadEventRepository) Append(ctx context.Context, event *domain.LeadEvent) error {
	var metadata any
	var err error

	if len(event.Metadata) > 0 {
		if metadata, err = marshalJSON(event.Metadata); err != nil {
			return fmt.Errorf("erro ao serializar metadata para JSON: %w", err)
		}
	}

	query, args, err := r.dialect.builder().
		Insert(leadEventsTable).
		Columns(
			"id",
			"contact_id",
			"location_id",
			"event_type",
			"occurred_at",
			"source",
			"duration_minutes",
			"outcome",
			"metadata",
			"day_of_week",
			"hour_of_day",
			"received_at",
		).
		Values(
			event.ID,
			event.ContactID,
			event.LocationID,
			string(event.Type),
			r.dialect.timeValue(event.Timestamp),
			event.Source,
			event.DurationMinutes,
			event.Outcome,
			metadata,
			event.DayOfWeek,
			event.HourOfDay,
			r.dialect.timeValue(event.ReceivedAt),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return execError(err)
	}

	return nil
}

func (r *leadEventRepository) ListByContactID(ctx context.Context, contactID string) ([]*domain.LeadEvent, error) {
	query, args, err := r.dialect.builder().
		Select(leadEventColumns...).
		From(leadEventsTable).
		Where(squirrel.Eq{"contact_id": contactID}).
		OrderBy("occurred_at ASC", "received_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.LeadEvent, 0)
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear eventos: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return events, nil
}

func (r *leadEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := r.dialect.builder().
		Delete(leadEventsTable).
		Where(squirrel.Lt{"received_at": r.dialect.timeValue(cutoff)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *leadEventRepository) scanEvent(row rowScanner) (*domain.LeadEvent, error) {
	event := &domain.LeadEvent{}
	var (
		eventType            string
		occurredAt, received nullTime
		duration             sql.NullFloat64
		metadata             sql.NullString
	)

	err := row.Scan(
		&event.ID,
		&event.ContactID,
		&event.LocationID,
		&eventType,
		&occurredAt,
		&event.Source,
		&duration,
		&event.Outcome,
		&metadata,
		&event.DayOfWeek,
		&event.HourOfDay,
		&received,
	)
	if err != nil {
		return nil, err
	}

	event.Type = domain.EventType(eventType)
	event.Timestamp = occurredAt.Time
	event.ReceivedAt = received.Time
	if duration.Valid {
		d := duration.Float64
		event.DurationMinutes = &d
	}

	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &event.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de metadata: %w", err)
		}
	}

	return event, nil
}
