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

const callSlotsTable = "call_performance_slots"

var callSlotColumns = []string{
	"location_id",
	"slot_date",
	"hour",
	"slot_start",
	"total_calls",
	"successful_calls",
	"avg_call_duration",
	"updated_at",
}

type callSlotRepository struct {
	conn    database.Queryer
	dialect dialect
}

func NewCallSlotRepository(conn database.Conn) CallSlotRepository {
	return &callSlotRepository{
		conn:    conn,
		dialect: dialectOf(conn),
	}
}

func (r *callSlotRepository) Get(ctx context.Context, key domain.SlotKey) (*domain.CallPerformanceSlot, error) {
	query, args, err := r.dialect.builder().
		Select(callSlotColumns...).
		From(callSlotsTable).
		Where(squirrel.Eq{
			"location_id": key.LocationID,
			"slot_date":   key.Date.Format(time.DateOnly),
			"hour":        key.Hour,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	slot, err := r.scanSlot(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear slot: %w", err)
	}

	return slot, nil
}

func (r *callSlotRepository) List(ctx context.Context, filter domain.ResolvedFilter) ([]*domain.CallPerformanceSlot, error) {
	builder := r.dialect.builder().
		Select(callSlotColumns...).
		From(callSlotsTable).
		OrderBy("slot_start ASC", "location_id ASC")

	query, args, err := r.dialect.withFilter(builder, "location_id", "slot_start", filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	slots := make([]*domain.CallPerformanceSlot, 0)
	for rows.Next() {
		slot, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear slots: %w", err)
		}
		slots = append(slots, slot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return slots, nil
}

// Save grava os contadores; success_rate é sempre recalculada a partir deles
func (r *callSlotRepository) Save(ctx context.Context, slot *domain.CallPerformanceSlot) error {
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = time.Now().UTC()
	}

	query, args, err := r.dialect.builder().
		Insert(callSlotsTable).
		Columns(
			"location_id",
			"slot_date",
			"hour",
			"slot_start",
			"total_calls",
			"successful_calls",
			"avg_call_duration",
			"success_rate",
			"updated_at",
		).
		Values(
			slot.LocationID,
			slot.Date.Format(time.DateOnly),
			slot.Hour,
			r.dialect.timeValue(slot.StartsAt),
			slot.TotalCalls,
			slot.SuccessfulCalls,
			slot.AvgCallDuration,
			slot.SuccessRate(),
			r.dialect.timeValue(slot.UpdatedAt),
		).
		Suffix(`
			ON CONFLICT (location_id, slot_date, hour) DO UPDATE SET
				slot_start = EXCLUDED.slot_start,
				total_calls = EXCLUDED.total_calls,
				successful_calls = EXCLUDED.successful_calls,
				avg_call_duration = EXCLUDED.avg_call_duration,
				success_rate = EXCLUDED.success_rate,
				updated_at = EXCLUDED.updated_at
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return execError(err)
	}

	return nil
}

func (r *callSlotRepository) scanSlot(row rowScanner) (*domain.CallPerformanceSlot, error) {
	slot := &domain.CallPerformanceSlot{}
	var slotDate, slotStart, updatedAt nullTime

	err := row.Scan(
		&slot.LocationID,
		&slotDate,
		&slot.Hour,
		&slotStart,
		&slot.TotalCalls,
		&slot.SuccessfulCalls,
		&slot.AvgCallDuration,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d := slotDate.Time
	slot.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	slot.StartsAt = slotStart.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}
