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

const contactJourneysTable = "contact_journeys"

var contactJourneyColumns = []string{
	"contact_id",
	"location_id",
	"name",
	"email",
	"phone",
	"source",
	"tags",
	"custom_fields",
	"created_at",
	"first_call_attempted_at",
	"first_call_connected_at",
	"first_session_booked_at",
	"first_purchase_at",
	"minutes_to_first_call",
	"minutes_to_first_connection",
	"minutes_to_first_session",
	"minutes_to_purchase",
	"total_calls_attempted",
	"total_calls_connected",
	"current_status",
	"synthesized",
	"updated_at",
}

type contactJourneyRepository struct {
	conn    database.Queryer
	dialect dialect
}

func NewContactJourneyRepository(conn database.Conn) ContactJourneyRepository {
	return &contactJourneyRepository{
		conn:    conn,
		dialect: dialectOf(conn),
	}
}

func (r *contactJourneyRepository) GetByContactID(ctx context.Context, contactID string) (*domain.ContactJourney, error) {
	query, args, err := r.dialect.builder().
		Select(contactJourneyColumns...).
		From(contactJourneysTable).
		Where(squirrel.Eq{"contact_id": contactID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	journey, err := r.scanJourney(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear jornada: %w", err)
	}

	return journey, nil
}

func (r *contactJourneyRepository) List(ctx context.Context, filter domain.ResolvedFilter) ([]*domain.ContactJourney, error) {
	builder := r.dialect.builder().
		Select(contactJourneyColumns...).
		From(contactJourneysTable).
		OrderBy("created_at ASC", "contact_id ASC")

	query, args, err := r.dialect.withFilter(builder, "location_id", "created_at", filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	journeys := make([]*domain.ContactJourney, 0)
	for rows.Next() {
		journey, err := r.scanJourney(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear jornadas: %w", err)
		}
		journeys = append(journeys, journey)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return journeys, nil
}

func (r *contactJourneyRepository) Save(ctx context.Context, journey *domain.ContactJourney) error {
	var tags, customFields any
	var err error

	if len(journey.Tags) > 0 {
		if tags, err = marshalJSON(journey.Tags); err != nil {
			return fmt.Errorf("erro ao serializar tags para JSON: %w", err)
		}
	}
	if len(journey.CustomFields) > 0 {
		if customFields, err = marshalJSON(journey.CustomFields); err != nil {
			return fmt.Errorf("erro ao serializar custom_fields para JSON: %w", err)
		}
	}

	if journey.UpdatedAt.IsZero() {
		journey.UpdatedAt = time.Now().UTC()
	}

	query, args, err := r.dialect.builder().
		Insert(contactJourneysTable).
		Columns(contactJourneyColumns...).
		Values(
			journey.ContactID,
			journey.LocationID,
			journey.Name,
			journey.Email,
			journey.Phone,
			journey.Source,
			tags,
			customFields,
			r.dialect.timeValue(journey.CreatedAt),
			r.dialect.nullableTime(journey.FirstCallAttemptedAt),
			r.dialect.nullableTime(journey.FirstCallConnectedAt),
			r.dialect.nullableTime(journey.FirstSessionBookedAt),
			r.dialect.nullableTime(journey.FirstPurchaseAt),
			journey.MinutesToFirstCall,
			journey.MinutesToFirstConnection,
			journey.MinutesToFirstSession,
			journey.MinutesToPurchase,
			journey.TotalCallsAttempted,
			journey.TotalCallsConnected,
			string(journey.CurrentStatus),
			journey.Synthesized,
			r.dialect.timeValue(journey.UpdatedAt),
		).
		Suffix(`
			ON CONFLICT (contact_id) DO UPDATE SET
				location_id = EXCLUDED.location_id,
				name = EXCLUDED.name,
				email = EXCLUDED.email,
				phone = EXCLUDED.phone,
				source = EXCLUDED.source,
				tags = EXCLUDED.tags,
				custom_fields = EXCLUDED.custom_fields,
				first_call_attempted_at = EXCLUDED.first_call_attempted_at,
				first_call_connected_at = EXCLUDED.first_call_connected_at,
				first_session_booked_at = EXCLUDED.first_session_booked_at,
				first_purchase_at = EXCLUDED.first_purchase_at,
				minutes_to_first_call = EXCLUDED.minutes_to_first_call,
				minutes_to_first_connection = EXCLUDED.minutes_to_first_connection,
				minutes_to_first_session = EXCLUDED.minutes_to_first_session,
				minutes_to_purchase = EXCLUDED.minutes_to_purchase,
				total_calls_attempted = EXCLUDED.total_calls_attempted,
				total_calls_connected = EXCLUDED.total_calls_connected,
				current_status = EXCLUDED.current_status,
				synthesized = EXCLUDED.synthesized,
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

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *contactJourneyRepository) scanJourney(row rowScanner) (*domain.ContactJourney, error) {
	journey := &domain.ContactJourney{}

	var (
		tags, customFields                                         sql.NullString
		createdAt, updatedAt                                       nullTime
		firstAttempt, firstConnection, firstSession, firstPurchase nullTime
		toCall, toConnection, toSession, toPurchase                sql.NullInt64
		status                                                     string
	)

	err := row.Scan(
		&journey.ContactID,
		&journey.LocationID,
		&journey.Name,
		&journey.Email,
		&journey.Phone,
		&journey.Source,
		&tags,
		&customFields,
		&createdAt,
		&firstAttempt,
		&firstConnection,
		&firstSession,
		&firstPurchase,
		&toCall,
		&toConnection,
		&toSession,
		&toPurchase,
		&journey.TotalCallsAttempted,
		&journey.TotalCallsConnected,
		&status,
		&journey.Synthesized,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	journey.CreatedAt = createdAt.Time
	journey.UpdatedAt = updatedAt.Time
	journey.FirstCallAttemptedAt = firstAttempt.Ptr()
	journey.FirstCallConnectedAt = firstConnection.Ptr()
	journey.FirstSessionBookedAt = firstSession.Ptr()
	journey.FirstPurchaseAt = firstPurchase.Ptr()
	journey.MinutesToFirstCall = int64Ptr(toCall)
	journey.MinutesToFirstConnection = int64Ptr(toConnection)
	journey.MinutesToFirstSession = int64Ptr(toSession)
	journey.MinutesToPurchase = int64Ptr(toPurchase)
	journey.CurrentStatus = domain.LeadStatus(status)

	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &journey.Tags); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de tags: %w", err)
		}
	}
	if customFields.Valid && customFields.String != "" {
		if err := json.Unmarshal([]byte(customFields.String), &journey.CustomFields); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de custom_fields: %w", err)
		}
	}

	return journey, nil
}

func int64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}
