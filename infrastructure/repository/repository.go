package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vfg2006/lead-tracker-api/infrastructure/database"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository.go -package=mocks

type ContactJourneyRepository interface {
	// GetByContactID retorna nil, nil quando o contato não existe
	GetByContactID(ctx context.Context, contactID string) (*domain.ContactJourney, error)
	Save(ctx context.Context, journey *domain.ContactJourney) error
	List(ctx context.Context, filter domain.ResolvedFilter) ([]*domain.ContactJourney, error)
}

type CallSlotRepository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.CallPerformanceSlot, error)
	Save(ctx context.Context, slot *domain.CallPerformanceSlot) error
	List(ctx context.Context, filter domain.ResolvedFilter) ([]*domain.CallPerformanceSlot, error)
}

type LeadEventRepository interface {
	Append(ctx context.Context, event *domain.LeadEvent) error
	ListByContactID(ctx context.Context, contactID string) ([]*domain.LeadEvent, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Transactor executa fn com repositórios ligados a uma única transação;
// se fn retornar erro nada do que foi escrito por eles é persistido
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(tx *Repositories) error) error
}

// Repositories agrupa os repositórios de um mesmo backend
type Repositories struct {
	Journeys   ContactJourneyRepository
	Slots      CallSlotRepository
	Events     LeadEventRepository
	Transactor Transactor
}

// RunInTransaction usa o Transactor do backend; sem ele fn recebe os próprios repositórios
func (r *Repositories) RunInTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.Transactor == nil {
		return fn(r)
	}
	return r.Transactor.RunInTransaction(ctx, fn)
}

func NewSQLRepositories(conn database.Conn) *Repositories {
	return &Repositories{
		Journeys:   NewContactJourneyRepository(conn),
		Slots:      NewCallSlotRepository(conn),
		Events:     NewLeadEventRepository(conn),
		Transactor: &sqlTransactor{conn: conn},
	}
}

type sqlTransactor struct {
	conn database.Conn
}

func (t *sqlTransactor) RunInTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	d := dialectOf(t.conn)

	return t.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return fn(&Repositories{
			Journeys: &contactJourneyRepository{conn: tx, dialect: d},
			Slots:    &callSlotRepository{conn: tx, dialect: d},
			Events:   &leadEventRepository{conn: tx, dialect: d},
		})
	})
}
