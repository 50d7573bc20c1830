// Package memory implementa os repositórios em memória, usados em testes e no driver "memory"
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/lead-tracker-api/infrastructure/repository"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
)

func NewRepositories() *repository.Repositories {
	journeys := &contactJourneyRepository{journeys: make(map[string]*domain.ContactJourney)}
	slots := &callSlotRepository{slots: make(map[string]domain.CallPerformanceSlot)}
	events := &leadEventRepository{}

	return &repository.Repositories{
		Journeys:   journeys,
		Slots:      slots,
		Events:     events,
		Transactor: &transactor{journeys: journeys, slots: slots, events: events},
	}
}

type contactJourneyRepository struct {
	mu       sync.RWMutex
	journeys map[string]*domain.ContactJourney
}

func NewContactJourneyRepository() repository.ContactJourneyRepository {
	return &contactJourneyRepository{journeys: make(map[string]*domain.ContactJourney)}
}

func (r *contactJourneyRepository) GetByContactID(_ context.Context, contactID string) (*domain.ContactJourney, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	journey, ok := r.journeys[contactID]
	if !ok {
		return nil, nil
	}
	return journey.Clone(), nil
}

func (r *contactJourneyRepository) Save(_ context.Context, journey *domain.ContactJourney) error {
	if journey.UpdatedAt.IsZero() {
		journey.UpdatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.journeys[journey.ContactID] = journey.Clone()
	return nil
}

func (r *contactJourneyRepository) List(_ context.Context, filter domain.ResolvedFilter) ([]*domain.ContactJourney, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	journeys := make([]*domain.ContactJourney, 0)
	for _, journey := range r.journeys {
		if filter.MatchesJourney(journey) {
			journeys = append(journeys, journey.Clone())
		}
	}

	sort.Slice(journeys, func(i, j int) bool {
		if !journeys[i].CreatedAt.Equal(journeys[j].CreatedAt) {
			return journeys[i].CreatedAt.Before(journeys[j].CreatedAt)
		}
		return journeys[i].ContactID < journeys[j].ContactID
	})

	return journeys, nil
}

type callSlotRepository struct {
	mu    sync.RWMutex
	slots map[string]domain.CallPerformanceSlot
}

func NewCallSlotRepository() repository.CallSlotRepository {
	return &callSlotRepository{slots: make(map[string]domain.CallPerformanceSlot)}
}

func (r *callSlotRepository) Get(_ context.Context, key domain.SlotKey) (*domain.CallPerformanceSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[key.String()]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r *callSlotRepository) Save(_ context.Context, slot *domain.CallPerformanceSlot) error {
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[slot.Key().String()] = *slot
	return nil
}

func (r *callSlotRepository) List(_ context.Context, filter domain.ResolvedFilter) ([]*domain.CallPerformanceSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]*domain.CallPerformanceSlot, 0)
	for _, slot := range r.slots {
		slot := slot
		if filter.MatchesSlot(&slot) {
			slots = append(slots, &slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		si, sj := slots[i].StartsAt, slots[j].StartsAt
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return slots[i].LocationID < slots[j].LocationID
	})

	return slots, nil
}

type leadEventRepository struct {
	mu     sync.RWMutex
	events []domain.LeadEvent
}

func NewLeadEventRepository() repository.LeadEventRepository {
	return &leadEventRepository{}
}

func (r *leadEventRepository) Append(_ context.Context, event *domain.LeadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, *event)
	return nil
}

func (r *leadEventRepository) ListByContactID(_ context.Context, contactID string) ([]*domain.LeadEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*domain.LeadEvent, 0)
	for i := range r.events {
		if r.events[i].ContactID == contactID {
			event := r.events[i]
			events = append(events, &event)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return events, nil
}

func (r *leadEventRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	var deleted int64
	for _, event := range r.events {
		if event.ReceivedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, event)
	}
	r.events = kept

	return deleted, nil
}

// transactor acumula as escritas de jornadas e slots e só as aplica quando fn termina sem erro.
// O log bruto de eventos é gravado direto.
type transactor struct {
	journeys *contactJourneyRepository
	slots    *callSlotRepository
	events   *leadEventRepository
}

func (t *transactor) RunInTransaction(ctx context.Context, fn func(tx *repository.Repositories) error) error {
	journeys := &pendingJourneys{base: t.journeys, saved: make(map[string]*domain.ContactJourney)}
	slots := &pendingSlots{base: t.slots, saved: make(map[string]domain.CallPerformanceSlot)}

	err := fn(&repository.Repositories{
		Journeys: journeys,
		Slots:    slots,
		Events:   t.events,
	})
	if err != nil {
		return err
	}

	t.journeys.mu.Lock()
	for contactID, journey := range journeys.saved {
		t.journeys.journeys[contactID] = journey
	}
	t.journeys.mu.Unlock()

	t.slots.mu.Lock()
	for key, slot := range slots.saved {
		t.slots.slots[key] = slot
	}
	t.slots.mu.Unlock()

	return nil
}

type pendingJourneys struct {
	base  *contactJourneyRepository
	saved map[string]*domain.ContactJourney
}

func (p *pendingJourneys) GetByContactID(ctx context.Context, contactID string) (*domain.ContactJourney, error) {
	if journey, ok := p.saved[contactID]; ok {
		return journey.Clone(), nil
	}
	return p.base.GetByContactID(ctx, contactID)
}

func (p *pendingJourneys) Save(_ context.Context, journey *domain.ContactJourney) error {
	if journey.UpdatedAt.IsZero() {
		journey.UpdatedAt = time.Now().UTC()
	}
	p.saved[journey.ContactID] = journey.Clone()
	return nil
}

func (p *pendingJourneys) List(ctx context.Context, filter domain.ResolvedFilter) ([]*domain.ContactJourney, error) {
	return p.base.List(ctx, filter)
}

type pendingSlots struct {
	base  *callSlotRepository
	saved map[string]domain.CallPerformanceSlot
}

func (p *pendingSlots) Get(ctx context.Context, key domain.SlotKey) (*domain.CallPerformanceSlot, error) {
	if slot, ok := p.saved[key.String()]; ok {
		return &slot, nil
	}
	return p.base.Get(ctx, key)
}

func (p *pendingSlots) Save(_ context.Context, slot *domain.CallPerformanceSlot) error {
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = time.Now().UTC()
	}
	p.saved[slot.Key().String()] = *slot
	return nil
}

func (p *pendingSlots) List(ctx context.Context, filter domain.ResolvedFilter) ([]*domain.CallPerformanceSlot, error) {
	return p.base.List(ctx, filter)
}
