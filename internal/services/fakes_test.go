package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"eventmanager/internal/domain"
)

// fakeStore is an in-memory database shared by the fake repositories. Map access is guarded by mu;
// GetByIDForUpdate takes a per-row lock that the fake transactor holds until the unit of work ends,
// so only the row locks serialise concurrent transactions.
type fakeStore struct {
	mu          sync.Mutex
	events      map[int64]domain.Event
	attendees   map[int64]domain.Attendee
	speakers    map[int64]domain.Speaker
	assignments map[[2]int64]domain.EventSpeaker
	nextID      int64
	rowLocks    map[string]*sync.Mutex

	// locks records the kind of every row lock requested, in order.
	locks     []string
	adjustErr error
	createErr error
	// readDelay pauses every event read after the row is fetched.
	readDelay time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:      make(map[int64]domain.Event),
		attendees:   make(map[int64]domain.Attendee),
		speakers:    make(map[int64]domain.Speaker),
		assignments: make(map[[2]int64]domain.EventSpeaker),
		nextID:      1,
		rowLocks:    make(map[string]*sync.Mutex),
	}
}

// id hands out the next identifier. Callers hold mu.
func (s *fakeStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// repos returns repositories outside any transaction.
func (s *fakeStore) repos() domain.Repositories {
	return s.txRepos(nil)
}

func (s *fakeStore) txRepos(tx *fakeTx) domain.Repositories {
	return domain.Repositories{
		Events:      &fakeEventRepo{s: s, tx: tx},
		Attendees:   &fakeAttendeeRepo{s: s, tx: tx},
		Speakers:    &fakeSpeakerRepo{s: s, tx: tx},
		Assignments: &fakeAssignmentRepo{s: s, tx: tx},
	}
}

// lockRow blocks until tx owns the row lock for kind/id. Outside a transaction the request is only
// recorded.
func (s *fakeStore) lockRow(tx *fakeTx, kind string, id int64) {
	key := fmt.Sprintf("%s:%d", kind, id)
	s.mu.Lock()
	s.locks = append(s.locks, kind)
	m, ok := s.rowLocks[key]
	if !ok {
		m = &sync.Mutex{}
		s.rowLocks[key] = m
	}
	s.mu.Unlock()

	if tx == nil {
		return
	}
	if _, held := tx.held[key]; held {
		return
	}
	m.Lock()
	tx.held[key] = m
}

// confirmedCount counts confirmed attendees of eventID.
func (s *fakeStore) confirmedCount(eventID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.attendees {
		if a.EventID == eventID && a.RegistrationStatus == domain.StatusConfirmed {
			n++
		}
	}
	return n
}

func (s *fakeStore) addEvent(e domain.Event) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	s.events[e.ID] = e
	return &e
}

func (s *fakeStore) addAttendee(a domain.Attendee) *domain.Attendee {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	s.attendees[a.ID] = a
	return &a
}

// fakeTx is one unit of work: the row locks it holds and the writes to revert on rollback.
type fakeTx struct {
	held map[string]*sync.Mutex
	undo []func()
}

// remember records how to revert m[k] to its current state. Callers hold the store mutex.
func remember[K comparable, V any](tx *fakeTx, m map[K]V, k K) {
	if tx == nil {
		return
	}
	prev, existed := m[k]
	tx.undo = append(tx.undo, func() {
		if existed {
			m[k] = prev
		} else {
			delete(m, k)
		}
	})
}

type fakeTransactor struct {
	s         *fakeStore
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (t *fakeTransactor) RunInTransaction(ctx context.Context, fn func(repos domain.Repositories) error) error {
	tx := &fakeTx{held: make(map[string]*sync.Mutex)}
	defer func() {
		for _, m := range tx.held {
			m.Unlock()
		}
	}()

	if err := fn(t.s.txRepos(tx)); err != nil {
		t.s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		t.s.mu.Unlock()
		t.mu.Lock()
		t.rollbacks++
		t.mu.Unlock()
		return err
	}
	t.mu.Lock()
	t.commits++
	t.mu.Unlock()
	return nil
}

type fakeEventRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (r *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return r.s.createErr
	}
	e.ID = r.s.id()
	remember(r.tx, r.s.events, e.ID)
	r.s.events[e.ID] = *e
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	r.s.mu.Lock()
	e, ok := r.s.events[id]
	delay := r.s.readDelay
	r.s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	return &e, nil
}

func (r *fakeEventRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	r.s.lockRow(r.tx, "event", id)
	return r.GetByID(ctx, id)
}

func (r *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.s.events {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, id int64, p domain.EventPatch) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v, ok := p.Title.Get(); ok {
		e.Title = v
	}
	if v, ok := p.Description.Get(); ok {
		e.Description = v
	}
	if v, ok := p.Location.Get(); ok {
		e.Location = v
	}
	if v, ok := p.StartDate.Get(); ok {
		e.StartDate = v
	}
	if v, ok := p.EndDate.Get(); ok {
		e.EndDate = v
	}
	if v, ok := p.MaxCapacity.Get(); ok {
		e.MaxCapacity = v
	}
	if v, ok := p.IsActive.Get(); ok {
		e.IsActive = v
	}
	e.UpdatedAt = e.UpdatedAt.Add(time.Second)
	remember(r.tx, r.s.events, id)
	r.s.events[id] = e
	return &e, nil
}

// AdjustBookings applies delta to the stored value, like the relative UPDATE in Postgres.
func (r *fakeEventRepo) AdjustBookings(ctx context.Context, id int64, delta int) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.adjustErr != nil {
		return nil, r.s.adjustErr
	}
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.CurrentBookings, _ = domain.ApplyDelta(e.CurrentBookings, delta)
	remember(r.tx, r.s.events, id)
	r.s.events[id] = e
	return &e, nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k := range r.s.assignments {
		if k[0] == id {
			remember(r.tx, r.s.assignments, k)
			delete(r.s.assignments, k)
		}
	}
	for k, a := range r.s.attendees {
		if a.EventID == id {
			remember(r.tx, r.s.attendees, k)
			delete(r.s.attendees, k)
		}
	}
	if _, ok := r.s.events[id]; !ok {
		return false, nil
	}
	remember(r.tx, r.s.events, id)
	delete(r.s.events, id)
	return true, nil
}

type fakeAttendeeRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (r *fakeAttendeeRepo) Create(ctx context.Context, a *domain.Attendee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return r.s.createErr
	}
	a.ID = r.s.id()
	remember(r.tx, r.s.attendees, a.ID)
	r.s.attendees[a.ID] = *a
	return nil
}

func (r *fakeAttendeeRepo) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attendees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAttendeeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Attendee, error) {
	r.s.lockRow(r.tx, "attendee", id)
	return r.GetByID(ctx, id)
}

func (r *fakeAttendeeRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Attendee
	for _, a := range r.s.attendees {
		if a.EventID == eventID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAttendeeRepo) List(ctx context.Context) ([]*domain.Attendee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Attendee
	for _, a := range r.s.attendees {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAttendeeRepo) Update(ctx context.Context, id int64, p domain.AttendeePatch) (*domain.Attendee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attendees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v, ok := p.Name.Get(); ok {
		a.Name = v
	}
	if v, ok := p.Email.Get(); ok {
		a.Email = v
	}
	if v, ok := p.RegistrationStatus.Get(); ok {
		a.RegistrationStatus = v
	}
	remember(r.tx, r.s.attendees, id)
	r.s.attendees[id] = a
	return &a, nil
}

func (r *fakeAttendeeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.attendees[id]; !ok {
		return false, nil
	}
	remember(r.tx, r.s.attendees, id)
	delete(r.s.attendees, id)
	return true, nil
}

type fakeSpeakerRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (r *fakeSpeakerRepo) Create(ctx context.Context, sp *domain.Speaker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp.ID = r.s.id()
	remember(r.tx, r.s.speakers, sp.ID)
	r.s.speakers[sp.ID] = *sp
	return nil
}

func (r *fakeSpeakerRepo) GetByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sp, nil
}

func (r *fakeSpeakerRepo) List(ctx context.Context) ([]*domain.Speaker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Speaker
	for _, sp := range r.s.speakers {
		sp := sp
		out = append(out, &sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSpeakerRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Speaker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Speaker
	for k := range r.s.assignments {
		if k[0] == eventID {
			sp := r.s.speakers[k[1]]
			out = append(out, &sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSpeakerRepo) Update(ctx context.Context, id int64, p domain.SpeakerPatch) (*domain.Speaker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v, ok := p.Name.Get(); ok {
		sp.Name = v
	}
	if v, ok := p.Bio.Get(); ok {
		sp.Bio = v
	}
	if v, ok := p.Email.Get(); ok {
		sp.Email = v
	}
	if v, ok := p.Phone.Get(); ok {
		sp.Phone = v
	}
	if v, ok := p.Expertise.Get(); ok {
		sp.Expertise = v
	}
	remember(r.tx, r.s.speakers, id)
	r.s.speakers[id] = sp
	return &sp, nil
}

func (r *fakeSpeakerRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k := range r.s.assignments {
		if k[1] == id {
			remember(r.tx, r.s.assignments, k)
			delete(r.s.assignments, k)
		}
	}
	if _, ok := r.s.speakers[id]; !ok {
		return false, nil
	}
	remember(r.tx, r.s.speakers, id)
	delete(r.s.speakers, id)
	return true, nil
}

type fakeAssignmentRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, es *domain.EventSpeaker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{es.EventID, es.SpeakerID}
	if _, ok := r.s.assignments[key]; ok {
		return domain.ErrDuplicateAssignment
	}
	if _, ok := r.s.events[es.EventID]; !ok {
		return domain.ErrNotFound
	}
	es.ID = r.s.id()
	remember(r.tx, r.s.assignments, key)
	r.s.assignments[key] = *es
	return nil
}

func (r *fakeAssignmentRepo) Exists(ctx context.Context, eventID, speakerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.assignments[[2]int64{eventID, speakerID}]
	return ok, nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, eventID, speakerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{eventID, speakerID}
	if _, ok := r.s.assignments[key]; !ok {
		return false, nil
	}
	remember(r.tx, r.s.assignments, key)
	delete(r.s.assignments, key)
	return true, nil
}

// newTestLogger returns a text logger writing into buf.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
