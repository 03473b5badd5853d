package appointment

import (
	"context"
	"sort"
	"sync"
	"time"
)

type fakeCatalog struct {
	services map[string]*Service
	err      error
}

func (f *fakeCatalog) FindServiceByID(_ context.Context, id string) (*Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

type fakeUsers struct {
	users []User
}

func (f *fakeUsers) FindUserByID(_ context.Context, id string) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) ListProfessionals(_ context.Context) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if u.IsProfessional() {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeStore is a map-backed AppointmentStore. Create does not re-check
// conflicts unless strict is set, so tests can observe the locker alone.
type fakeStore struct {
	mu     sync.Mutex
	byID   map[string]Appointment
	strict bool

	createErr   error
	findCalls   int
	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]Appointment)}
}

func (f *fakeStore) put(ap Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[ap.ID] = ap
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &ap, nil
}

func (f *fakeStore) FindByProfessionalAndDate(_ context.Context, professionalID string, date time.Time) ([]Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	return f.scheduledLocked(professionalID, date), nil
}

func (f *fakeStore) scheduledLocked(professionalID string, date time.Time) []Appointment {
	var out []Appointment
	for _, ap := range f.byID {
		if ap.ProfessionalID == professionalID && sameDay(ap.Date, date) && ap.Status == StatusScheduled {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

func (f *fakeStore) Create(_ context.Context, ap *Appointment) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.strict {
		for _, ex := range f.scheduledLocked(ap.ProfessionalID, ap.Date) {
			if overlapsClock(ap.StartTime, ap.EndTime, ex.StartTime, ex.EndTime) {
				return nil, ErrSlotTaken
			}
		}
	}
	f.byID[ap.ID] = *ap
	cp := *ap
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, ap *Appointment, from Status) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[ap.ID]
	if !ok || cur.Status != from {
		return nil, ErrStaleStatus
	}
	f.byID[ap.ID] = *ap
	cp := *ap
	return &cp, nil
}

func (f *fakeStore) HasConflict(_ context.Context, professionalID string, date time.Time, startTime, endTime string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.scheduledLocked(professionalID, date) {
		if overlapsClock(startTime, endTime, ex.StartTime, ex.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) all() []Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Appointment, 0, len(f.byID))
	for _, ap := range f.byID {
		out = append(out, ap)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func haircut() *Service {
	return &Service{ID: "svc-cut", Name: "Haircut", DurationMin: 30, Price: 40, Active: true}
}

func scheduled(id, professionalID, start, end string) Appointment {
	return Appointment{
		ID:             id,
		ServiceID:      "svc-cut",
		ClientID:       "client-1",
		ProfessionalID: professionalID,
		Date:           testDay,
		StartTime:      start,
		EndTime:        end,
		Status:         StatusScheduled,
	}
}

// overlapsClock compares "HH:MM" ranges. Unreadable input counts as a
// conflict.
func overlapsClock(s1, e1, s2, e2 string) bool {
	a, err1 := Minutes(s1)
	b, err2 := Minutes(e1)
	c, err3 := Minutes(s2)
	d, err4 := Minutes(e2)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return true
	}
	return Overlaps(a, b, c, d)
}
