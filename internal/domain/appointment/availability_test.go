package appointment

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newCalculator(store *fakeStore, users []User, services ...*Service) *Calculator {
	catalog := &fakeCatalog{services: map[string]*Service{}}
	for _, s := range services {
		catalog.services[s.ID] = s
	}
	return NewCalculator(catalog, &fakeUsers{users: users}, store, DefaultPolicy())
}

func startTimes(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestComputeAvailableSlots_ExcludesBookedSlot(t *testing.T) {
	store := newFakeStore()
	store.put(scheduled("a1", "pro-1", "10:00", "10:30"))

	calc := newCalculator(store, []User{{ID: "pro-1", Name: "Ana", Role: RoleProfessional}}, haircut())

	slots, err := calc.ComputeAvailableSlots(context.Background(), "svc-cut", testDay)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots error: %v", err)
	}
	got := map[string]bool{}
	for _, s := range slots {
		got[s.StartTime] = true
	}
	if got["10:00"] {
		t.Fatalf("10:00 must be excluded")
	}
	if !got["09:30"] || !got["10:30"] {
		t.Fatalf("09:30 and 10:30 must be offered, got %v", startTimes(slots))
	}
	if len(slots) != 19 {
		t.Fatalf("slots = %d, want 19", len(slots))
	}
}

func TestComputeAvailableSlots_LongServiceStopsAtWindowEnd(t *testing.T) {
	svc := &Service{ID: "svc-color", Name: "Color", DurationMin: 90, Active: true}
	calc := newCalculator(newFakeStore(), []User{{ID: "pro-1", Name: "Ana", Role: RoleProfessional}}, svc)

	slots, err := calc.ComputeAvailableSlots(context.Background(), "svc-color", testDay)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots error: %v", err)
	}
	last := slots[len(slots)-1]
	if last.StartTime != "16:30" || last.EndTime != "18:00" {
		t.Fatalf("last slot = %s-%s, want 16:30-18:00", last.StartTime, last.EndTime)
	}
}

func TestComputeAvailableSlots_EverySlotFitsAndIsFree(t *testing.T) {
	store := newFakeStore()
	store.put(scheduled("a1", "pro-1", "08:00", "09:15"))
	store.put(scheduled("a2", "pro-1", "13:10", "13:40"))
	store.put(scheduled("a3", "pro-2", "12:00", "14:00"))
	cancelled := scheduled("a4", "pro-2", "08:00", "12:00")
	cancelled.Status = StatusCancelled
	store.put(cancelled)

	users := []User{
		{ID: "pro-1", Name: "Ana", Role: RoleProfessional},
		{ID: "pro-2", Name: "Bruno", Role: RoleProfessional},
	}
	svc := &Service{ID: "svc-45", Name: "Beard", DurationMin: 45, Active: true}
	calc := newCalculator(store, users, svc)

	slots, err := calc.ComputeAvailableSlots(context.Background(), "svc-45", testDay)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots error: %v", err)
	}

	for _, s := range slots {
		if s.StartTime < "08:00" || s.EndTime > "18:00" {
			t.Fatalf("slot %+v outside working window", s)
		}
		for _, ap := range store.all() {
			if ap.ProfessionalID != s.ProfessionalID || ap.Status != StatusScheduled {
				continue
			}
			if overlapsClock(s.StartTime, s.EndTime, ap.StartTime, ap.EndTime) {
				t.Fatalf("slot %+v overlaps %+v", s, ap)
			}
		}
	}

	var sawBrunoMorning bool
	for _, s := range slots {
		if s.ProfessionalID == "pro-2" && s.StartTime == "08:00" {
			sawBrunoMorning = true
		}
	}
	if !sawBrunoMorning {
		t.Fatalf("cancelled appointment must not block availability")
	}
}

func TestComputeAvailableSlots_SortedWithNameTieBreak(t *testing.T) {
	users := []User{
		{ID: "pro-z", Name: "Zoe", Role: RoleProfessional},
		{ID: "pro-a", Name: "Ana", Role: RoleProfessional},
	}
	calc := newCalculator(newFakeStore(), users, haircut())

	slots, err := calc.ComputeAvailableSlots(context.Background(), "svc-cut", testDay)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots error: %v", err)
	}
	if len(slots) != 40 {
		t.Fatalf("slots = %d, want 40", len(slots))
	}
	if slots[0].ProfessionalName != "Ana" || slots[1].ProfessionalName != "Zoe" {
		t.Fatalf("tie-break = %s,%s, want Ana,Zoe", slots[0].ProfessionalName, slots[1].ProfessionalName)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i-1].StartTime > slots[i].StartTime {
			t.Fatalf("slots not sorted at %d: %s > %s", i, slots[i-1].StartTime, slots[i].StartTime)
		}
	}
}

func TestComputeAvailableSlots_Idempotent(t *testing.T) {
	store := newFakeStore()
	store.put(scheduled("a1", "pro-1", "11:00", "12:00"))
	users := []User{
		{ID: "pro-1", Name: "Ana", Role: RoleProfessional},
		{ID: "pro-2", Name: "Ana", Role: RoleProfessional},
	}
	calc := newCalculator(store, users, haircut())

	first, err := calc.ComputeAvailableSlots(context.Background(), "svc-cut", testDay)
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	second, err := calc.ComputeAvailableSlots(context.Background(), "svc-cut", testDay)
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ between calls")
	}
	if len(store.all()) != 1 {
		t.Fatalf("availability must not write")
	}
}

func TestComputeAvailableSlots_NoProfessionals(t *testing.T) {
	calc := newCalculator(newFakeStore(), nil, haircut())

	slots, err := calc.ComputeAvailableSlots(context.Background(), "svc-cut", testDay)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots error: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("slots = %#v, want empty non-nil", slots)
	}
}

func TestComputeAvailableSlots_ServiceErrors(t *testing.T) {
	inactive := haircut()
	inactive.ID = "svc-off"
	inactive.Active = false
	calc := newCalculator(newFakeStore(), nil, inactive)

	_, err := calc.ComputeAvailableSlots(context.Background(), "missing", testDay)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing service err = %v, want not found", err)
	}

	_, err = calc.ComputeAvailableSlots(context.Background(), "svc-off", testDay)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("inactive service err = %v, want invalid state", err)
	}
}

func TestComputeAvailableSlots_PropagatesLookupFailure(t *testing.T) {
	boom := errors.New("db down")
	calc := NewCalculator(&fakeCatalog{err: boom}, &fakeUsers{}, newFakeStore(), DefaultPolicy())

	_, err := calc.ComputeAvailableSlots(context.Background(), "svc-cut", testDay)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if KindOf(err) != "" {
		t.Fatalf("infrastructure failure must not be a business error")
	}
}
