package appointment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

type Slot struct {
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	ProfessionalID   string `json:"professionalId"`
	ProfessionalName string `json:"professionalName"`
}

type interval struct {
	start int
	end   int
}

// Calculator derives bookable slots from the working window and the
// professionals' SCHEDULED appointments. It holds no mutable state and is
// safe for concurrent use.
type Calculator struct {
	services ServiceLookup
	users    UserLookup
	store    AppointmentStore
	policy   Policy

	// maximum number of professionals whose schedules load in parallel
	fanOut int
}

func NewCalculator(
	services ServiceLookup,
	users UserLookup,
	store AppointmentStore,
	policy Policy,
) *Calculator {
	return &Calculator{
		services: services,
		users:    users,
		store:    store,
		policy:   policy,
		fanOut:   8,
	}
}

// ComputeAvailableSlots returns every free slot for serviceID on date across
// all professionals, ordered by start time, then professional name, then
// professional id.
func (c *Calculator) ComputeAvailableSlots(
	ctx context.Context,
	serviceID string,
	date time.Time,
) ([]Slot, error) {

	svc, err := loadBookableService(ctx, c.services, serviceID)
	if err != nil {
		return nil, err
	}

	professionals, err := c.users.ListProfessionals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	if len(professionals) == 0 {
		return []Slot{}, nil
	}

	day := DateOnly(date)
	busy := make([][]interval, len(professionals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanOut)
	for i, p := range professionals {
		g.Go(func() error {
			aps, err := c.store.FindByProfessionalAndDate(gctx, p.ID, day)
			if err != nil {
				return fmt.Errorf("load schedule of %s: %w", p.ID, err)
			}
			busy[i] = busyIntervals(aps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slots := []Slot{}
	for i, p := range professionals {
		slots = append(slots, c.freeSlots(svc.DurationMin, busy[i], p)...)
	}

	sortSlots(slots)
	return slots, nil
}

func (c *Calculator) freeSlots(duration int, busy []interval, p User) []Slot {
	var out []Slot
	for _, start := range c.policy.Candidates() {
		end := start + duration
		if !c.policy.Fits(start, end) {
			continue
		}
		if overlapsAny(start, end, busy) {
			continue
		}
		out = append(out, Slot{
			StartTime:        FormatClock(start),
			EndTime:          FormatClock(end),
			ProfessionalID:   p.ID,
			ProfessionalName: p.Name,
		})
	}
	return out
}

func busyIntervals(aps []Appointment) []interval {
	out := make([]interval, 0, len(aps))
	for _, ap := range aps {
		if ap.Status != "" && ap.Status != StatusScheduled {
			continue
		}
		s, err1 := clockOrOverflow(ap.StartTime)
		e, err2 := clockOrOverflow(ap.EndTime)
		if err1 != nil || err2 != nil {
			// unreadable rows block the whole day
			s, e = 0, 2*minutesPerDay
		}
		out = append(out, interval{start: s, end: e})
	}
	return out
}

func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}

func sortSlots(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if a.ProfessionalName != b.ProfessionalName {
			return a.ProfessionalName < b.ProfessionalName
		}
		return a.ProfessionalID < b.ProfessionalID
	})
}

func loadBookableService(ctx context.Context, services ServiceLookup, id string) (*Service, error) {
	svc, err := services.FindServiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if svc == nil {
		return nil, notFound("service_not_found")
	}
	if !svc.Active {
		return nil, invalidState("service_inactive")
	}
	return svc, nil
}
