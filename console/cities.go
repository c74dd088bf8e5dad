package console

import (
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jrsteele09/courier-admin/internal/utils"
	"github.com/jrsteele09/courier-admin/session"
)

type CityAction string

const (
	CityAdd    CityAction = "add"
	CityRemove CityAction = "remove"
	CityReset  CityAction = "reset"
	CityApply  CityAction = "apply"
)

// CitySelection is a courier's saved cities plus the unsaved edits made on the cities page.
type CitySelection struct {
	mu        sync.Mutex
	owner     string
	loaded    bool
	saved     []string
	selected  []string
	available []string
}

func NewCitySelection() *CitySelection {
	return &CitySelection{}
}

// Load replaces the selection with the owner's saved cities.
func (s *CitySelection) Load(owner string, saved, available []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = owner
	s.loaded = true
	s.saved = utils.CloneStrings(saved)
	s.selected = utils.CloneStrings(saved)
	s.available = utils.CloneStrings(available)
}

// LoadedFor reports whether the selection already belongs to owner.
func (s *CitySelection) LoadedFor(owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && s.owner == owner
}

// Clear forgets the selection, e.g. after sign-out.
func (s *CitySelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner, s.loaded = "", false
	s.saved, s.selected, s.available = nil, nil, nil
}

// Add selects city. Selecting a city twice is a no-op.
func (s *CitySelection) Add(city string) {
	city = strings.TrimSpace(city)
	if city == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.selected, city) {
		s.selected = append(s.selected, city)
	}
}

func (s *CitySelection) Remove(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = slices.DeleteFunc(s.selected, func(c string) bool { return c == city })
}

// Reset discards unsaved edits.
func (s *CitySelection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = utils.CloneStrings(s.saved)
}

// MarkSaved records that the current selection was persisted.
func (s *CitySelection) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = utils.CloneStrings(s.selected)
}

// HasChanges compares the selection with the saved cities, ignoring order.
func (s *CitySelection) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selected) != len(s.saved) {
		return true
	}
	for _, c := range s.selected {
		if !slices.Contains(s.saved, c) {
			return true
		}
	}
	return false
}

func (s *CitySelection) Saved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.CloneStrings(s.saved)
}

func (s *CitySelection) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.CloneStrings(s.selected)
}

// Filtered lists the available cities not yet selected whose names contain search,
// ignoring case.
func (s *CitySelection) Filtered(search string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]string, 0, len(s.available))
	for _, c := range s.available {
		if slices.Contains(s.selected, c) {
			continue
		}
		if strings.Contains(strings.ToLower(c), needle) {
			out = append(out, c)
		}
	}
	return out
}

type CitiesView struct {
	Search     string
	Selected   []string
	Available  []string
	HasChanges bool
}

func (c *Console) CitiesPage(ctx context.Context, claims session.Claims, q Query) CitiesView {
	if !c.cities.LoadedFor(claims.Subject) {
		c.loadCities(ctx, claims.Subject)
	}
	return CitiesView{
		Search:     q.Search,
		Selected:   c.cities.Selected(),
		Available:  c.cities.Filtered(q.Search),
		HasChanges: c.cities.HasChanges(),
	}
}

// ChangeCities applies one edit to the signed-in courier's city selection.
func (c *Console) ChangeCities(ctx context.Context, claims session.Claims, action CityAction, city string) bool {
	if !c.cities.LoadedFor(claims.Subject) {
		c.loadCities(ctx, claims.Subject)
	}

	switch action {
	case CityAdd:
		c.cities.Add(city)
	case CityRemove:
		c.cities.Remove(city)
	case CityReset:
		c.cities.Reset()
		c.notes.Success("Changes discarded", "Saved cities restored")
	case CityApply:
		if !c.couriers.UpdateCourierCities(ctx, claims.Subject, c.cities.Selected()) {
			c.notes.Failure("Error", "Could not save the cities")
			return false
		}
		c.cities.MarkSaved()
		c.notes.Success("Cities updated", "Your service cities were saved")
	default:
		return false
	}
	return true
}

func (c *Console) loadCities(ctx context.Context, courierID string) {
	var (
		saved, available []string
		g                errgroup.Group
	)
	g.Go(func() error {
		saved = c.couriers.CourierCities(ctx, courierID)
		return nil
	})
	g.Go(func() error {
		available = c.couriers.AvailableCities(ctx)
		return nil
	})
	_ = g.Wait()
	c.cities.Load(courierID, saved, available)
}
