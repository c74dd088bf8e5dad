package couriers

import (
	"context"
	"strings"

	"github.com/jrsteele09/courier-admin/sorting"
)

// Courier is a delivery account. Couriers sign in to the console with their username.
type Courier struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Cities   []string `json:"cities"`
}

var _ sorting.Fielder = Courier{}

// SortField exposes the sortable columns of the couriers table.
func (c Courier) SortField(key string) (any, bool) {
	switch key {
	case "id":
		return c.ID, true
	case "username":
		return c.Username, true
	case "cities":
		if len(c.Cities) == 0 {
			return nil, false
		}
		return strings.Join(c.Cities, ", "), true
	}
	return nil, false
}

// CreateInput is a new courier account.
type CreateInput struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Cities   []string `json:"cities"`
}

// UpdateInput changes a courier. A blank Password keeps the current one and a nil
// Cities keeps the current assignment.
type UpdateInput struct {
	Username string    `json:"username"`
	Password string    `json:"password,omitempty"`
	Cities   *[]string `json:"cities,omitempty"`
}

type Repo interface {
	List(ctx context.Context) ([]Courier, error)
	Create(ctx context.Context, input CreateInput) (*Courier, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Courier, error)
	Delete(ctx context.Context, id string) error
	Cities(ctx context.Context, id string) ([]string, error)
	UpdateCities(ctx context.Context, id string, cities []string) error
	AvailableCities(ctx context.Context) ([]string, error)
}

// ReferenceCities are the city names couriers can be assigned to when no remote
// reference list is available.
func ReferenceCities() []string {
	return []string{"Bocholt", "Köln", "Herne", "Lünen", "Dortmund", "Moers", "Bonn", "Bad Honnef", "Rheinbach", "Kaarst"}
}
