package couriers

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/users"
)

// SeedCourier is a demo courier loaded into an in-memory repo.
type SeedCourier struct {
	ID       string
	Username string
	Password string
	Cities   []string
}

// DemoCouriers are the accounts the console starts with in memory mode.
func DemoCouriers() []SeedCourier {
	return []SeedCourier{
		{ID: "2", Username: "courier1", Password: "courier123", Cities: []string{"Bocholt", "Köln"}},
		{ID: "3", Username: "courier2", Password: "courier456", Cities: []string{"Herne", "Lünen", "Dortmund"}},
	}
}

type storedCourier struct {
	Courier
	passwordHash string
}

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps couriers in process memory with bcrypt password hashes.
type InMemoryRepo struct {
	lock     sync.RWMutex
	couriers map[string]*storedCourier
	order    []string
	cities   []string
}

func NewInMemoryRepo(seed ...SeedCourier) (*InMemoryRepo, error) {
	r := &InMemoryRepo{
		couriers: make(map[string]*storedCourier),
		cities:   ReferenceCities(),
	}
	for _, s := range seed {
		hash, err := users.HashPassword(s.Password)
		if err != nil {
			return nil, errors.Wrapf(err, "[couriers NewInMemoryRepo] hash password for %s", s.Username)
		}
		id := s.ID
		if id == "" {
			id = uuid.New().String()
		}
		r.put(&storedCourier{
			Courier:      Courier{ID: id, Username: s.Username, Cities: slices.Clone(s.Cities)},
			passwordHash: hash,
		})
	}
	return r, nil
}

func (r *InMemoryRepo) put(c *storedCourier) {
	if _, ok := r.couriers[c.ID]; !ok {
		r.order = append(r.order, c.ID)
	}
	r.couriers[c.ID] = c
}

func (r *InMemoryRepo) usernameTaken(username, exceptID string) bool {
	for id, c := range r.couriers {
		if id != exceptID && strings.EqualFold(c.Username, username) {
			return true
		}
	}
	return false
}

func (r *InMemoryRepo) List(_ context.Context) ([]Courier, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]Courier, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.couriers[id].copy())
	}
	return out, nil
}

func (r *InMemoryRepo) Create(_ context.Context, input CreateInput) (*Courier, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[couriers InMemoryRepo.Create] username and password are required")
	}
	if err := users.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.Wrapf(err, "[couriers InMemoryRepo.Create]")
	}
	hash, err := users.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Wrapf(err, "[couriers InMemoryRepo.Create] hash password")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.usernameTaken(username, "") {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[couriers InMemoryRepo.Create] username %q is taken", username)
	}
	c := &storedCourier{
		Courier:      Courier{ID: uuid.New().String(), Username: username, Cities: cloneCities(input.Cities)},
		passwordHash: hash,
	}
	r.put(c)
	out := c.copy()
	return &out, nil
}

func (r *InMemoryRepo) Update(_ context.Context, id string, input UpdateInput) (*Courier, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[couriers InMemoryRepo.Update] username is required")
	}

	var hash string
	if strings.TrimSpace(input.Password) != "" {
		if err := users.ValidatePasswordStrength(input.Password); err != nil {
			return nil, errors.Wrapf(err, "[couriers InMemoryRepo.Update]")
		}
		h, err := users.HashPassword(input.Password)
		if err != nil {
			return nil, errors.Wrapf(err, "[couriers InMemoryRepo.Update] hash password")
		}
		hash = h
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	c, ok := r.couriers[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "[couriers InMemoryRepo.Update] courier %s", id)
	}
	if r.usernameTaken(username, id) {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[couriers InMemoryRepo.Update] username %q is taken", username)
	}
	c.Username = username
	if input.Cities != nil {
		c.Cities = cloneCities(*input.Cities)
	}
	if hash != "" {
		c.passwordHash = hash
	}
	out := c.copy()
	return &out, nil
}

func (r *InMemoryRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.couriers[id]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "[couriers InMemoryRepo.Delete] courier %s", id)
	}
	delete(r.couriers, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *InMemoryRepo) Cities(_ context.Context, id string) ([]string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	c, ok := r.couriers[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "[couriers InMemoryRepo.Cities] courier %s", id)
	}
	return cloneCities(c.Cities), nil
}

func (r *InMemoryRepo) UpdateCities(_ context.Context, id string, cities []string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	c, ok := r.couriers[id]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "[couriers InMemoryRepo.UpdateCities] courier %s", id)
	}
	c.Cities = cloneCities(cities)
	return nil
}

func (r *InMemoryRepo) AvailableCities(_ context.Context) ([]string, error) {
	return slices.Clone(r.cities), nil
}

// VerifyPassword returns the courier whose username and password match.
func (r *InMemoryRepo) VerifyPassword(_ context.Context, username, password string) (*Courier, error) {
	r.lock.RLock()
	var match *storedCourier
	for _, id := range r.order {
		if c := r.couriers[id]; strings.EqualFold(c.Username, strings.TrimSpace(username)) {
			match = c
			break
		}
	}
	var hash string
	var out Courier
	if match != nil {
		hash = match.passwordHash
		out = match.copy()
	}
	r.lock.RUnlock()

	if match == nil || !users.CheckPasswordHash(password, hash) {
		return nil, errors.ErrInvalidCredentials
	}
	return &out, nil
}

func (c *storedCourier) copy() Courier {
	return Courier{ID: c.ID, Username: c.Username, Cities: cloneCities(c.Cities)}
}

// cloneCities copies a city list, dropping blanks and duplicates. The result is never nil.
func cloneCities(cities []string) []string {
	out := make([]string, 0, len(cities))
	for _, city := range cities {
		city = strings.TrimSpace(city)
		if city == "" || slices.Contains(out, city) {
			continue
		}
		out = append(out, city)
	}
	return out
}
