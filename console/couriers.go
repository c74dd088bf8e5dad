package console

import (
	"context"
	"strings"

	"github.com/jrsteele09/courier-admin/couriers"
	"github.com/jrsteele09/courier-admin/users"
	"github.com/rs/zerolog/log"
)

type CouriersView struct {
	Table   Table
	Editing *couriers.Courier
	// Cities offered when a courier is created.
	Cities []string
}

// CourierForm is a submitted courier create or update. Password is optional on update.
type CourierForm struct {
	ID       string
	Username string
	Password string
	Cities   []string
}

var courierColumns = []Column[couriers.Courier]{
	{Key: "id", Label: "ID", Sortable: true},
	{Key: "username", Label: "Login", Sortable: true},
	{Key: "cities", Label: "Cities", Sortable: true, Render: func(c couriers.Courier) Cell {
		if len(c.Cities) == 0 {
			return Cell{Text: "None"}
		}
		return Cell{Badges: c.Cities}
	}},
}

func (c *Console) CouriersPage(ctx context.Context, q Query) CouriersView {
	list := c.couriers.Couriers(ctx)
	view := CouriersView{
		Table:  NewTable(list, courierColumns, q.Sort, q.Values()),
		Cities: c.couriers.AvailableCities(ctx),
	}
	if courier, ok := findByID(list, q.Edit, func(c couriers.Courier) string { return c.ID }); ok {
		view.Editing = &courier
	}
	return view
}

// SaveCourier creates a courier, which needs a password, or updates the login and,
// when one is given, the password of an existing one.
func (c *Console) SaveCourier(ctx context.Context, form CourierForm) bool {
	username := strings.TrimSpace(form.Username)
	password := strings.TrimSpace(form.Password)
	if username == "" {
		return false
	}

	if password != "" {
		if err := users.ValidatePasswordStrength(password); err != nil {
			log.Debug().Err(err).Str("username", username).Msg("Courier password rejected")
			c.notes.Failure("Weak password", "Use at least 8 characters with letters and a number")
			return false
		}
	}

	if form.ID == "" {
		if password == "" {
			return false
		}
		if c.couriers.CreateCourier(ctx, username, password, form.Cities) == nil {
			c.notes.Failure("Error", "Could not create the courier")
			return false
		}
		c.notes.Success("Courier created", username)
		return true
	}

	if password != "" {
		if c.couriers.UpdateCourierWithPassword(ctx, form.ID, username, password) == nil {
			c.notes.Failure("Error", "Could not update the courier")
			return false
		}
		c.notes.Success("Courier updated", "Login and password changed")
		return true
	}
	if c.couriers.UpdateCourier(ctx, form.ID, username, nil) == nil {
		c.notes.Failure("Error", "Could not update the courier")
		return false
	}
	c.notes.Success("Courier updated", "Login changed")
	return true
}

func (c *Console) DeleteCourier(ctx context.Context, id string, confirmed bool) bool {
	if !confirmed || id == "" {
		return false
	}
	if !c.couriers.DeleteCourier(ctx, id) {
		c.notes.Failure("Error", "Could not delete the courier")
		return false
	}
	c.notes.Success("Courier deleted", "")
	return true
}
