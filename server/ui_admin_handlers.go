package server

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/courier-admin/console"
	"github.com/jrsteele09/courier-admin/images"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/session"
	"github.com/rs/zerolog/log"
)

// multipartMemory bounds the in-memory part of a product form; the image itself is capped by images.MaxSize.
const multipartMemory = images.MaxSize + 1<<20

// ConsolePageData is what the console layout renders. Page holds the page's own view model
// and is nil when the signed-in role may not see the requested page.
type ConsolePageData struct {
	AppName       string
	Username      string
	Role          string
	Manager       bool
	Menu          []session.MenuItem
	Active        session.Page
	Notifications []console.Notification
	Query         console.Query
	Page          any
}

// ConsolePageHandler renders a console page (GET /console/{page}).
func (s *Server) ConsolePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		page := session.ResolvePage(claims, session.Page(r.PathValue("page")))
		q := console.ParseQuery(r.URL.Query())

		data := ConsolePageData{
			AppName:  s.config.GetAppName(),
			Username: claims.Username,
			Role:     session.RoleLabel(claims),
			Manager:  claims.IsManager,
			Menu:     session.Menu(claims),
			Active:   page,
			Query:    q,
		}

		tmpl := s.emptyTmpl
		if session.Allowed(claims, page) {
			tmpl = s.pageTmpls[page]
			data.Page = s.loadPage(r.Context(), claims, page, q)
		}
		data.Notifications = s.console.Notifications().Drain()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Str("page", string(page)).Msg("Failed to render console page")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

func (s *Server) loadPage(ctx context.Context, claims session.Claims, page session.Page, q console.Query) any {
	switch page {
	case session.PageCategories:
		return s.console.CategoriesPage(ctx, q)
	case session.PageSubcategories:
		return s.console.SubcategoriesPage(ctx, q)
	case session.PageProducts:
		return s.console.ProductsPage(ctx, claims, q)
	case session.PageCouriers:
		return s.console.CouriersPage(ctx, q)
	case session.PageCities:
		return s.console.CitiesPage(ctx, claims, q)
	}
	return nil
}

// ConsoleActionHandler handles console form posts (POST /console/{page}/{action}).
// Pages the role may not see are ignored and the browser is sent back to the console.
func (s *Server) ConsoleActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		page := session.Page(r.PathValue("page"))
		action := r.PathValue("action")

		if !session.Allowed(claims, page) {
			redirectSuccess(w, r, RouteConsole)
			return
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		id := strings.TrimSpace(r.FormValue("id"))
		var ok, handled bool
		switch action {
		case actionSave:
			ok, handled = s.saveRecord(r, claims, page, id)
		case actionDelete:
			ok, handled = s.deleteRecord(r, claims, page, id)
		default:
			if page == session.PageCities {
				ok = s.console.ChangeCities(r.Context(), claims, console.CityAction(action), r.FormValue("city"))
				handled = true
			}
		}
		if !handled {
			http.NotFound(w, r)
			return
		}

		back := backValues(r)
		if !ok && action == actionSave && id != "" {
			back.Set("edit", id)
		}
		target := consolePath(string(page))
		if len(back) > 0 {
			target += "?" + back.Encode()
		}
		redirectSuccess(w, r, target)
	}
}

func (s *Server) saveRecord(r *http.Request, claims session.Claims, page session.Page, id string) (ok, handled bool) {
	ctx := r.Context()
	switch page {
	case session.PageCategories:
		return s.console.SaveCategory(ctx, id, r.FormValue("name")), true
	case session.PageSubcategories:
		return s.console.SaveSubcategory(ctx, id, r.FormValue("name"), r.FormValue("categoryId")), true
	case session.PageProducts:
		if !claims.IsManager {
			return s.console.SaveQuantity(ctx, claims, id, r.FormValue("quantity")), true
		}
		image, err := formImage(r)
		if err != nil {
			log.Err(err).Msg("Failed to read uploaded image")
			s.console.Notifications().Failure("Invalid image", "The uploaded file could not be read")
			return false, true
		}
		return s.console.SaveProduct(ctx, console.ProductForm{
			ID:            id,
			Name:          r.FormValue("name"),
			SubcategoryID: r.FormValue("subcategoryId"),
			Price:         r.FormValue("price"),
			Image:         image,
			RemoveImage:   r.FormValue("removeImage") == "on",
		}), true
	case session.PageCouriers:
		return s.console.SaveCourier(ctx, console.CourierForm{
			ID:       id,
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
			Cities:   r.Form["cities"],
		}), true
	}
	return false, false
}

func (s *Server) deleteRecord(r *http.Request, claims session.Claims, page session.Page, id string) (ok, handled bool) {
	ctx := r.Context()
	confirmed := r.FormValue("confirm") == "yes"
	switch page {
	case session.PageCategories:
		return s.console.DeleteCategory(ctx, id, confirmed), true
	case session.PageSubcategories:
		return s.console.DeleteSubcategory(ctx, id, confirmed), true
	case session.PageProducts:
		if !claims.IsManager {
			return false, true
		}
		return s.console.DeleteProduct(ctx, id, confirmed), true
	case session.PageCouriers:
		return s.console.DeleteCourier(ctx, id, confirmed), true
	}
	return false, false
}

// formImage reads the optional "image" file field. No file gives nil.
func formImage(r *http.Request) (*images.File, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// One byte past the limit is enough for validation to reject an oversized file.
	data, err := io.ReadAll(io.LimitReader(file, images.MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &images.File{Name: header.Filename, ContentType: header.Header.Get("Content-Type"), Data: data}, nil
}

// backValues keeps the sort and search of the page the form was posted from.
func backValues(r *http.Request) url.Values {
	back := url.Values{}
	for _, key := range []string{"sort", "dir", "q"} {
		if v := strings.TrimSpace(r.FormValue(key)); v != "" {
			back.Set(key, v)
		}
	}
	return back
}
