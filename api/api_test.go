package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...api.Option) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(api.SingleBase(srv.URL+"/api"), opts...)
}

func TestGetUnwrapsDataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/admin/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"1","name":"Elektronik"}],"message":"ok"}`))
	})

	res := api.Get[[]category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.True(t, res.Success)
	require.Equal(t, []category{{ID: "1", Name: "Elektronik"}}, res.Data)
	require.Equal(t, "ok", res.Message)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, res.Err())
}

func TestGetUsesRawBodyWithoutEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"2","name":"Kleidung"}]`))
	})

	res := api.Get[[]category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.True(t, res.Success)
	require.Equal(t, []category{{ID: "2", Name: "Kleidung"}}, res.Data)
}

func TestFalsyDataFallsBackToRawBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"3","name":"Laptops","data":null}`))
	})

	res := api.Get[category](context.Background(), c, api.SystemCatalog, api.CategoryPath("3"))
	require.True(t, res.Success)
	require.Equal(t, category{ID: "3", Name: "Laptops"}, res.Data)
}

func TestNotFoundBecomesFailureResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	})

	res := api.Get[category](context.Background(), c, api.SystemCatalog, api.CategoryPath("x"))
	require.False(t, res.Success)
	require.Equal(t, "not found", res.Error)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, category{}, res.Data)

	err := res.Err()
	require.True(t, errors.Is(err, errors.ErrRemote))
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestFailureMessageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error field", body: `{"error":"bad input"}`, want: "bad input"},
		{name: "no message", body: `{"code":7}`, want: "HTTP 400"},
		{name: "empty body", body: ``, want: "failed to process server response"},
		{name: "not json", body: `<html>oops</html>`, want: "failed to process server response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			})
			res := api.Post[category](context.Background(), c, api.SystemCatalog, api.PathCategory, map[string]string{"name": ""})
			require.False(t, res.Success)
			require.Equal(t, tt.want, res.Error)
		})
	}
}

func TestUnparseableSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	res := api.Get[[]category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.False(t, res.Success)
	require.Equal(t, "failed to process server response", res.Error)
	require.Nil(t, res.Data)
}

func TestNonArrayForListIsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})
	res := api.Get[[]category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.False(t, res.Success)
}

func TestListTreatsNonArrayAsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":"1"}}`))
	})
	res := api.List[category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.True(t, res.Success)
	require.NotNil(t, res.Data)
	require.Empty(t, res.Data)
}

func TestListDecodesArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"1","name":"Elektronik"}]}`))
	})
	res := api.List[category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.True(t, res.Success)
	require.Equal(t, []category{{ID: "1", Name: "Elektronik"}}, res.Data)
}

func TestListPassesThroughFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	})
	res := api.List[category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.False(t, res.Success)
	require.Equal(t, "forbidden", res.Error)
	require.Equal(t, http.StatusForbidden, res.StatusCode)
	require.Nil(t, res.Data)
}

func TestNoContentIsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	res := api.Delete[api.Empty](context.Background(), c, api.SystemCatalog, api.CategoryPath("1"))
	require.True(t, res.Success)
}

func TestNetworkErrorBecomesFailureResult(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := api.New(api.SingleBase(base), api.WithTimeout(time.Second))
	res := api.Get[[]category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.False(t, res.Success)
	require.Equal(t, "network error", res.Error)
	require.Zero(t, res.StatusCode)

	up := api.Upload[api.Empty](context.Background(), c, api.SystemImages, api.ImagePath("1"), api.File{
		Name: "a.png", ContentType: "image/png", Content: strings.NewReader("x"),
	})
	require.False(t, up.Success)
	require.Equal(t, "file upload failed", up.Error)
}

func TestHeaders(t *testing.T) {
	var gotAuth, gotType string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id":"9","name":"Bonn"}`))
	}, api.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "abc"})))

	res := api.Put[category](context.Background(), c, api.SystemCatalog, api.CategoryPath("9"), map[string]string{"name": "Bonn"})
	require.True(t, res.Success)
	require.Equal(t, "Bearer abc", gotAuth)
	require.Equal(t, "application/json", gotType)
	require.Equal(t, "Bonn", gotBody["name"])
}

func TestWithBearerOverridesTokenSource(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, api.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "stored"})))

	ctx := api.WithBearer(context.Background(), "explicit")
	res := api.Post[api.Empty](ctx, c, api.SystemAuth, api.PathLogout, nil)
	require.True(t, res.Success)
	require.Equal(t, "Bearer explicit", gotAuth)
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, api.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{})))

	res := api.Get[[]category](context.Background(), c, api.SystemCatalog, api.PathCategories)
	require.True(t, res.Success)
	require.Empty(t, gotAuth)
}

func TestUploadIsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/images/42", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, "photo.png", hdr.Filename)
		require.Equal(t, "pixels", string(content))
		_, _ = w.Write([]byte(`{"data":{"imageUrl":"https://cdn/images/42"}}`))
	}, api.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"})))

	res := api.Upload[struct {
		ImageURL string `json:"imageUrl"`
	}](context.Background(), c, api.SystemImages, api.ImagePath("42"), api.File{
		Name: "photo.png", ContentType: "image/png", Content: strings.NewReader("pixels"),
	})
	require.True(t, res.Success)
	require.Equal(t, "https://cdn/images/42", res.Data.ImageURL)
}

func TestSystemsResolveToTheirOwnBase(t *testing.T) {
	var hits []string
	mk := func(name string) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, name+r.URL.Path)
			_, _ = w.Write([]byte(`[]`))
		}))
		t.Cleanup(srv.Close)
		return srv
	}
	catalog, refs := mk("catalog"), mk("refs")

	bases := api.SingleBase(catalog.URL)
	bases[api.SystemReferences] = refs.URL + "/"
	c := api.New(bases)

	require.True(t, api.Get[[]string](context.Background(), c, api.SystemReferences, api.PathReferenceCities).Success)
	require.True(t, api.Get[[]category](context.Background(), c, api.SystemCatalog, api.PathCategories).Success)
	require.Equal(t, []string{"refs/references/cities", "catalog/admin/categories"}, hits)
	require.Equal(t, refs.URL+"/images/1", c.URL(api.SystemReferences, api.ImagePath("1")))
}

func TestEndpointPaths(t *testing.T) {
	require.Equal(t, "/products/courier/c%2F1/quantity", api.CourierQuantityPath("c/1"))
	require.Equal(t, "/couriers/7/cities", api.CourierCitiesPath("7"))
	require.Equal(t, "/admin/subcategory/3", api.SubcategoryPath("3"))
	require.Equal(t, "/admin/product/5", api.ProductPath("5"))
}
