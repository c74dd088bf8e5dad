package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// File is one multipart file part.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

const uploadFieldName = "file"

type bearerKey struct{}

// WithBearer makes requests made with ctx send token instead of the one held by the
// client's token source. Used to sign out a session that has already been cleared locally.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

func Get[T any](ctx context.Context, c *Client, sys System, path string) Result[T] {
	return do[T](ctx, c, http.MethodGet, sys, path, nil)
}

// List fetches a collection. A successful response whose payload is not an array
// yields an empty, non-nil list.
func List[T any](ctx context.Context, c *Client, sys System, path string) Result[[]T] {
	raw := Get[Empty](ctx, c, sys, path)
	if !raw.Success {
		return failure[[]T](raw.StatusCode, raw.Error)
	}

	items := []T{}
	if gjson.ParseBytes(raw.Data).IsArray() {
		if err := json.Unmarshal(raw.Data, &items); err != nil {
			return failure[[]T](raw.StatusCode, msgProcessingError)
		}
	}
	return Result[[]T]{Success: true, Data: items, Message: raw.Message, StatusCode: raw.StatusCode}
}

func Post[T any](ctx context.Context, c *Client, sys System, path string, payload any) Result[T] {
	return do[T](ctx, c, http.MethodPost, sys, path, payload)
}

func Put[T any](ctx context.Context, c *Client, sys System, path string, payload any) Result[T] {
	return do[T](ctx, c, http.MethodPut, sys, path, payload)
}

func Delete[T any](ctx context.Context, c *Client, sys System, path string) Result[T] {
	return do[T](ctx, c, http.MethodDelete, sys, path, nil)
}

// Upload sends file as multipart/form-data under the "file" field.
func Upload[T any](ctx context.Context, c *Client, sys System, path string, file File) Result[T] {
	req := c.newRequest(ctx).
		SetMultipartField(uploadFieldName, file.Name, file.ContentType, file.Content)
	return execute[T](c, req, http.MethodPost, sys, path, msgUploadFailed)
}

func do[T any](ctx context.Context, c *Client, method string, sys System, path string, payload any) Result[T] {
	req := c.newRequest(ctx).SetHeader("Content-Type", "application/json")
	if payload != nil {
		req.SetBody(payload)
	}
	return execute[T](c, req, method, sys, path, msgNetworkError)
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	req := c.http.R().SetContext(ctx)
	token, ok := ctx.Value(bearerKey{}).(string)
	if !ok {
		token = c.bearer()
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func execute[T any](c *Client, req *resty.Request, method string, sys System, path, transportMsg string) Result[T] {
	start := time.Now()
	resp, err := req.Execute(method, c.URL(sys, path))
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("system", string(sys)).Str("path", path).Msg("api request failed")
		return failure[T](0, transportMsg)
	}

	result := decodeResult[T](resp.StatusCode(), resp.Body())
	log.Debug().
		Str("method", method).
		Str("system", string(sys)).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Bool("success", result.Success).
		Msg("api request")
	return result
}
