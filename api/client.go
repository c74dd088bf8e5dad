// Package api is the access layer to the remote courier API. Every call returns a
// Result; transport failures and application failures never escape as errors.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jrsteele09/courier-admin/internal/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// System identifies which remote resource family a request targets.
type System string

const (
	SystemAuth       System = "auth"
	SystemCatalog    System = "catalog"
	SystemCouriers   System = "couriers"
	SystemImages     System = "images"
	SystemReferences System = "references"
)

// BaseURLs maps every System to the base address it is served from.
type BaseURLs map[System]string

// SingleBase routes every System to the same base address.
func SingleBase(baseURL string) BaseURLs {
	return BaseURLs{
		SystemAuth:       baseURL,
		SystemCatalog:    baseURL,
		SystemCouriers:   baseURL,
		SystemImages:     baseURL,
		SystemReferences: baseURL,
	}
}

// BaseURLsFromConfig resolves the per-family base addresses.
func BaseURLsFromConfig(cfg config.APIConfig) BaseURLs {
	return BaseURLs{
		SystemAuth:       cfg.GetAuthURL(),
		SystemCatalog:    cfg.GetCatalogURL(),
		SystemCouriers:   cfg.GetCouriersURL(),
		SystemImages:     cfg.GetImagesURL(),
		SystemReferences: cfg.GetReferencesURL(),
	}
}

type Client struct {
	http   *resty.Client
	bases  BaseURLs
	tokens oauth2.TokenSource
}

type Option func(*Client)

// WithTokenSource sets where the bearer token is read from on every call.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithHTTPClient replaces the underlying transport client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).SetLogger(zerologAdapter{})
	}
}

func New(bases BaseURLs, opts ...Option) *Client {
	c := &Client{
		http:  resty.New().SetLogger(zerologAdapter{}),
		bases: BaseURLs{},
	}
	for sys, base := range bases {
		c.bases[sys] = strings.TrimRight(base, "/")
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetHeader("Accept", "application/json")
	return c
}

// NewFromConfig builds a client for the configured remote API.
func NewFromConfig(cfg config.APIConfig, tokens oauth2.TokenSource) *Client {
	return New(BaseURLsFromConfig(cfg), WithTimeout(cfg.GetAPITimeout()), WithTokenSource(tokens))
}

// URL returns the absolute address of path on the given system.
func (c *Client) URL(sys System, path string) string {
	return c.bases[sys] + path
}

func (c *Client) bearer() string {
	if c.tokens == nil {
		return ""
	}
	tok, err := c.tokens.Token()
	if err != nil || tok == nil {
		return ""
	}
	return tok.AccessToken
}

// zerologAdapter routes resty's internal logging into zerolog.
type zerologAdapter struct{}

func (zerologAdapter) Errorf(format string, v ...interface{}) {
	log.Error().Msgf(strings.TrimSpace(format), v...)
}

func (zerologAdapter) Warnf(format string, v ...interface{}) {
	log.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (zerologAdapter) Debugf(format string, v ...interface{}) {
	log.Debug().Msgf(strings.TrimSpace(format), v...)
}
