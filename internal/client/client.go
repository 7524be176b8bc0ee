// Package client es el cliente Go tipado de la API de mascotas. Lo usa petsctl.
package client

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"petpulse/internal/platform/httpclient"
)

type Pet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Age       int       `json:"age"`
	OwnerName string    `json:"owner_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePet: Age nil se envía como null y la API responde 422.
type CreatePet struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Age       *int   `json:"age"`
	OwnerName string `json:"owner_name"`
}

// UpdatePet: los campos nil no se envían.
type UpdatePet struct {
	Name      *string `json:"name,omitempty"`
	Species   *string `json:"species,omitempty"`
	Age       *int    `json:"age,omitempty"`
	OwnerName *string `json:"owner_name,omitempty"`
}

type Client struct {
	http *httpclient.Client
}

type Option func(*options)

type options struct {
	transport http.RoundTripper
}

// WithTransport cambia el RoundTripper del cliente HTTP (nil = http.DefaultTransport).
func WithTransport(tr http.RoundTripper) Option {
	return func(o *options) { o.transport = tr }
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hc := httpclient.NewWithTransport(timeout, o.transport)
	if err := hc.SetBaseURL(baseURL); err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) List(ctx context.Context) ([]Pet, error) {
	var out []Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Pet, error) {
	var out Pet
	err := c.http.DoJSON(ctx, http.MethodGet, petPath(id), nil, nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, in CreatePet) (Pet, error) {
	var out Pet
	err := c.http.DoJSON(ctx, http.MethodPost, "/pets", nil, in, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id int64, in UpdatePet) (Pet, error) {
	var out Pet
	err := c.http.DoJSON(ctx, http.MethodPatch, petPath(id), nil, in, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.http.DoJSON(ctx, http.MethodDelete, petPath(id), nil, nil, nil)
}

// IsNotFound indica si err es un 404 de la API.
func IsNotFound(err error) bool {
	return httpclient.StatusCode(err) == http.StatusNotFound
}

func petPath(id int64) string {
	return "/pets/" + strconv.FormatInt(id, 10)
}
