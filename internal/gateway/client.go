package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const defaultTimeout = 10 * time.Second

// client talks to the cart HTTP API: POST /carts, GET /carts/{id},
// PUT /carts/{id} (full replace). The mock demo API and the bundled
// cartapi server share this contract.
type client struct {
	baseURL string
	httpc   *http.Client
	now     func() time.Time
}

type Option func(*client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *client) { c.httpc = httpc }
}

func WithClock(now func() time.Time) Option {
	return func(c *client) { c.now = now }
}

func New(baseURL string, opts ...Option) (port.CartGateway, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}

	c := &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type wireItem struct {
	ProductID flexID `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type wireCart struct {
	ID       flexID     `json:"id,omitempty"`
	UserID   flexID     `json:"userId"`
	Date     string     `json:"date"`
	Products []wireItem `json:"products"`
}

func (c *client) CreateCart(ctx context.Context, ownerUserID string) (string, error) {
	if ownerUserID == "" {
		return "", fmt.Errorf("ownerUserID is empty")
	}

	body := wireCart{
		UserID:   flexID(ownerUserID),
		Date:     c.now().Format("2006-01-02"),
		Products: []wireItem{},
	}

	var created wireCart
	if err := c.do(ctx, http.MethodPost, "/carts", body, &created); err != nil {
		return "", fmt.Errorf("POST /carts: %w", err)
	}

	if created.ID == "" {
		return "", fmt.Errorf("POST /carts: %w", domain.ErrRemoteUnavailable)
	}

	// The returned id is opaque and trusted unconditionally.
	return string(created.ID), nil
}

func (c *client) FetchCart(ctx context.Context, remoteCartID string) (domain.RemoteCart, error) {
	if remoteCartID == "" {
		return domain.RemoteCart{}, fmt.Errorf("remoteCartID is empty")
	}

	var cart wireCart
	if err := c.do(ctx, http.MethodGet, "/carts/"+remoteCartID, nil, &cart); err != nil {
		return domain.RemoteCart{}, fmt.Errorf("GET /carts/%s: %w", remoteCartID, err)
	}

	// The mock API answers 200 with a null body for unknown ids, which
	// must not read as "legitimately empty cart".
	if cart.ID == "" {
		return domain.RemoteCart{}, fmt.Errorf("GET /carts/%s: %w", remoteCartID, domain.ErrCartNotFound)
	}

	return mapWireCart(cart), nil
}

func (c *client) ReplaceItems(ctx context.Context, remoteCartID, ownerUserID string, items []domain.CartItem) ([]domain.CartItem, error) {
	if remoteCartID == "" {
		return nil, fmt.Errorf("remoteCartID is empty")
	}
	if ownerUserID == "" {
		return nil, fmt.Errorf("ownerUserID is empty")
	}

	body := wireCart{
		UserID:   flexID(ownerUserID),
		Date:     c.now().Format("2006-01-02"),
		Products: mapDomainItems(items),
	}

	var echoed wireCart
	if err := c.do(ctx, http.MethodPut, "/carts/"+remoteCartID, body, &echoed); err != nil {
		return nil, fmt.Errorf("PUT /carts/%s: %w", remoteCartID, err)
	}

	return mapWireItems(echoed.Products), nil
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Join(domain.ErrRemoteUnavailable, fmt.Errorf("httpc.Do: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrCartNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(domain.ErrRemoteUnavailable, fmt.Errorf("json.Decode: %w", err))
	}

	return nil
}

func mapWireCart(cart wireCart) domain.RemoteCart {
	return domain.RemoteCart{
		ID:      string(cart.ID),
		OwnerID: string(cart.UserID),
		Items:   mapWireItems(cart.Products),
	}
}

func mapWireItems(items []wireItem) []domain.CartItem {
	mapped := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, domain.CartItem{
			ProductID: string(item.ProductID),
			Quantity:  item.Quantity,
		})
	}
	return mapped
}

func mapDomainItems(items []domain.CartItem) []wireItem {
	mapped := make([]wireItem, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, wireItem{
			ProductID: flexID(item.ProductID),
			Quantity:  item.Quantity,
		})
	}
	return mapped
}
