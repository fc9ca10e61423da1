// Package shopify talks to the commerce platform's admin REST API. The
// platform is a best-effort mirror: callers treat every error here as
// non-fatal for local state.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"goldenwine/errs"
	"goldenwine/models"
)

type Config struct {
	StoreDomain string // e.g. my-shop.myshopify.com
	AdminToken  string
	APIVersion  string
}

func ConfigFromEnv() Config {
	cfg := Config{
		StoreDomain: os.Getenv("SHOPIFY_STORE_DOMAIN"),
		AdminToken:  os.Getenv("SHOPIFY_ADMIN_TOKEN"),
		APIVersion:  os.Getenv("SHOPIFY_API_VERSION"),
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-01"
	}
	return cfg
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) fetch(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.cfg.StoreDomain == "" || c.cfg.AdminToken == "" {
		return errs.External(path, fmt.Errorf("commerce platform credentials not configured"))
	}

	u := fmt.Sprintf("https://%s/admin/api/%s/%s", c.cfg.StoreDomain, c.cfg.APIVersion, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errs.External(path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return errs.External(path, err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AdminToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.External(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NotFound(path, "")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.External(path, fmt.Errorf("status %d: %s", resp.StatusCode, snippet))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.External(path, err)
	}
	return nil
}

func (c *Client) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	q := url.Values{"query": {query}}
	var wire struct {
		Customers []customerWire `json:"customers"`
	}
	if err := c.fetch(ctx, http.MethodGet, "customers/search.json", q, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]models.Customer, 0, len(wire.Customers))
	for i := range wire.Customers {
		out = append(out, *wire.Customers[i].model())
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var wire struct {
		Customer customerWire `json:"customer"`
	}
	if err := c.fetch(ctx, http.MethodGet, "customers/"+id+".json", nil, nil, &wire); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("customer", id)
		}
		return nil, err
	}
	return wire.Customer.model(), nil
}

func (c *Client) CreateCustomer(ctx context.Context, cu *models.Customer) (*models.Customer, error) {
	body := map[string]any{"customer": customerPayload(cu)}
	var wire struct {
		Customer customerWire `json:"customer"`
	}
	if err := c.fetch(ctx, http.MethodPost, "customers.json", nil, body, &wire); err != nil {
		return nil, err
	}
	return wire.Customer.model(), nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, fields map[string]any) (*models.Customer, error) {
	payload := map[string]any{}
	for k, v := range fields {
		payload[k] = v
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		payload["id"] = n
	}
	var wire struct {
		Customer customerWire `json:"customer"`
	}
	err := c.fetch(ctx, http.MethodPut, "customers/"+id+".json", nil, map[string]any{"customer": payload}, &wire)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFound("customer", id)
		}
		return nil, err
	}
	return wire.Customer.model(), nil
}

func customerPayload(cu *models.Customer) map[string]any {
	p := map[string]any{}
	if cu.FirstName != "" {
		p["first_name"] = cu.FirstName
	}
	if cu.LastName != "" {
		p["last_name"] = cu.LastName
	}
	if cu.Email != "" {
		p["email"] = cu.Email
	}
	if cu.Phone != "" {
		p["phone"] = cu.Phone
	}
	if cu.Note != "" {
		p["note"] = cu.Note
	}
	if cu.Tags != "" {
		p["tags"] = cu.Tags
	}
	return p
}

// ListOrders returns a customer's orders, newest first.
func (c *Client) ListOrders(ctx context.Context, customerID string, limit int) ([]PlatformOrder, error) {
	if limit <= 0 {
		limit = 100
	}
	q := url.Values{
		"customer_id": {customerID},
		"status":      {"any"},
		"limit":       {strconv.Itoa(limit)},
		"order":       {"created_at desc"},
	}
	var wire struct {
		Orders []orderWire `json:"orders"`
	}
	if err := c.fetch(ctx, http.MethodGet, "orders.json", q, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]PlatformOrder, 0, len(wire.Orders))
	for i := range wire.Orders {
		out = append(out, wire.Orders[i].platformOrder())
	}
	return out, nil
}

// CreateOrder mirrors a locally recorded order and returns the platform's id.
func (c *Client) CreateOrder(ctx context.Context, o *models.Order) (string, error) {
	items := make([]lineItemWire, 0, len(o.LineItems))
	for _, it := range o.LineItems {
		w := lineItemWire{Title: it.Title, Quantity: it.Quantity, Price: it.Price}
		// variant id stands in when the product id is unknown
		pid := it.ProductID
		if pid == "" {
			pid = it.VariantID
		}
		if n, err := strconv.ParseInt(pid, 10, 64); err == nil {
			w.ProductID = n
		}
		if n, err := strconv.ParseInt(it.VariantID, 10, 64); err == nil {
			w.VariantID = n
		}
		items = append(items, w)
	}

	payload := map[string]any{
		"line_items":       items,
		"financial_status": o.FinancialStatus,
		"currency":         o.Currency,
	}
	if o.CustomerID != "" && o.CustomerID != models.GuestCustomerID {
		if n, err := strconv.ParseInt(o.CustomerID, 10, 64); err == nil {
			payload["customer"] = map[string]any{"id": n}
		}
	}
	if len(o.DiscountCodes) > 0 {
		payload["discount_codes"] = o.DiscountCodes
	}
	if o.Note != "" {
		payload["note"] = o.Note
	}

	var wire struct {
		Order orderWire `json:"order"`
	}
	if err := c.fetch(ctx, http.MethodPost, "orders.json", nil, map[string]any{"order": payload}, &wire); err != nil {
		return "", err
	}
	return strconv.FormatInt(wire.Order.ID, 10), nil
}

// UpdateOrder patches the mirrored order. A remote not-found is returned
// as-is so callers can treat it as tolerable drift.
func (c *Client) UpdateOrder(ctx context.Context, platformID string, fields map[string]any) error {
	payload := map[string]any{}
	for k, v := range fields {
		payload[k] = v
	}
	if n, err := strconv.ParseInt(platformID, 10, 64); err == nil {
		payload["id"] = n
	}
	return c.fetch(ctx, http.MethodPut, "orders/"+platformID+".json", nil, map[string]any{"order": payload}, nil)
}

// ActivePriceRules lists the platform's active discount rules.
func (c *Client) ActivePriceRules(ctx context.Context) ([]PriceRule, error) {
	q := url.Values{"status": {"active"}, "limit": {"250"}}
	var wire struct {
		PriceRules []PriceRule `json:"price_rules"`
	}
	if err := c.fetch(ctx, http.MethodGet, "price_rules.json", q, nil, &wire); err != nil {
		return nil, err
	}
	return wire.PriceRules, nil
}

// DiscountCodesForRule lists code strings attached to one price rule.
func (c *Client) DiscountCodesForRule(ctx context.Context, ruleID int64) ([]string, error) {
	path := fmt.Sprintf("price_rules/%d/discount_codes.json", ruleID)
	var wire struct {
		DiscountCodes []struct {
			Code string `json:"code"`
		} `json:"discount_codes"`
	}
	if err := c.fetch(ctx, http.MethodGet, path, nil, nil, &wire); err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(wire.DiscountCodes))
	for _, dc := range wire.DiscountCodes {
		codes = append(codes, dc.Code)
	}
	return codes, nil
}
