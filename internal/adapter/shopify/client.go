// Package shopify pulls unfulfilled orders from a Shopify shop through the
// Admin REST API.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// maxPages caps Link-header pagination so a huge shop cannot stall an import.
const maxPages = 10

// Client exposes operations to query the shop for importable orders.
type Client interface {
	FetchUnfulfilled(ctx context.Context, sinceDays int) ([]model.ImportedOrder, error)
}

// Disabled is the source used when shop credentials are not configured. It
// fails loudly on use so an import attempt gets a clear error instead of an
// empty run.
type Disabled struct{}

func (Disabled) FetchUnfulfilled(context.Context, int) ([]model.ImportedOrder, error) {
	return nil, fmt.Errorf("shop import is not configured")
}

// HTTPClient implements Client via the Shopify Admin REST API.
type HTTPClient struct {
	domain     string
	token      string
	apiVersion string
	httpClient *http.Client
	logger     *slog.Logger
}

// address mirrors the shipping_address JSON object.
type address struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// shopOrder mirrors the subset of the orders.json payload the import uses.
type shopOrder struct {
	Name            string   `json:"name"`
	OrderNumber     int64    `json:"order_number"`
	ShippingAddress *address `json:"shipping_address"`
	Customer        *struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"customer"`
}

type ordersPage struct {
	Orders []shopOrder `json:"orders"`
}

// NewHTTPClient creates a Shopify client. The store domain may carry an
// https:// prefix or a trailing slash; both are stripped.
func NewHTTPClient(domain, token, apiVersion string, logger *slog.Logger) (*HTTPClient, error) {
	domain = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://"), "/")
	if domain == "" {
		return nil, fmt.Errorf("shopify store domain is required")
	}
	if token == "" {
		return nil, fmt.Errorf("shopify admin token is required")
	}
	if apiVersion == "" {
		apiVersion = "2024-07"
	}
	return &HTTPClient{
		domain:     domain,
		token:      token,
		apiVersion: apiVersion,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// FetchUnfulfilled returns open, paid, unfulfilled orders created within the
// last sinceDays days, following rel="next" pagination links.
func (c *HTTPClient) FetchUnfulfilled(ctx context.Context, sinceDays int) ([]model.ImportedOrder, error) {
	createdAtMin := time.Now().Add(-time.Duration(sinceDays) * 24 * time.Hour).UTC().Format(time.RFC3339)
	params := url.Values{
		"status":             {"open"},
		"financial_status":   {"paid"},
		"fulfillment_status": {"unfulfilled"},
		"created_at_min":     {createdAtMin},
		"limit":              {"250"},
	}
	next := fmt.Sprintf("https://%s/admin/api/%s/orders.json?%s", c.domain, c.apiVersion, params.Encode())

	var result []model.ImportedOrder
	for page := 0; page < maxPages && next != ""; page++ {
		orders, nextLink, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, order := range orders {
			result = append(result, importedOrder(order))
		}
		next = nextLink
	}
	return result, nil
}

func (c *HTTPClient) fetchPage(ctx context.Context, pageURL string) ([]shopOrder, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("shopify request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, "", fmt.Errorf("shopify error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	var page ordersPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", err
	}
	return page.Orders, nextLink(resp.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" URL from a Link header, or "".
func nextLink(header string) string {
	for _, link := range strings.Split(header, ",") {
		urlPart, relPart, found := strings.Cut(link, ";")
		if !found {
			continue
		}
		urlPart = strings.TrimSpace(urlPart)
		if strings.TrimSpace(relPart) != `rel="next"` {
			continue
		}
		if strings.HasPrefix(urlPart, "<") && strings.HasSuffix(urlPart, ">") {
			return urlPart[1 : len(urlPart)-1]
		}
	}
	return ""
}

func importedOrder(order shopOrder) model.ImportedOrder {
	number := order.Name
	if number == "" && order.OrderNumber != 0 {
		number = strconv.FormatInt(order.OrderNumber, 10)
	}

	customerName := ""
	if order.ShippingAddress != nil {
		customerName = order.ShippingAddress.Name
	}
	if customerName == "" && order.Customer != nil {
		customerName = strings.TrimSpace(strings.Join(nonEmpty(order.Customer.FirstName, order.Customer.LastName), " "))
	}

	return model.ImportedOrder{
		OrderNumber:     number,
		CustomerName:    customerName,
		ShippingAddress: formatAddress(order.ShippingAddress),
	}
}

// formatAddress renders "Name - Company | addr1, addr2, city, province, zip,
// country", dropping whichever parts are empty.
func formatAddress(a *address) string {
	if a == nil {
		return ""
	}
	header := strings.Join(nonEmpty(a.Name, a.Company), " - ")
	body := strings.Join(nonEmpty(a.Address1, a.Address2, a.City, a.Province, a.Zip, a.Country), ", ")
	switch {
	case header != "" && body != "":
		return header + " | " + body
	case header != "":
		return header
	default:
		return body
	}
}

func nonEmpty(parts ...string) []string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return kept
}
