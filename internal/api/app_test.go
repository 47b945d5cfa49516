package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"PetShop/internal/api"
	"PetShop/internal/cart"
	"PetShop/internal/catalog"
)

const metricsToken = "scrape-token"

func newAPITS(t *testing.T) (*httptest.Server, *cart.MemStore) {
	t.Helper()

	store := cart.NewMemStore()
	h := api.NewHandler(
		api.Deps{Catalog: catalog.NewMemStore(), Cart: store},
		api.HTTPDeps{
			Log:            zap.NewNop(),
			Namespace:      "petshop",
			Registry:       prometheus.NewRegistry(),
			AllowedOrigins: []string{"*"},
			MetricsEnabled: true,
			MetricsToken:   metricsToken,
		},
	)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, store
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestAPI_Root(t *testing.T) {
	ts, _ := newAPITS(t)

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		t.Fatalf("content-type=%q", resp.Header.Get("Content-Type"))
	}
	if string(raw) != "PetShop API is running" {
		t.Fatalf("body=%q", string(raw))
	}
}

func TestAPI_HealthAndReady(t *testing.T) {
	ts, _ := newAPITS(t)

	for _, p := range []string{"/healthz", "/readyz"} {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+p, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d", p, resp.StatusCode)
		}
	}
}

func TestAPI_CartFlow(t *testing.T) {
	ts, store := newAPITS(t)

	var created cart.Item
	{
		resp, raw := doJSON(t, http.MethodPost, ts.URL+"/api/cart", map[string]any{
			"productId": 1,
			"quantity":  2,
		}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
		}
		if err := json.Unmarshal(raw, &created); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if created.Name != "Premium Dog Food" || created.Quantity != 2 {
			t.Fatalf("created=%+v", created)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodPost, ts.URL+"/api/cart", map[string]any{
			"productId": 999,
			"quantity":  1,
		}, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("unknown product status=%d", resp.StatusCode)
		}
		if strings.TrimSpace(string(raw)) != `{"message":"Product not found"}` {
			t.Fatalf("body=%s", string(raw))
		}
		if store.Len() != 1 {
			t.Fatalf("len=%d", store.Len())
		}
	}

	{
		resp, raw := doJSON(t, http.MethodGet, ts.URL+"/api/cart", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list status=%d", resp.StatusCode)
		}
		var items []cart.Item
		if err := json.Unmarshal(raw, &items); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(items) != 1 || items[0].ID != created.ID {
			t.Fatalf("items=%+v", items)
		}
	}

	url := fmt.Sprintf("%s/api/cart/%d", ts.URL, created.ID)
	{
		resp, raw := doJSON(t, http.MethodDelete, url, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("delete status=%d", resp.StatusCode)
		}
		if strings.TrimSpace(string(raw)) != `{"message":"Item removed from cart"}` {
			t.Fatalf("body=%s", string(raw))
		}
	}

	{
		resp, raw := doJSON(t, http.MethodDelete, url, nil, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("second delete status=%d", resp.StatusCode)
		}
		if strings.TrimSpace(string(raw)) != `{"message":"Cart item not found"}` {
			t.Fatalf("body=%s", string(raw))
		}
		if store.Len() != 0 {
			t.Fatalf("len=%d", store.Len())
		}
	}
}

func TestAPI_CatalogRoutes(t *testing.T) {
	ts, _ := newAPITS(t)

	cases := []struct {
		path   string
		status int
	}{
		{"/api/products", http.StatusOK},
		{"/api/products/1", http.StatusOK},
		{"/api/products/99", http.StatusNotFound},
		{"/api/categories", http.StatusOK},
		{"/api/products/category/accessories", http.StatusOK},
		{"/api/products/category/nonexistent", http.StatusOK},
	}
	for _, tc := range cases {
		resp, raw := doJSON(t, http.MethodGet, ts.URL+tc.path, nil, nil)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s status=%d body=%s", tc.path, resp.StatusCode, string(raw))
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("%s content-type=%q", tc.path, ct)
		}
	}
}

func TestAPI_CORS_AnyOrigin(t *testing.T) {
	ts, _ := newAPITS(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/products", nil, map[string]string{
		"Origin": "http://shop.example",
	})
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin=%q", got)
	}

	resp, _ = doJSON(t, http.MethodOptions, ts.URL+"/api/cart", nil, map[string]string{
		"Origin":                         "http://other.example",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Content-Type",
	})
	if resp.StatusCode >= 300 {
		t.Fatalf("preflight status=%d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("preflight allow-origin=%q", got)
	}
}

func TestAPI_RequestID(t *testing.T) {
	ts, _ := newAPITS(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/categories", nil, nil)
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatalf("missing generated request id")
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/categories", nil, map[string]string{
		"X-Request-Id": "abc-123",
	})
	if got := resp.Header.Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("request id=%q", got)
	}
}

func TestAPI_Metrics(t *testing.T) {
	ts, _ := newAPITS(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/cart", map[string]any{"productId": 2}, nil)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/metrics", nil, map[string]string{
		"Authorization": "Bearer wrong",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("wrong token status=%d", resp.StatusCode)
	}

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil, map[string]string{
		"Authorization": "Bearer " + metricsToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status=%d", resp.StatusCode)
	}
	for _, want := range []string{
		"petshop_cart_items 1",
		`petshop_cart_operations_total{op="add",result="ok"} 1`,
		`petshop_http_requests_total{method="POST",path="/api/cart`,
	} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("metrics missing %q:\n%s", want, string(raw))
		}
	}
}

type panickingCatalog struct {
	catalog.Store
}

func (panickingCatalog) ListProducts(context.Context) ([]catalog.Product, error) {
	panic("catalog exploded")
}

func TestAPI_PanicReturnsJSON500(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	h := api.NewHandler(
		api.Deps{Catalog: panickingCatalog{Store: catalog.NewMemStore()}, Cart: cart.NewMemStore()},
		api.HTTPDeps{Log: zap.New(core)},
	)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/api/products", nil, map[string]string{
		"X-Request-Id": "req-panic",
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}
	if strings.TrimSpace(string(raw)) != `{"message":"Internal server error"}` {
		t.Fatalf("body=%q", string(raw))
	}

	panics := logs.FilterMessage("panic recovered").All()
	if len(panics) != 1 {
		t.Fatalf("panic log entries=%d", len(panics))
	}
	if got := panics[0].ContextMap()["request_id"]; got != "req-panic" {
		t.Fatalf("panic log request_id=%v", got)
	}

	access := logs.FilterMessage("request").All()
	if len(access) != 1 || access[0].ContextMap()["status"] != int64(500) {
		t.Fatalf("access log=%+v", access)
	}

	// Other routes keep working after a recovered panic.
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/categories", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("categories status=%d", resp.StatusCode)
	}
}
