package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	chatbotx "github.com/tanpawarit/catalog-chatbot/agent/agents/chatbot"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
	metricsx "github.com/tanpawarit/catalog-chatbot/pkg/metrics"
)

type fakeChatbot struct {
	res     chatbotx.Result
	err     error
	lastReq chatbotx.Request
	calls   int
}

func (f *fakeChatbot) Handle(ctx context.Context, req chatbotx.Request) (chatbotx.Result, error) {
	f.calls++
	f.lastReq = req
	return f.res, f.err
}

type fakeCatalog struct {
	products  []catalogx.Product
	suppliers []catalogx.Supplier
	err       error
	pingErr   error
}

func (f *fakeCatalog) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*catalogx.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: product id=%d", catalogx.ErrRecordNotFound, id)
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]catalogx.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) ListSuppliers(ctx context.Context) ([]catalogx.Supplier, error) {
	return f.suppliers, f.err
}

func newTestRouter(t *testing.T, cfg Config, bot Chatbot, catalog Catalog) http.Handler {
	t.Helper()
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
	srv, err := NewServer(cfg, bot, catalog)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv.Router()
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestNewServerRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Config{}, nil, &fakeCatalog{}); err == nil {
		t.Fatal("expected error for nil chatbot")
	}
	if _, err := NewServer(Config{}, &fakeChatbot{}, nil); err == nil {
		t.Fatal("expected error for nil catalog")
	}
}

func TestChatbotPassesQueryParams(t *testing.T) {
	t.Parallel()

	bot := &fakeChatbot{res: chatbotx.Result{Kind: chatbotx.ResultSupplierSummary, Text: "Acme sells tools."}}
	h := newTestRouter(t, Config{}, bot, &fakeCatalog{})

	rec := serve(h, http.MethodGet, "/chatbot/?query=hi&supplier_id=7&brand=Acme&product_name=Anvil")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	want := chatbotx.Request{Query: "hi", SupplierID: 7, Brand: "Acme", ProductName: "Anvil"}
	if bot.lastReq != want {
		t.Fatalf("request = %#v, want %#v", bot.lastReq, want)
	}

	body := decodeBody(t, rec)
	if len(body) != 1 || body["supplier_summary"] != "Acme sells tools." {
		t.Fatalf("unexpected body: %#v", body)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestChatbotRejectsNonIntegerSupplierID(t *testing.T) {
	t.Parallel()

	bot := &fakeChatbot{}
	h := newTestRouter(t, Config{}, bot, &fakeCatalog{})

	rec := serve(h, http.MethodGet, "/chatbot/?supplier_id=seven")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "supplier_id must be an integer" {
		t.Fatalf("unexpected body: %#v", body)
	}
	if bot.calls != 0 {
		t.Fatal("chatbot should not run for invalid input")
	}
}

func TestChatbotErrorStatus(t *testing.T) {
	t.Parallel()

	notFound := chatbotx.Result{Kind: chatbotx.ResultError, Err: contractx.NotFound("Supplier not found")}

	cases := []struct {
		name   string
		strict bool
		res    chatbotx.Result
		want   int
	}{
		{"default keeps 200", false, notFound, http.StatusOK},
		{"strict not found", true, notFound, http.StatusNotFound},
		{"strict missing input", true, chatbotx.Result{Kind: chatbotx.ResultError, Err: contractx.MissingInput("Brand name is required")}, http.StatusBadRequest},
		{"strict unexpected format", true, chatbotx.Result{Kind: chatbotx.ResultError, Err: contractx.UnexpectedFormat()}, http.StatusUnprocessableEntity},
		{"strict store failure", true, chatbotx.Result{Kind: chatbotx.ResultError, Err: fmt.Errorf("%w: boom", contractx.ErrStore)}, http.StatusBadGateway},
		{"strict success", true, chatbotx.Result{Kind: chatbotx.ResultSummary, Text: "ok"}, http.StatusOK},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestRouter(t, Config{StrictStatus: tc.strict}, &fakeChatbot{res: tc.res}, &fakeCatalog{})
			rec := serve(h, http.MethodGet, "/chatbot/?supplier_id=99")
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestChatbotGraphFailure(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, Config{}, &fakeChatbot{err: errors.New("graph exploded")}, &fakeCatalog{})

	rec := serve(h, http.MethodGet, "/chatbot/?brand=acme")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Internal error" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestChatbotRedirectsWithoutTrailingSlash(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, Config{}, &fakeChatbot{}, &fakeCatalog{})

	rec := serve(h, http.MethodGet, "/chatbot")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
}

func TestProducts(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{products: []catalogx.Product{
		{ID: 1, Name: "Anvil", Brand: "Acme", Price: 19.99},
		{ID: 2, Name: "Portal Gun", Brand: "Aperture", Price: 999},
	}}
	h := newTestRouter(t, Config{}, &fakeChatbot{}, catalog)

	rec := serve(h, http.MethodGet, "/products/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []catalogx.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}

	rec = serve(h, http.MethodGet, "/products/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["name"] != "Portal Gun" {
		t.Fatalf("unexpected body: %#v", body)
	}

	rec = serve(h, http.MethodGet, "/products/42")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Product not found" {
		t.Fatalf("unexpected body: %#v", body)
	}

	rec = serve(h, http.MethodGet, "/products/abc")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestSuppliersAndTestDB(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{suppliers: []catalogx.Supplier{{ID: 7, Name: "Acme Supply"}}}
	h := newTestRouter(t, Config{}, &fakeChatbot{}, catalog)

	rec := serve(h, http.MethodGet, "/suppliers/")
	if rec.Code != http.StatusOK || !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(h, http.MethodGet, "/test-db/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	suppliers, ok := body["suppliers"].([]any)
	if !ok || len(suppliers) != 1 {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestStoreFailureHidesDriverError(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, Config{}, &fakeChatbot{}, &fakeCatalog{err: errors.New("pq: password authentication failed")})

	rec := serve(h, http.MethodGet, "/suppliers/")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Fatalf("driver error leaked: %s", rec.Body.String())
	}
	if body := decodeBody(t, rec); body["error"] != "Catalog store unavailable" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, Config{}, &fakeChatbot{}, &fakeCatalog{})
	if rec := serve(h, http.MethodGet, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	h = newTestRouter(t, Config{}, &fakeChatbot{}, &fakeCatalog{pingErr: errors.New("down")})
	if rec := serve(h, http.MethodGet, "/health"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, Config{}, &fakeChatbot{}, &fakeCatalog{})

	req := httptest.NewRequest(http.MethodOptions, "/chatbot/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Allow-Credentials = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/suppliers/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected Allow-Origin for foreign origin: %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, Config{}, &fakeChatbot{}, &fakeCatalog{})
	serve(h, http.MethodGet, "/health")

	rec := serve(h, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("expected http_requests_total in metrics output")
	}
}

func TestMetricsRecordUnmatchedRequests(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, Config{}, &fakeChatbot{}, &fakeCatalog{})

	notFound := metricsx.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(notFound)
	rec := serve(h, http.MethodGet, "/no-such-route")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := testutil.ToFloat64(notFound); got < before+1 {
		t.Fatalf("unmatched 404 counter = %v, want at least %v", got, before+1)
	}

	notAllowed := metricsx.HTTPRequests.WithLabelValues(http.MethodDelete, "unmatched", "405")
	before = testutil.ToFloat64(notAllowed)
	rec = serve(h, http.MethodDelete, "/health")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Method Not Allowed" {
		t.Fatalf("unexpected body: %v", body)
	}
	if got := testutil.ToFloat64(notAllowed); got < before+1 {
		t.Fatalf("unmatched 405 counter = %v, want at least %v", got, before+1)
	}
}

func TestStatusForDefaults(t *testing.T) {
	t.Parallel()

	if got := statusFor(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("statusFor() = %d, want 500", got)
	}
	if got := statusFor(fmt.Errorf("%w: x", contractx.ErrModelInvoke)); got != http.StatusBadGateway {
		t.Fatalf("statusFor() = %d, want 502", got)
	}
}
