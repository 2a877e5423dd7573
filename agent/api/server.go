package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	chatbotx "github.com/tanpawarit/catalog-chatbot/agent/agents/chatbot"
)

type Config struct {
	Addr            string        `envconfig:"ADDR" split_words:"true" default:":8000"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" split_words:"true" default:"http://localhost:3000"`
	StrictStatus    bool          `envconfig:"STRICT_STATUS" split_words:"true" default:"false"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" split_words:"true" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"15s"`
}

// Chatbot answers one routed catalog question.
type Chatbot interface {
	Handle(ctx context.Context, req chatbotx.Request) (chatbotx.Result, error)
}

// Catalog is the read-only record surface served next to the chatbot.
type Catalog interface {
	Ping(ctx context.Context) error
	GetProduct(ctx context.Context, id int64) (*catalogx.Product, error)
	ListProducts(ctx context.Context) ([]catalogx.Product, error)
	ListSuppliers(ctx context.Context) ([]catalogx.Supplier, error)
}

type Server struct {
	cfg     Config
	chatbot Chatbot
	catalog Catalog
}

func NewServer(cfg Config, chatbot Chatbot, catalog Catalog) (*Server, error) {
	if chatbot == nil {
		return nil, errors.New("chatbot is required")
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	return &Server{cfg: cfg, chatbot: chatbot, catalog: catalog}, nil
}

// Router wires every endpoint behind the access log, metrics and CORS
// middleware.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/chatbot/", s.handleChatbot).Methods(http.MethodGet)
	router.HandleFunc("/products/", s.handleListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", s.handleGetProduct).Methods(http.MethodGet)
	router.HandleFunc("/suppliers/", s.handleListSuppliers).Methods(http.MethodGet)
	router.HandleFunc("/test-db/", s.handleTestDB).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	// mux skips Use middleware for its fallback handlers, so they are
	// instrumented directly and recorded under the "unmatched" route.
	router.NotFoundHandler = metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	}))
	router.MethodNotAllowedHandler = metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}))

	router.Use(metricsMiddleware)

	return accessLog(corsHandler(s.cfg.AllowedOrigins)(router))
}

// HTTPServer builds the listener-facing server with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}
