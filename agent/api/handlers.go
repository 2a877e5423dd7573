package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	chatbotx "github.com/tanpawarit/catalog-chatbot/agent/agents/chatbot"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

func (s *Server) handleChatbot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var supplierID int64
	if raw := strings.TrimSpace(q.Get("supplier_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "supplier_id must be an integer")
			return
		}
		supplierID = id
	}

	res, err := s.chatbot.Handle(r.Context(), chatbotx.Request{
		Query:       q.Get("query"),
		SupplierID:  supplierID,
		Brand:       q.Get("brand"),
		ProductName: q.Get("product_name"),
	})
	if err != nil {
		requestLogger(r).Error().Err(err).Msg("chatbot graph failed")
		writeError(w, http.StatusInternalServerError, contractx.PublicMessage(err))
		return
	}

	status := http.StatusOK
	if s.cfg.StrictStatus && res.Kind == chatbotx.ResultError {
		status = statusFor(res.Err)
	}
	writeJSON(w, status, res)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context())
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "product_id must be an integer")
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), id)
	if errors.Is(err, catalogx.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := s.catalog.ListSuppliers(r.Context())
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (s *Server) handleTestDB(w http.ResponseWriter, r *http.Request) {
	suppliers, err := s.catalog.ListSuppliers(r.Context())
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suppliers": suppliers})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Ping(r.Context()); err != nil {
		requestLogger(r).Warn().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	requestLogger(r).Error().Err(err).Msg("catalog query failed")
	writeError(w, http.StatusBadGateway, contractx.PublicMessage(contractx.ErrStore))
}

// statusFor maps a routing failure onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, contractx.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, contractx.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, contractx.ErrUnexpectedFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contractx.ErrStore), errors.Is(err, contractx.ErrModelInvoke):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
