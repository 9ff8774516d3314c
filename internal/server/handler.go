// Package server exposes the cart API over HTTP: POST /carts,
// GET /carts/{id}, PUT /carts/{id} (full replace). It is the
// lightweight backend the storefront gateway consumes.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type Server struct {
	repo   port.CartRepository
	logger *slog.Logger
}

func New(repo port.CartRepository, logger *slog.Logger) *Server {
	return &Server{repo: repo, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /carts", s.createCart)
	mux.HandleFunc("GET /carts/{id}", s.getCart)
	mux.HandleFunc("PUT /carts/{id}", s.replaceItems)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

type wireItem struct {
	ProductID wireID `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type wireCart struct {
	ID       string     `json:"id"`
	UserID   wireID     `json:"userId"`
	Date     string     `json:"date,omitempty"`
	Products []wireItem `json:"products"`
}

// wireID tolerates clients that send ids as JSON numbers, like the mock
// demo API the gateway also speaks to.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = wireID(s)
		return nil
	}
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = wireID(n.String())
	return nil
}

func (s *Server) createCart(w http.ResponseWriter, r *http.Request) {
	var req wireCart
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" {
		s.writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	cart, err := s.repo.CreateCart(r.Context(), string(req.UserID))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, mapCart(cart))
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.repo.GetCart(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, mapCart(cart))
}

func (s *Server) replaceItems(w http.ResponseWriter, r *http.Request) {
	var req wireCart
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" {
		s.writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	items := make([]domain.CartItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, domain.CartItem{ProductID: string(p.ProductID), Quantity: p.Quantity})
	}

	cart, err := s.repo.ReplaceItems(r.Context(), r.PathValue("id"), string(req.UserID), items)
	if err != nil {
		s.writeRepoError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, mapCart(cart))
}

func (s *Server) writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCartNotFound):
		s.writeError(w, http.StatusNotFound, "cart not found")
	case errors.Is(err, domain.ErrInvalidQuantity):
		s.writeError(w, http.StatusBadRequest, "quantity must be at least 1")
	default:
		s.logger.Error("cart repository error", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode error", slog.Any("err", err))
	}
}

func mapCart(cart domain.RemoteCart) wireCart {
	products := make([]wireItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		products = append(products, wireItem{ProductID: wireID(item.ProductID), Quantity: item.Quantity})
	}

	return wireCart{ID: cart.ID, UserID: wireID(cart.OwnerID), Products: products}
}
