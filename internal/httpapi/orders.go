package httpapi

import (
	"net/http"

	"github.com/Kruzk02/grocery-store-api/internal/application/service"
)

// Order handlers.

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var in service.OrderInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "bad json"})
		return
	}
	o, err := s.orders.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	var in service.OrderInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "bad json"})
		return
	}
	o, err := s.orders.Update(r.Context(), id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	o, err := s.orders.FindByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// Derived, never stored; surface it on the detail view.
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          o.ID,
		"customer_id": o.CustomerID,
		"created_at":  o.CreatedAt,
		"items":       o.Items,
		"total":       o.Total(),
	})
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	if _, err := s.orders.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	orders, err := s.orders.FindByCustomerID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Customer handlers.

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var in service.CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "bad json"})
		return
	}
	c, err := s.customers.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	var in service.CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "bad json"})
		return
	}
	c, err := s.customers.Update(r.Context(), id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	c, err := s.customers.FindByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	if _, err := s.customers.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
