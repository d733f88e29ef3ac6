package httpapi

import (
	"net/http"

	"github.com/Kruzk02/grocery-store-api/internal/application/service"
)

func (s *Server) listInventories(w http.ResponseWriter, r *http.Request) {
	invs, err := s.inventories.FindAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invs)
}

func (s *Server) getInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	inv, err := s.inventories.FindByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) createInventory(w http.ResponseWriter, r *http.Request) {
	var in service.InventoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "bad json"})
		return
	}
	inv, err := s.inventories.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) updateInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	var in service.InventoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "bad json"})
		return
	}
	inv, err := s.inventories.Update(r.Context(), id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) deleteInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	if err := s.inventories.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
