package httpapi

import "net/http"

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	ns, err := s.notifications.FindByUserID(r.Context(), claims.Subject)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	n, err := s.notifications.MarkAsRead(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	ns, err := s.notifications.MarkAllAsRead(r.Context(), claims.Subject)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Bad Request", Detail: "invalid id"})
		return
	}
	if err := s.notifications.DeleteByID(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
