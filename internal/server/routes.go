package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Documents: upload + list share the collection route; get and ask
	// hang off the item route
	mux.HandleFunc("/api/documents", s.handleDocumentsRoute)
	mux.HandleFunc("/api/documents/", s.handleDocumentRoutes)

	// Policies (corpus input for search)
	mux.HandleFunc("/api/policies", s.app.PolicyHandler.PoliciesHandler)

	// Search
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchHandler)
	mux.HandleFunc("/api/search/queries", s.app.ActivityHandler.SearchQueriesHandler)

	// Audit
	mux.HandleFunc("/api/activities", s.app.ActivityHandler.ActivitiesHandler)

	// Status
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)

	return mux
}

func (s *Server) handleDocumentsRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.app.DocumentHandler.UploadHandler(w, r)
	case http.MethodGet:
		s.app.DocumentHandler.ListHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDocumentRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/ask") {
		s.app.SearchHandler.AskHandler(w, r)
		return
	}
	s.app.DocumentHandler.GetHandler(w, r)
}
