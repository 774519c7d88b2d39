// Package server exposes the analytics assistant over HTTP: login, chat,
// KPI dashboards, member search, bookmarks, and reports, plus the
// embedded web console.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/callsight/callsight/internal/agent"
	"github.com/callsight/callsight/internal/auth"
	"github.com/callsight/callsight/internal/bus"
	"github.com/callsight/callsight/internal/history"
	"github.com/callsight/callsight/internal/knowledge"
	"github.com/callsight/callsight/internal/report"
	"github.com/callsight/callsight/internal/store"
	"github.com/callsight/callsight/internal/worker"
	webassets "github.com/callsight/callsight/web"
)

// Options configure a Server.
type Options struct {
	Addr    string
	Version string

	Auth    *auth.Service
	Store   *store.Store
	Agent   *agent.Agent
	Worker  *worker.Worker
	History *history.Service
}

// Server is the HTTP gateway.
type Server struct {
	opts  Options
	mux   *http.ServeMux
	start time.Time
}

// New builds the server and registers all routes.
func New(opts Options) *Server {
	s := &Server{
		opts:  opts,
		mux:   http.NewServeMux(),
		start: time.Now(),
	}
	s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return withCORS(s.mux) }

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("http server listening", "addr", s.opts.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/status", s.handleStatus)
	s.mux.HandleFunc("/api/v1/login", s.handleLogin)
	s.mux.HandleFunc("/api/v1/chat", s.handleChat)
	s.mux.HandleFunc("/api/v1/kpis", s.handleKPIs)
	s.mux.HandleFunc("/api/v1/tools", s.handleTools)
	s.mux.HandleFunc("/api/v1/members", s.handleMemberSearch)
	s.mux.HandleFunc("/api/v1/members/", s.handleMemberByID)
	s.mux.HandleFunc("/api/v1/history", s.handleHistory)
	s.mux.HandleFunc("/api/v1/session/member", s.handleSessionMember)
	s.mux.HandleFunc("/api/v1/bookmarks", s.handleBookmarks)
	s.mux.HandleFunc("/api/v1/bookmarks/", s.handleBookmarkDelete)
	s.mux.HandleFunc("/api/v1/bookmarks-export", s.handleBookmarksExport)
	s.mux.HandleFunc("/api/v1/bookmarks-import", s.handleBookmarksImport)
	s.mux.HandleFunc("/api/v1/reports", s.handleReports)
	s.mux.HandleFunc("/api/v1/reports/", s.handleReportExport)
	s.mux.HandleFunc("/api/v1/reports-import", s.handleReportImport)

	s.mux.Handle("/", http.FileServer(http.FS(webassets.Files)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requireUser authenticates the request's bearer token and returns the
// directory entry it belongs to. Writes the error response on failure.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) *auth.User {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return nil
	}
	claims, err := s.opts.Auth.VerifyToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return nil
	}
	user := s.opts.Auth.UserByID(claims.Subject)
	if user == nil || !user.Active {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return nil
	}
	return user
}

// resolveRole picks the effective role view: the requested role when the
// user may assume it, else the user's own role. Writes 403 and returns
// "" when the requested role is off-limits.
func (s *Server) resolveRole(w http.ResponseWriter, user *auth.User, requested string) knowledge.Role {
	if requested == "" {
		return user.Role
	}
	role := knowledge.Role(requested)
	if !knowledge.ValidRole(role) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown role %q", requested))
		return ""
	}
	if !auth.CanAccessRole(user, role) {
		writeError(w, http.StatusForbidden, fmt.Sprintf("role %q not available to you", requested))
		return ""
	}
	return role
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":        s.opts.Version,
		"uptime_seconds": int(time.Since(s.start).Seconds()),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.opts.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := s.opts.Auth.IssueToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":          token,
		"user":           user,
		"availableRoles": auth.AvailableRoles(user),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	var req struct {
		Query  string `json:"query"`
		Role   string `json:"role"`
		ChatID string `json:"chatId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	role := s.resolveRole(w, user, req.Role)
	if role == "" {
		return
	}
	chatID := req.ChatID
	if chatID == "" {
		chatID = user.ID
	}

	resp := s.opts.Worker.Process(r.Context(), &bus.InboundQuery{
		Channel:  "web",
		SenderID: user.ID,
		ChatID:   chatID,
		Role:     role,
		Query:    req.Query,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	role := s.resolveRole(w, user, r.URL.Query().Get("role"))
	if role == "" {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"role":        role,
		"cards":       agent.RoleKPIs(s.opts.Store, role),
		"definitions": s.opts.Store.KPIsByRole(role),
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	if s.requireUser(w, r) == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.opts.Agent.Registry().Descriptors())
}

// handleMemberSearch returns the full match list, unlike the chat tool
// which keeps only the first hit.
func (s *Server) handleMemberSearch(w http.ResponseWriter, r *http.Request) {
	if s.requireUser(w, r) == nil {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	var matches []*store.MemberProfile
	switch r.URL.Query().Get("type") {
	case "id":
		if m := s.opts.Store.MemberByID(q); m != nil {
			matches = append(matches, m)
		}
	case "phone":
		matches = s.opts.Store.MembersByPhone(q)
	default:
		matches = s.opts.Store.MembersByName(q)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(matches),
		"members": matches,
	})
}

func (s *Server) handleMemberByID(w http.ResponseWriter, r *http.Request) {
	if s.requireUser(w, r) == nil {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/members/")
	member := s.opts.Store.MemberByID(id)
	if member == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("member %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	sessionKey := r.URL.Query().Get("session")
	if sessionKey == "" {
		sessionKey = "web:" + user.ID
	}
	turns, err := s.opts.History.ListTurns(sessionKey, 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": sessionKey, "turns": turns})
}

// handleSessionMember pins or clears the member whose journey context is
// injected into subsequent chat queries.
func (s *Server) handleSessionMember(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	var req struct {
		MemberID string `json:"memberId"`
		ChatID   string `json:"chatId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	chatID := req.ChatID
	if chatID == "" {
		chatID = user.ID
	}

	if err := s.opts.Worker.SelectMember("web", chatID, user.Role, req.MemberID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"memberId": req.MemberID})
}

func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		bookmarks, err := s.opts.History.ListBookmarks(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "bookmarks unavailable")
			return
		}
		writeJSON(w, http.StatusOK, bookmarks)

	case http.MethodPost:
		var b history.Bookmark
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		b.Owner = user.ID
		b.BookmarkID = ""
		if err := s.opts.History.AddBookmark(&b); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, b)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBookmarkDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/bookmarks/")
	ok, err := s.opts.History.DeleteBookmark(user.ID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBookmarksExport(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	data, err := s.opts.History.ExportBookmarks(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.json"`)
	_, _ = w.Write(data)
}

func (s *Server) handleBookmarksImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "body too large")
		return
	}
	n, err := s.opts.History.ImportBookmarks(user.ID, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		reports, err := s.opts.History.ListReports(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "reports unavailable")
			return
		}
		writeJSON(w, http.StatusOK, reports)

	case http.MethodPost:
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Type        string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Type == "" {
			req.Type = string(report.TypeExecutive)
		}

		bookmarks, err := s.opts.History.ListBookmarks(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "bookmarks unavailable")
			return
		}
		doc, err := report.Build(bookmarks, report.Options{
			Title:       req.Title,
			Description: req.Description,
			Type:        report.Type(req.Type),
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		payload, err := json.Marshal(doc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "report serialization failed")
			return
		}
		if err := s.opts.History.SaveReport(&history.Report{
			ReportID:   doc.ID,
			Owner:      user.ID,
			Title:      doc.Title,
			ReportType: string(doc.Type),
			Payload:    string(payload),
		}); err != nil {
			writeError(w, http.StatusInternalServerError, "report save failed")
			return
		}
		writeJSON(w, http.StatusCreated, doc)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleReportExport serves /api/v1/reports/{id}/export.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/reports/")
	id := strings.TrimSuffix(rest, "/export")
	if id == rest {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	rec, err := s.opts.History.GetReport(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report unavailable")
		return
	}
	if rec == nil || rec.Owner != user.ID {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	var doc report.Document
	if err := json.Unmarshal([]byte(rec.Payload), &doc); err != nil {
		writeError(w, http.StatusInternalServerError, "report payload corrupt")
		return
	}
	data, err := report.Export(&doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(&doc, time.Now())))
	_, _ = w.Write(data)
}

func (s *Server) handleReportImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "body too large")
		return
	}
	doc, err := report.Import(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report serialization failed")
		return
	}
	if err := s.opts.History.SaveReport(&history.Report{
		ReportID:   doc.ID,
		Owner:      user.ID,
		Title:      doc.Title,
		ReportType: string(doc.Type),
		Payload:    string(payload),
	}); err != nil {
		writeError(w, http.StatusBadRequest, "report already exists or save failed")
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}
