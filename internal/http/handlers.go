package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"tabib-chatbot/internal/core"
	"tabib-chatbot/internal/logger"
	"tabib-chatbot/internal/store"
	"tabib-chatbot/pkg"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server bundles together the dependencies required by HTTP handlers. It
// implements http.Handler so it can be passed to an http.Server.
type Server struct {
	Store     *store.SessionStore
	Dialogue  *core.Dialogue
	Templates *template.Template
	Log       *logger.Logger

	router *mux.Router
}

// NewServer constructs a Server and registers its routes.
func NewServer(sessions *store.SessionStore, dialogue *core.Dialogue, log *logger.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{
		Store:     sessions,
		Dialogue:  dialogue,
		Templates: tmpl,
		Log:       log,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.Use(loggingMiddleware(s.Log))

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/sessions", s.handleStartSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", s.handleChatPage).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/messages", s.handlePostMessage).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/end", s.handleEndSession).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", s.apiCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.apiGetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.apiDeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/language", s.apiSelectLanguage).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/messages", s.apiPostMessage).Methods(http.MethodPost)

	r.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)
}

// ServeHTTP dispatches to the mux router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// chatPage is the data rendered by chat.html.
type chatPage struct {
	ID       string
	Language string
	RTL      bool
	Lines    []core.HistoryLine
	State    string
	Error    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.Templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleStartSession creates a session for the language picked on the index
// page, seeds its transcript and redirects to the chat page.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	lang, err := core.ParseLanguage(r.FormValue("language"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h := s.Store.Create()
	if err := h.Do(func(sess *core.Session) error { return begin(sess, lang) }); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.Log.Info("session started", logrus.Fields{"session_id": h.ID, "language": lang.Code()})
	http.Redirect(w, r, "/sessions/"+h.ID, http.StatusSeeOther)
}

func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var page chatPage
	_ = h.Do(func(sess *core.Session) error {
		page = newChatPage(h.ID, sess)
		return nil
	})
	s.renderChat(w, http.StatusOK, page)
}

// handlePostMessage feeds the submitted answer to the dialogue and redirects
// back to the chat page. A failed generation re-renders the page with the
// localized failure message in place of the reply.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var page chatPage
	err := h.Do(func(sess *core.Session) error {
		_, err := s.Dialogue.Accept(r.Context(), sess, r.FormValue("content"))
		page = newChatPage(h.ID, sess)
		if core.IsRecoverable(err) {
			page.Error = core.FailureMessage(sess.Language())
		}
		return err
	})
	switch {
	case err == nil:
		http.Redirect(w, r, "/sessions/"+h.ID, http.StatusSeeOther)
	case core.IsRecoverable(err):
		s.Log.Warn("reply failed", logrus.Fields{"session_id": h.ID, "error": err.Error()})
		s.renderChat(w, statusFor(err), page)
	default:
		http.Error(w, err.Error(), statusFor(err))
	}
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := muxID(r)
	s.Store.Delete(id)
	s.Log.Info("session ended", logrus.Fields{"session_id": id})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderChat(w http.ResponseWriter, status int, page chatPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Templates.ExecuteTemplate(w, "chat.html", page); err != nil {
		s.Log.Error("failed to render chat page", logrus.Fields{"error": err.Error()})
	}
}

// lookup resolves the {id} route variable, writing a 404 when the session is
// unknown or expired.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Handle, bool) {
	h, err := s.Store.Get(muxID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return h, true
}

func muxID(r *http.Request) string { return mux.Vars(r)["id"] }

func newChatPage(id string, sess *core.Session) chatPage {
	return chatPage{
		ID:       id,
		Language: sess.Language().String(),
		RTL:      sess.Language() == core.Urdu,
		Lines:    core.History(sess),
		State:    sess.State().String(),
	}
}

// begin selects the language and seeds the transcript in one step.
func begin(sess *core.Session, lang core.Language) error {
	if err := sess.SelectLanguage(lang); err != nil {
		return err
	}
	return sess.Initialize()
}

func view(h *store.Handle, sess *core.Session) pkg.SessionView {
	tr := sess.Transcript()
	entries := make([]pkg.Entry, 0, len(tr))
	for _, e := range tr {
		entries = append(entries, pkg.Entry{Role: string(e.Role), Content: e.Content})
	}
	return pkg.SessionView{
		ID:            h.ID,
		CreatedAt:     h.CreatedAt,
		Language:      sess.Language().Code(),
		LanguageName:  languageName(sess.Language()),
		State:         sess.State().String(),
		Stage:         sess.Stage(),
		QuestionCount: sess.QuestionCount(),
		Transcript:    entries,
	}
}

func languageName(l core.Language) string {
	if l == core.LanguageUnset {
		return ""
	}
	return l.String()
}

// statusFor maps core and store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnknownLanguage):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrAlreadySelected),
		errors.Is(err, core.ErrNotInitialized),
		errors.Is(err, core.ErrAlreadyInitialized),
		errors.Is(err, core.ErrLanguageNotSelected):
		return http.StatusConflict
	case errors.Is(err, core.ErrGenerationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrServiceUnavailable), errors.Is(err, core.ErrAuthenticationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			log.Info("request", logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rw.status,
				"duration": time.Since(start).String(),
			})
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
