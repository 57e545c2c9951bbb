package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"tabib-chatbot/internal/core"
	"tabib-chatbot/internal/store"
	"tabib-chatbot/pkg"
)

// apiCreateSession creates a session. When the body names a language the
// session is also initialized so the first question is ready.
func (s *Server) apiCreateSession(w http.ResponseWriter, r *http.Request) {
	var req pkg.CreateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}
	var lang core.Language
	if req.Language != "" {
		var err error
		if lang, err = core.ParseLanguage(req.Language); err != nil {
			writeError(w, http.StatusBadRequest, err, "")
			return
		}
	}

	h := s.Store.Create()
	var v pkg.SessionView
	err := h.Do(func(sess *core.Session) error {
		if lang != core.LanguageUnset {
			if err := begin(sess, lang); err != nil {
				return err
			}
		}
		v = view(h, sess)
		return nil
	})
	if err != nil {
		s.Store.Delete(h.ID)
		writeError(w, statusFor(err), err, "")
		return
	}
	s.Log.Info("session created", logrus.Fields{"session_id": h.ID, "language": lang.Code()})
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) apiGetSession(w http.ResponseWriter, r *http.Request) {
	h, ok := s.apiLookup(w, r)
	if !ok {
		return
	}
	var v pkg.SessionView
	_ = h.Do(func(sess *core.Session) error {
		v = view(h, sess)
		return nil
	})
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) apiDeleteSession(w http.ResponseWriter, r *http.Request) {
	h, ok := s.apiLookup(w, r)
	if !ok {
		return
	}
	s.Store.Delete(h.ID)
	w.WriteHeader(http.StatusNoContent)
}

// apiSelectLanguage picks the language of an uninitialized session and seeds
// its transcript. A second call fails with 409.
func (s *Server) apiSelectLanguage(w http.ResponseWriter, r *http.Request) {
	h, ok := s.apiLookup(w, r)
	if !ok {
		return
	}
	var req pkg.LanguageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}
	lang, err := core.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}
	var v pkg.SessionView
	err = h.Do(func(sess *core.Session) error {
		if err := begin(sess, lang); err != nil {
			return err
		}
		v = view(h, sess)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err, "")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// apiPostMessage feeds one utterance to the dialogue. Generation failures
// return 502/504 with a localized message; the answer stays recorded.
func (s *Server) apiPostMessage(w http.ResponseWriter, r *http.Request) {
	h, ok := s.apiLookup(w, r)
	if !ok {
		return
	}
	var req pkg.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}
	var (
		resp pkg.ChatResponse
		lang core.Language
	)
	err := h.Do(func(sess *core.Session) error {
		lang = sess.Language()
		res, err := s.Dialogue.Accept(r.Context(), sess, req.Content)
		if err != nil {
			return err
		}
		resp = pkg.ChatResponse{
			Reply:     res.Reply,
			Generated: res.Generated,
			Ignored:   res.Ignored,
			Session:   view(h, sess),
		}
		return nil
	})
	if err != nil {
		msg := ""
		if core.IsRecoverable(err) {
			msg = core.FailureMessage(lang)
			s.Log.Warn("reply failed", logrus.Fields{"session_id": h.ID, "error": err.Error()})
		}
		writeError(w, statusFor(err), err, msg)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) apiLookup(w http.ResponseWriter, r *http.Request) (*store.Handle, bool) {
	h, err := s.Store.Get(muxID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, err, "")
		return nil, false
	}
	return h, true
}

// decodeJSON decodes the request body into v. An empty body leaves v as is.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error, message string) {
	writeJSON(w, status, pkg.ErrorResponse{Error: err.Error(), Message: message})
}
