package api

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/session"
)

// sessionResponse is the JSON view of a session.
type sessionResponse struct {
	ID        string         `json:"id"`
	Params    session.Params `json:"params"`
	Tags      []cloud.Tag    `json:"tags"`
	Bounds    geom.Rect      `json:"bounds"`
	Stats     layouter.Stats `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

func newSessionResponse(sess *session.Session) sessionResponse {
	l := sess.Layout()
	return sessionResponse{
		ID:        sess.ID,
		Params:    sess.Params,
		Tags:      sess.Tags,
		Bounds:    l.Bounds,
		Stats:     l.Stats,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
		ExpiresAt: sess.ExpiresAt,
	}
}

// placeRequest is the body of POST /v1/sessions/{id}/rectangles.
type placeRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label,omitempty"`
}

// placeResponse reports one placement.
type placeResponse struct {
	Index int `json:"index"`
	cloud.Tag
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var p session.Params
	if r.ContentLength != 0 {
		if err := s.decode(w, r, &p); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
	}
	sess, err := session.New(p, s.sessionTTL)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "compaction", sess.Params.Compaction)
	w.Header().Set("Location", "/v1/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ls := s.session(id)
	ls.mu.Lock()
	defer ls.mu.Unlock()

	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.forget(id)
	w.WriteHeader(http.StatusNoContent)
}

// handlePlace places one rectangle into a session. Placements into the
// same session are serialized; each sees all earlier ones.
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	id := chi.URLParam(r, "id")
	ls := s.session(id)
	ls.mu.Lock()
	defer ls.mu.Unlock()

	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	l, err := ls.layouter(sess)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	tag, err := sess.Place(l, geom.Sz(req.Width, req.Height), req.Label)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sess.Touch(s.sessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		// The layouter already holds the rectangle; rebuild it next time.
		ls.l = nil
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, placeResponse{Index: len(sess.Tags) - 1, Tag: tag})
}

// handleRenderSession renders the current state of a session.
func (s *Server) handleRenderSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:    []string{formatParam(r)},
		Palette:    q.Get("palette"),
		Background: q.Get("background"),
		NoLabels:   q.Get("labels") == "false",
		Logger:     s.logger,
	}
	s.writeArtifact(w, r, sess.Layout(), opts)
}

// load fetches the session named by the id URL parameter.
func (s *Server) load(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		s.forget(id)
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, errors.ErrCodeSessionExpired) {
			s.forget(id)
		}
		return nil, err
	}
	if sess == nil {
		s.forget(id)
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	return sess, nil
}

// prune drops cached layouters whose session is gone from the store and
// returns how many were dropped. Entries busy with a request are skipped.
func (s *Server) prune(ctx context.Context) int {
	s.mu.Lock()
	live := maps.Clone(s.live)
	s.mu.Unlock()

	dropped := 0
	for id, ls := range live {
		if !ls.mu.TryLock() {
			continue
		}
		sess, err := s.store.Get(ctx, id)
		gone := (err == nil && sess == nil) || errors.Is(err, errors.ErrCodeSessionExpired)
		if gone {
			s.mu.Lock()
			if s.live[id] == ls {
				delete(s.live, id)
				dropped++
			}
			s.mu.Unlock()
		}
		ls.mu.Unlock()
	}
	return dropped
}

// layouter returns the cached layouter if it matches sess, otherwise it
// replays the session. Must be called with ls.mu held.
func (ls *liveSession) layouter(sess *session.Session) (*layouter.Layouter, error) {
	if ls.l != nil && slices.Equal(ls.l.Rectangles(), sessionRects(sess)) {
		return ls.l, nil
	}
	l, err := sess.Layouter()
	if err != nil {
		return nil, err
	}
	ls.l = l
	return l, nil
}

func sessionRects(sess *session.Session) []geom.Rect {
	rects := make([]geom.Rect, len(sess.Tags))
	for i, t := range sess.Tags {
		rects[i] = t.Rect()
	}
	return rects
}
