package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"bible-tui/internal/api"
	"bible-tui/internal/bible"
	"bible-tui/internal/errors"
	"bible-tui/internal/reference"
)

// ChapterResponse is a chapter plus whether it is the placeholder.
type ChapterResponse struct {
	Verses      []bible.Verse `json:"verses"`
	Unavailable bool          `json:"unavailable"`
}

// ResolveResponse is a resolved jump.
type ResolveResponse struct {
	reference.Reference
	Display string `json:"display"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	success(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"backend": string(s.upstream.Backend()),
	}, s.logger)
}

func (s *Server) handleVersions(w http.ResponseWriter, _ *http.Request) {
	success(w, http.StatusOK, bible.Versions(), s.logger)
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	version, err := versionParam(r)
	if err != nil {
		fail(w, err, s.logger)
		return
	}
	success(w, http.StatusOK, s.client.GetBooks(r.Context(), version), s.logger)
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "version")
	if !bible.IsVersion(version) {
		fail(w, errors.Validation(fmt.Sprintf("unknown version %q", version)), s.logger)
		return
	}
	book, ok := bible.BookByID(strings.ToUpper(chi.URLParam(r, "bookID")))
	if !ok {
		fail(w, errors.NotFound(fmt.Sprintf("unknown book %q", chi.URLParam(r, "bookID"))), s.logger)
		return
	}
	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil || chapter < 1 || chapter > book.Chapters {
		fail(w, errors.NotFound(fmt.Sprintf("%s has no chapter %s", book.Name, chi.URLParam(r, "chapter"))), s.logger)
		return
	}

	verses := s.client.GetChapter(r.Context(), version, book.ID, chapter)
	success(w, http.StatusOK, ChapterResponse{
		Verses:      verses,
		Unavailable: api.IsUnavailable(verses),
	}, s.logger)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		fail(w, errors.Validation("q is required"), s.logger)
		return
	}
	version, err := versionParam(r)
	if err != nil {
		fail(w, err, s.logger)
		return
	}
	ref, ok := reference.Resolve(q, s.client.GetBooks(r.Context(), version))
	if !ok {
		fail(w, errors.NotFound(fmt.Sprintf("no match for %q", q)), s.logger)
		return
	}
	success(w, http.StatusOK, ResolveResponse{Reference: ref, Display: ref.String()}, s.logger)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		fail(w, errors.Validation("q is required"), s.logger)
		return
	}
	version, err := versionParam(r)
	if err != nil {
		fail(w, err, s.logger)
		return
	}
	verses, err := s.client.SearchVerses(r.Context(), version, q)
	if err != nil {
		fail(w, errors.Unavailable("search interrupted", err), s.logger)
		return
	}
	if verses == nil {
		verses = []bible.Verse{}
	}
	success(w, http.StatusOK, verses, s.logger)
}

func (s *Server) handleBibles(w http.ResponseWriter, r *http.Request) {
	bibles, err := s.client.ListBibles(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		fail(w, err, s.logger)
		return
	}
	success(w, http.StatusOK, bibles, s.logger)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.upstream.RequestReady(r.Context()); err != nil {
		fail(w, errors.Unavailable("ready request failed", err), s.logger)
		return
	}
	success(w, http.StatusAccepted, map[string]string{"status": "requested"}, s.logger)
}

func versionParam(r *http.Request) (string, error) {
	v := r.URL.Query().Get("version")
	if v == "" {
		return bible.DefaultVersionID, nil
	}
	if !bible.IsVersion(v) {
		return "", errors.Validation(fmt.Sprintf("unknown version %q", v))
	}
	return v, nil
}
