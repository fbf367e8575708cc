package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/errors"
)

func TestGetBible_FetchChapter(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"verses":[
			{"chapter":"3","verse":"17","text":"For God sent not his Son "},
			{"chapter":3,"verse":16,"text":"For God so loved the world"}
		]}`))
	}))
	defer srv.Close()

	g := NewGetBible(srv.URL, srv.Client())
	verses, err := g.FetchChapter(context.Background(), "kjv", "JHN", 3)
	require.NoError(t, err)

	assert.Equal(t, "/kjv/43/3.json", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	require.Len(t, verses, 2)
	assert.Equal(t, 16, verses[0].Verse)
	assert.Equal(t, "JHN-3-16", verses[0].ID)
	assert.Equal(t, 17, verses[1].Verse)
	assert.Equal(t, 3, verses[1].Chapter)
	assert.Equal(t, "For God sent not his Son", verses[1].Text)
}

func TestGetBible_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewGetBible(srv.URL, srv.Client()).FetchChapter(context.Background(), "kjv", "GEN", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnavailable))
}

func TestGetBible_DecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewGetBible(srv.URL, srv.Client()).FetchChapter(context.Background(), "kjv", "GEN", 1)
	assert.Error(t, err)
}

func TestGetBible_UnknownBook(t *testing.T) {
	_, err := NewGetBible("http://unused", nil).FetchChapter(context.Background(), "kjv", "XXX", 1)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
