package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"bible-tui/internal/bible"
	"bible-tui/internal/errors"
)

// DefaultAPIBibleURL is the API.Bible REST endpoint.
const DefaultAPIBibleURL = "https://rest.api.bible/v1"

// Upstream bible ids keyed by app version.
var apiBibleIDs = map[string]string{
	"kjv": "de4e12af7f28f599-02",
	"web": "9879dbb7cfe39e4d-04",
	"cus": "ccb9229763033d43-01", // CUNPSS
	"cns": "3e27b3e43e1df61d-01", // CCB
}

// Book ids that differ upstream.
var apiBibleBookIDs = map[string]string{
	"SOS": "SNG",
}

const verseFetchLimit = 8

// APIBible fetches chapters from API.Bible. It needs an API key.
type APIBible struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIBible creates an API.Bible source. A missing key is reported on use.
func NewAPIBible(baseURL, apiKey string, httpClient *http.Client) *APIBible {
	if baseURL == "" {
		baseURL = DefaultAPIBibleURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &APIBible{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, httpClient: httpClient}
}

// BibleInfo describes one bible offered by API.Bible.
type BibleInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Description  string `json:"description"`
	Language     string `json:"language"`
}

// FetchChapter implements Source. It lists the chapter's verses, then fetches
// every verse's text with bounded concurrency. A verse that fails to load
// gets empty text.
func (a *APIBible) FetchChapter(ctx context.Context, version, bookID string, chapter int) ([]bible.Verse, error) {
	if a.apiKey == "" {
		return nil, errors.Configuration("Bible API key not configured. Set BIBLE_API_KEY")
	}
	bibleID, ok := apiBibleIDs[version]
	if !ok {
		return nil, errors.Validation(fmt.Sprintf("unsupported version: %s", version))
	}
	if _, ok := bible.BookByID(bookID); !ok {
		return nil, errors.Validation(fmt.Sprintf("invalid book ID: %s", bookID))
	}
	apiBook := bookID
	if mapped, ok := apiBibleBookIDs[bookID]; ok {
		apiBook = mapped
	}

	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/bibles/%s/chapters/%s.%d/verses", bibleID, apiBook, chapter)
	if err := a.get(ctx, path, nil, &list); err != nil {
		return nil, err
	}

	verses := make([]bible.Verse, len(list.Data))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verseFetchLimit)

	for i, info := range list.Data {
		n := verseNumber(info.ID)
		verses[i] = bible.Verse{
			ID:      bible.VerseID(bookID, chapter, n),
			BookID:  bookID,
			Chapter: chapter,
			Verse:   n,
		}

		g.Go(func() error {
			var body struct {
				Data struct {
					Content string `json:"content"`
				} `json:"data"`
			}
			q := url.Values{
				"content-type":            {"text"},
				"include-notes":           {"false"},
				"include-titles":          {"false"},
				"include-chapter-numbers": {"false"},
				"include-verse-numbers":   {"false"},
				"include-verse-spans":     {"false"},
			}
			if err := a.get(gctx, fmt.Sprintf("/bibles/%s/verses/%s", bibleID, info.ID), q, &body); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return nil
			}
			verses[i].Text = strings.TrimSpace(body.Data.Content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Unavailable("fetch api.bible verses", err)
	}
	return verses, nil
}

// ListBibles lists the bibles available for an ISO 639-3 language code.
// "en" and "zh" are accepted as shorthands.
func (a *APIBible) ListBibles(ctx context.Context, language string) ([]BibleInfo, error) {
	if a.apiKey == "" {
		return nil, errors.Configuration("Bible API key not configured")
	}
	switch language {
	case "", string(bible.English):
		language = "eng"
	case string(bible.Chinese):
		language = "zho"
	}

	var body struct {
		Data []struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			Abbreviation string `json:"abbreviation"`
			Description  string `json:"description"`
			Language     struct {
				Name string `json:"name"`
			} `json:"language"`
		} `json:"data"`
	}
	if err := a.get(ctx, "/bibles", url.Values{"language": {language}}, &body); err != nil {
		return nil, err
	}

	out := make([]BibleInfo, 0, len(body.Data))
	for _, b := range body.Data {
		out = append(out, BibleInfo{
			ID:           b.ID,
			Name:         b.Name,
			Abbreviation: b.Abbreviation,
			Description:  b.Description,
			Language:     b.Language.Name,
		})
	}
	return out, nil
}

func (a *APIBible) get(ctx context.Context, path string, query url.Values, out any) error {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Internal("build api.bible request", err)
	}
	req.Header.Set("api-key", a.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return errors.Unavailable("api.bible request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Unavailable("api.bible request failed",
			fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Unavailable("decode api.bible response", err)
	}
	return nil
}

// verseNumber extracts 16 from "JHN.3.16".
func verseNumber(id string) int {
	parts := strings.Split(id, ".")
	if len(parts) < 3 {
		return 0
	}
	n, _ := strconv.Atoi(parts[2])
	return n
}
