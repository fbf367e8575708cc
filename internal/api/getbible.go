package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"bible-tui/internal/bible"
	"bible-tui/internal/errors"
)

// DefaultGetBibleURL is the public GetBible v2 endpoint.
const DefaultGetBibleURL = "https://api.getbible.net/v2"

// GetBible fetches chapters from the keyless GetBible API.
type GetBible struct {
	baseURL    string
	httpClient *http.Client
}

// NewGetBible creates a GetBible source. An empty baseURL uses the public endpoint.
func NewGetBible(baseURL string, httpClient *http.Client) *GetBible {
	if baseURL == "" {
		baseURL = DefaultGetBibleURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GetBible{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type getBibleChapter struct {
	Verses []struct {
		Chapter flexInt `json:"chapter"`
		Verse   flexInt `json:"verse"`
		Text    string  `json:"text"`
	} `json:"verses"`
}

// FetchChapter implements Source.
func (g *GetBible) FetchChapter(ctx context.Context, version, bookID string, chapter int) ([]bible.Verse, error) {
	n := bible.Number(bookID)
	if n == 0 {
		return nil, errors.NotFound(fmt.Sprintf("unknown book %q", bookID))
	}

	url := fmt.Sprintf("%s/%s/%d/%d.json", g.baseURL, version, n, chapter)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Internal("build getbible request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Unavailable("getbible request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Unavailable("getbible request failed",
			fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var data getBibleChapter
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Unavailable("decode getbible chapter", err)
	}

	verses := make([]bible.Verse, 0, len(data.Verses))
	for _, v := range data.Verses {
		ch := int(v.Chapter)
		if ch == 0 {
			ch = chapter
		}
		verses = append(verses, bible.Verse{
			ID:      bible.VerseID(bookID, chapter, int(v.Verse)),
			BookID:  bookID,
			Chapter: ch,
			Verse:   int(v.Verse),
			Text:    strings.TrimSpace(v.Text),
		})
	}
	sort.SliceStable(verses, func(i, j int) bool { return verses[i].Verse < verses[j].Verse })

	return verses, nil
}
