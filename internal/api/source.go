package api

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"bible-tui/internal/bible"
)

// Source fetches one chapter of one version from an upstream service.
type Source interface {
	FetchChapter(ctx context.Context, version, bookID string, chapter int) ([]bible.Verse, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, version, bookID string, chapter int) ([]bible.Verse, error)

func (f SourceFunc) FetchChapter(ctx context.Context, version, bookID string, chapter int) ([]bible.Verse, error) {
	return f(ctx, version, bookID, chapter)
}

// flexInt decodes a JSON number or a numeric string.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		var f float64
		if ferr := json.Unmarshal([]byte(s), &f); ferr != nil {
			return err
		}
		v = int(f)
	}
	*n = flexInt(v)
	return nil
}
