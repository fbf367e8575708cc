package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-tui/internal/errors"
)

type mark struct {
	BookID  string `json:"bookId" validate:"required,len=3"`
	Chapter int    `json:"chapter" validate:"gte=1"`
	Size    string `json:"fontSize,omitempty" validate:"omitempty,oneof=small medium large"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(mark{BookID: "MAT", Chapter: 1, Size: "large"}))
}

func TestValidate_DetailsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(mark{BookID: "", Chapter: 0, Size: "huge"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	var domainErr *errors.Error
	require.True(t, errors.As(err, &domainErr))
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)

	assert.Equal(t, "is required", details["bookId"])
	assert.Equal(t, "must be greater than or equal to 1", details["chapter"])
	assert.Equal(t, "must be one of: small medium large", details["fontSize"])
}
