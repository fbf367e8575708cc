// Package id generates prefixed identifiers. Prefixes in use: "sub" for
// channel subscribers, "surface" and "feed" for the terminal display
// surfaces and their channel feeds, "sse" for relay stream clients.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns prefix + "-" + a 21-character NanoID, e.g.
// "surface-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is Generate for ids created while building a model, where
// there is no error path. It panics if the system has no entropy.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
