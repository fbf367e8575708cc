// Package di wires bible-tui's services together.
package di

import (
	"github.com/samber/do/v2"

	"bible-tui/internal/config"
	"bible-tui/internal/di/providers"
)

// NewContainer creates the container for cfg. Services are built lazily on
// first invoke, so each mode only opens what it uses.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideStorage)
	do.Provide(injector, providers.ProvideValidator)

	// Scripture and preferences
	do.Provide(injector, providers.ProvideScriptureClient)
	do.Provide(injector, providers.ProvideSettings)

	// Synchronization
	do.Provide(injector, providers.ProvideChannel)
	do.Provide(injector, providers.ProvideScrollSlot)
	do.Provide(injector, providers.ProvideController)

	// Relay
	do.Provide(injector, providers.ProvideRelay)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}
