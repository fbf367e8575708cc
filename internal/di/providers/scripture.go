package providers

import (
	"net/http"

	"github.com/samber/do/v2"
	"golang.org/x/time/rate"

	"bible-tui/internal/api"
	"bible-tui/internal/cache"
	"bible-tui/internal/config"
	"bible-tui/internal/settings"
	"bible-tui/internal/storage"
	"bible-tui/internal/validation"
)

// ProvideScriptureClient builds the client for the configured source. The
// API.Bible source also lists bibles, whichever source serves chapters.
func ProvideScriptureClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	httpClient := &http.Client{Timeout: cfg.Scripture.Timeout}
	apiBible := api.NewAPIBible(cfg.Scripture.APIURL, cfg.Scripture.APIKey, httpClient)

	var src api.Source = api.NewGetBible(cfg.Scripture.GetBibleURL, httpClient)
	if cfg.Scripture.Source == config.SourceAPIBible {
		src = apiBible
	}

	opts := []api.Option{
		api.WithLogger(log.Logger.Logger),
		api.WithLister(apiBible),
		api.WithCache(cache.New()),
	}
	if cfg.Scripture.SearchRate > 0 {
		opts = append(opts, api.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Scripture.SearchRate), 1)))
	}

	log.Info("Scripture client ready", "source", cfg.Scripture.Source)
	return api.NewClient(src, opts...), nil
}

// ProvideSettings provides the preference store.
func ProvideSettings(i do.Injector) (*settings.Store, error) {
	store := do.MustInvoke[*storage.Store](i)
	log := do.MustInvoke[*LoggerHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	return settings.New(store, log.Logger.Logger, v), nil
}
