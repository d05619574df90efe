package shopify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/shipsheet/shipsheet/internal/config"
	"github.com/shipsheet/shipsheet/internal/usecase"
)

// Module exposes the shop order source to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (usecase.OrderSource, error) {
	if p.Config.ShopifyStoreDomain == "" || p.Config.ShopifyAdminToken == "" {
		p.Logger.Warn("shopify credentials missing, order import disabled")
		return Disabled{}, nil
	}
	client, err := NewHTTPClient(p.Config.ShopifyStoreDomain, p.Config.ShopifyAdminToken, p.Config.ShopifyAPIVersion, p.Logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
