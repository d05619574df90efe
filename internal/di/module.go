package di

import (
	"github.com/shipsheet/shipsheet/internal/adapter/mailer"
	"github.com/shipsheet/shipsheet/internal/adapter/shopify"
	"github.com/shipsheet/shipsheet/internal/app"
	"github.com/shipsheet/shipsheet/internal/cache/rediscache"
	"github.com/shipsheet/shipsheet/internal/config"
	"github.com/shipsheet/shipsheet/internal/logger"
	"github.com/shipsheet/shipsheet/internal/pkg/auth"
	"github.com/shipsheet/shipsheet/internal/server/http/handlers"
	"github.com/shipsheet/shipsheet/internal/server/http/router"
	"github.com/shipsheet/shipsheet/internal/storage/postgres"
	"github.com/shipsheet/shipsheet/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		rediscache.Module,
		shopify.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(func(notifier usecase.Notifier) app.Notifier { return notifier }),
		fx.Provide(func(facade *app.SheetFacade) handlers.SheetFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
