package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/shipsheet/shipsheet/internal/config"
	"github.com/shipsheet/shipsheet/internal/usecase"
)

// Module exposes the admin notifier to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) usecase.Notifier {
	return NewHTTPNotifier(p.Config.ResendAPIKey, p.Config.NotifyFromEmail, p.Config.AdminNotifyEmails, p.Logger)
}
