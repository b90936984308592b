package providers

import (
	"github.com/samber/do/v2"

	"github.com/listoria/listoria-server/internal/auth"
	"github.com/listoria/listoria-server/internal/config"
	"github.com/listoria/listoria-server/internal/logger"
	"github.com/listoria/listoria-server/internal/mail"
	"github.com/listoria/listoria-server/internal/recommend"
	"github.com/listoria/listoria-server/internal/service"
)

// ProvideMailSender provides the outbound code sender. Without SMTP
// configuration this is the log-only sender.
func ProvideMailSender(i do.Injector) (mail.Sender, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return mail.NewSender(cfg.Mail, log), nil
}

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	mailSender := do.MustInvoke[mail.Sender](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, mailSender, log.Logger), nil
}

// ProvideRecommendService provides the recommendation service.
func ProvideRecommendService(i do.Injector) (*service.RecommendService, error) {
	engine := do.MustInvoke[*recommend.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendService(engine, log.Logger), nil
}

// ProvideStatusService provides the provider status service.
func ProvideStatusService(i do.Injector) (*service.StatusService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatusService(cfg, log.Logger), nil
}
