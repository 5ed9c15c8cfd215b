//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/chaitanyakotagiri27/SecureShift/internal/config"
	"github.com/chaitanyakotagiri27/SecureShift/internal/dbmysql"
	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging/handler"
	"github.com/chaitanyakotagiri27/SecureShift/internal/user"
)

// This is just a declaration — wire generates the real body
func InitializeApplication(cfg *config.Config) (*Application, error) {
	wire.Build(
		dbmysql.NewMySQL,
		ProvideMessageRepository,
		ProvideRolePolicy,
		user.NewUserRepository,
		user.NewUserService,
		user.NewDirectory,
		user.NewHandler,
		messaging.NewService,
		handler.NewMessageHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
