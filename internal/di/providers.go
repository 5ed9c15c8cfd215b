package di

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/chaitanyakotagiri27/SecureShift/internal/config"
	"github.com/chaitanyakotagiri27/SecureShift/internal/dbmongo"
	"github.com/chaitanyakotagiri27/SecureShift/internal/dbmysql"
	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging/handler"
	"github.com/chaitanyakotagiri27/SecureShift/internal/user"
)

// Application bundles everything main needs to run the API server.
type Application struct {
	Config         *config.Config
	DB             *gorm.DB
	UserHandler    *user.Handler
	MessageHandler *handler.MessageHandler
}

// ProvideMessageRepository selects the message store backend. MySQL is
// the default; STORE_DRIVER=mongo switches to the MongoDB store and
// ensures its indexes on the way up.
func ProvideMessageRepository(cfg *config.Config, db *gorm.DB) (messaging.MessageRepository, error) {
	switch cfg.Store.Driver {
	case "", "mysql":
		return dbmysql.NewMessageRepository(db), nil
	case "mongo":
		mc, err := dbmongo.NewMongoConnection(cfg)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := dbmongo.EnsureMessageIndexes(ctx, mc); err != nil {
			return nil, err
		}
		log.Println("Using MongoDB message store")
		return dbmongo.NewMessageStore(mc), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// ProvideRolePolicy turns the optional cross-role restriction on or off.
func ProvideRolePolicy(cfg *config.Config) messaging.RolePolicy {
	if cfg.Messaging.CrossRoleOnly {
		return messaging.CrossRoleOnly
	}
	return messaging.AllowAll
}
