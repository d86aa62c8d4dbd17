package router

import (
	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/container"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
	pginfra "github.com/vecino/marketplace/internal/infrastructure/postgres"
	handlers "github.com/vecino/marketplace/internal/interface/http"
	"github.com/vecino/marketplace/internal/router/modules"
	"github.com/vecino/marketplace/pkg/notify"
)

// InitModules wires repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	var (
		cfg    = container.GetConfig()
		pool   = container.GetPGPool()
		store  = container.GetCache()
		logger = container.GetLogger()
		jwt    = container.GetJWT()
		ids    = identifier.UUID{}
	)

	var publisher notify.Publisher
	if p := container.GetRabbitPub(); p != nil {
		publisher = p
	}

	userMapper := mapper.NewUserMapper(ids)
	productMapper := mapper.NewProductMapper(ids)
	orderMapper := mapper.NewOrderMapper(ids, productMapper)
	conversationMapper := mapper.NewConversationMapper(ids)
	messageMapper := mapper.NewMessageMapper(ids)
	notificationMapper := mapper.NewNotificationMapper(ids)
	categoryMapper := mapper.NewCategoryMapper(ids)

	users := pginfra.NewUserRepository(pool, ids, userMapper)
	products := pginfra.NewProductRepository(pool, ids, productMapper)
	orders := pginfra.NewOrderRepository(pool, ids, orderMapper)
	conversations := pginfra.NewConversationRepository(pool, ids, conversationMapper, messageMapper)
	notifications := pginfra.NewNotificationRepository(pool, ids, notificationMapper)
	categories := pginfra.NewCategoryRepository(pool, ids, categoryMapper)

	usersSvc := application.NewUsersService(users, store, logger)
	productsSvc := application.NewProductsService(products, store, logger, container.GetES(), cfg.ESProductsIndex, container.GetGCS(), cfg.GCSBucket)
	ordersSvc := application.NewOrdersService(orders, products, users, publisher, logger)
	messagingSvc := application.NewMessagingService(conversations, users, publisher, logger)
	notificationsSvc := application.NewNotificationsService(notifications, logger)
	categoriesSvc := application.NewCategoriesService(categories)

	r.Add(modules.NewUsersModule(handlers.NewUsersHandler(usersSvc, jwt, logger), jwt))
	r.Add(modules.NewProductsModule(handlers.NewProductsHandler(productsSvc, logger), jwt))
	r.Add(modules.NewOrdersModule(handlers.NewOrdersHandler(ordersSvc, logger), jwt))
	r.Add(modules.NewMessagingModule(handlers.NewMessagingHandler(messagingSvc, logger), jwt))
	r.Add(modules.NewNotificationsModule(handlers.NewNotificationsHandler(notificationsSvc, logger), jwt))
	r.Add(modules.NewCategoriesModule(handlers.NewCategoriesHandler(categoriesSvc, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
