package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/middleware"

	"github.com/ulmind-com/spice-heaven/internal/cart"
	"github.com/ulmind-com/spice-heaven/internal/geo"
	"github.com/ulmind-com/spice-heaven/internal/hours"
	"github.com/ulmind-com/spice-heaven/internal/menu"
	"github.com/ulmind-com/spice-heaven/internal/mongo"
	"github.com/ulmind-com/spice-heaven/internal/notify"
	"github.com/ulmind-com/spice-heaven/internal/order"
	"github.com/ulmind-com/spice-heaven/pkg"
	"github.com/ulmind-com/spice-heaven/pkg/event"
)

const (
	appNamespace = "STOREFRONT"
	appName      = "storefront"
	appVersion   = "0.1.0"
)

type sessionActivity struct {
	scheduler *notify.Scheduler
	watcher   *hours.Watcher
}

func (a *sessionActivity) Touch(sessionID string) {
	a.scheduler.Touch(sessionID)
	a.watcher.Poke()
}

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	baseRepo := mongo.NewBaseRepo(config, logger)
	err = baseRepo.Start(ctx)
	if err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	if baseRepo.GetDatabase() == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	sessionRepo := mongo.NewSessionRepo(baseRepo, logger)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	// Push payloads go through JetStream when enabled so a reconnecting
	// relay can replay recent notifications; order events stay on core NATS.
	var pushPub events.Publisher = pub
	closers := []func() error{pub.Close, sub.Close}

	streamEnabled, _ := config.GetString("nats.stream.enabled")
	if streamEnabled == "true" {
		stream, err := pkg.NewNATSStream(pkg.NATSStreamConfig{
			URL:          natsURL,
			StreamName:   config.GetStringOrDef("nats.stream.name", "STOREFRONT_PUSH"),
			Topic:        event.NotificationsTopic,
			ConsumerName: config.GetStringOrDef("nats.stream.consumer", "push-gateway"),
			MaxAge:       24 * time.Hour,
		})
		if err != nil {
			log.Fatalf("%s(%s) cannot connect to NATS stream: %v", appName, appVersion, err)
		}
		pushPub = stream
		closers = append(closers, stream.Close)
	}

	clock := pkg.NewSystemClock()
	catalog := menu.DefaultCatalog()
	cartService := cart.NewService(sessionRepo, clock, logger)

	window, err := hours.ParseWindow(
		config.GetStringOrDef("hours.open", "01:30"),
		config.GetStringOrDef("hours.close", "23:30"),
	)
	if err != nil {
		log.Fatalf("%s(%s) invalid opening hours: %v", appName, appVersion, err)
	}
	watcher := hours.NewWatcher(window, clock, logger)

	relay := notify.NewRelay(pushPub)
	perms := notify.NewPermissionService(sessionRepo, relay, logger)
	scheduler := notify.NewScheduler(sessionRepo, cartService, perms, relay, clock, logger)

	var geocoder geo.ReverseGeocoder
	if nominatimURL, _ := config.GetString("geo.nominatim.url"); nominatimURL != "" {
		geocoder = geo.NewNominatimWithBaseURL(nominatimURL, logger)
	} else {
		geocoder = geo.NewNominatim(logger)
	}
	composer := order.NewComposer(config.GetStringOrDef("order.whatsapp.number", ""))

	// The checkout hands the order to WhatsApp; the audit subscriber keeps
	// the restaurant's own record of what was sent.
	orderRepo := mongo.NewOrderRepo(baseRepo, logger)
	auditSub := order.NewAuditSubscriber(sub, orderRepo, logger)

	// Any session-scoped request keeps the scheduler's registry warm and
	// forces a fresh open/closed check, the analog of the client re-running
	// its checks on focus.
	activity := &sessionActivity{scheduler: scheduler, watcher: watcher}

	menuHandler := menu.NewHandler(catalog, config, logger)
	hoursHandler := hours.NewHandler(watcher, logger)
	cartHandler := cart.NewHandler(cartService, catalog, activity, config, logger)
	notifyHandler := notify.NewHandler(perms, activity, logger)
	orderHandler := order.NewHandler(cartService, composer, watcher, geocoder, pub, activity, logger)

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			for _, closeFn := range closers {
				if err := closeFn(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	lifecycles := []interface{}{
		apt.LifecycleHooks{OnStop: baseRepo.Stop},
		watcher,
		scheduler,
		auditSub,
		publisherLifecycle,
	}

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", menuHandler, hoursHandler, cartHandler, notifyHandler, orderHandler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	err = ms.Run(ctx)
	if err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
