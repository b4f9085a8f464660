package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/LuckBot_Go/internal/admin"
	"github.com/osse101/LuckBot_Go/internal/autoroll"
	"github.com/osse101/LuckBot_Go/internal/bootstrap"
	"github.com/osse101/LuckBot_Go/internal/config"
	"github.com/osse101/LuckBot_Go/internal/crafting"
	"github.com/osse101/LuckBot_Go/internal/discord"
	"github.com/osse101/LuckBot_Go/internal/economy"
	"github.com/osse101/LuckBot_Go/internal/handler"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/roll"
	"github.com/osse101/LuckBot_Go/internal/scheduler"
	"github.com/osse101/LuckBot_Go/internal/server"
	"github.com/osse101/LuckBot_Go/internal/worker"
)

// Worker pool sizing for notification delivery and the presence job
const (
	deliveryWorkers   = 4
	deliveryQueueSize = 256
)

func main() {
	if err := run(); err != nil {
		slog.Error("LuckBot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	catalog, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	st, err := bootstrap.InitializeStore(cfg)
	if err != nil {
		return err
	}

	// Services
	engine := roll.NewEngine(catalog.Items(), roll.Policy{
		CommonCutoff:   cfg.CommonDenominatorCutoff,
		CommonExponent: cfg.CommonLuckExponent,
		MinDenominator: roll.DefaultMinDenominator,
	})
	econCfg := economy.DefaultConfig()
	econCfg.RareThreshold = cfg.RareNotifyThreshold
	econ := economy.NewService(st, catalog, engine, publisher, econCfg)
	craftingSvc := crafting.NewService(st, catalog)
	sessions := autoroll.NewManager(st, econ, publisher, autoroll.Config{
		Duration:       cfg.AutoRollDuration,
		Interval:       cfg.AutoRollInterval,
		SaveEveryRolls: cfg.AutoRollSaveEveryRolls,
		SaveEvery:      cfg.AutoRollSaveEvery,
	})
	boostExpiry, err := worker.NewBoostExpiryWorker(econ)
	if err != nil {
		return err
	}
	adminSvc := admin.NewService(cfg.AdminIDs, econ, sessions, boostExpiry)

	pool := worker.NewPool(deliveryWorkers, deliveryQueueSize)
	pool.Start()
	sched := scheduler.New(pool)

	checkers := map[string]handler.HealthChecker{"store": st}

	var bot *discord.Bot
	var notifier bootstrap.EventSubscriber
	if !cfg.DiscordDisabled {
		bot, err = discord.New(discord.Config{
			Token:              cfg.DiscordToken,
			AppID:              cfg.DiscordAppID,
			GuildID:            cfg.DiscordGuildID,
			ConfirmTimeout:     cfg.ConfirmTimeout,
			ForceCommandUpdate: cfg.DiscordForceCommandUpdate,
		}, discord.Deps{
			Economy:  econ,
			Crafting: craftingSvc,
			AutoRoll: sessions,
			Admin:    adminSvc,
		})
		if err != nil {
			return err
		}
		notifier = discord.NewNotifier(bot.Session, econ, pool)
		checkers["discord"] = bot
	}

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		Notifier: notifier,
	}); err != nil {
		return err
	}

	if bot != nil {
		if err := bot.Start(); err != nil {
			return err
		}
		bootstrap.SchedulePresence(sched, cfg.PresenceInterval, econ, bot)
	}

	// Sessions resume after the notifier is listening so users hear about them
	bootstrap.RestoreBoostExpiry(ctx, econ, boostExpiry)
	bootstrap.ResumeSessions(ctx, sessions)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Deps{
		Economy:  econ,
		Recipes:  craftingSvc,
		Sessions: sessions,
		Checkers: checkers,
	})
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-stop:
		slog.Info("Signal received", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("HTTP server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Bot:                bot,
		Scheduler:          sched,
		AutoRoll:           sessions,
		BoostExpiryWorker:  boostExpiry,
		Store:              st,
		ResilientPublisher: publisher,
		WorkerPool:         pool,
	})
	return nil
}
