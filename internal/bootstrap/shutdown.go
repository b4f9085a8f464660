package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/LuckBot_Go/internal/autoroll"
	"github.com/osse101/LuckBot_Go/internal/discord"
	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/scheduler"
	"github.com/osse101/LuckBot_Go/internal/server"
	"github.com/osse101/LuckBot_Go/internal/store"
	"github.com/osse101/LuckBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Bot is nil when the chat platform is disabled.
type ShutdownComponents struct {
	Server             *server.Server
	Bot                *discord.Bot
	Scheduler          *scheduler.Scheduler
	AutoRoll           *autoroll.Manager
	BoostExpiryWorker  *worker.BoostExpiryWorker
	Store              *store.Store
	ResilientPublisher *event.ResilientPublisher
	WorkerPool         *worker.Pool
}

// GracefulShutdown stops the application in order:
// 1. HTTP server and recurring jobs (no new work)
// 2. Auto-roll sessions are suspended and checkpointed for the next start
// 3. Boost expiry worker, then a final store flush
// 4. Event publisher and delivery workers (flush pending notifications)
// 5. Discord gateway
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	if c.AutoRoll != nil {
		shutdownComponent(ctx, ComponentNameAutoRoll, c.AutoRoll)
	}
	if c.BoostExpiryWorker != nil {
		shutdownComponent(ctx, ComponentNameBoostExpiry, c.BoostExpiryWorker)
	}

	if c.Store != nil {
		if err := c.Store.Flush(); err != nil {
			slog.Error(LogMsgStoreFlushFailed, "error", err)
		} else {
			slog.Info(LogMsgStoreFlushed)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.Bot != nil {
		c.Bot.Stop()
	}

	slog.Info(LogMsgStopped)
}

type shutdownable interface {
	Shutdown(context.Context) error
}

func shutdownComponent(ctx context.Context, name string, component shutdownable) {
	if err := component.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgComponentShutdownFailed, "error", err)
	}
}
