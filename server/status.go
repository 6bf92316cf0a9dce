package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lazharichir/blackjack/domain"
	"github.com/lazharichir/blackjack/server/connection"
)

// StatusSnapshot is the periodic payload pushed to feed clients
type StatusSnapshot struct {
	Status       string `json:"status"`
	Datetime     string `json:"datetime"`
	ActiveGames  int    `json:"activeGames"`
	TotalPlayers int    `json:"totalPlayers"`
	ServerUptime string `json:"serverUptime"`
}

// StatusBroadcaster periodically publishes casino-wide counters to all
// connected clients. It reads from the stores only, decoupled from the
// game state machine.
type StatusBroadcaster struct {
	casino    *domain.Casino
	connMgr   *connection.Manager
	logger    *log.Logger
	clock     quartz.Clock
	interval  time.Duration
	startedAt time.Time
}

// NewStatusBroadcaster creates a broadcaster ticking on the given clock
func NewStatusBroadcaster(casino *domain.Casino, connMgr *connection.Manager, logger *log.Logger, clock quartz.Clock, interval time.Duration) *StatusBroadcaster {
	return &StatusBroadcaster{
		casino:    casino,
		connMgr:   connMgr,
		logger:    logger.WithPrefix("status"),
		clock:     clock,
		interval:  interval,
		startedAt: clock.Now(),
	}
}

// Run broadcasts snapshots until the context is cancelled
func (b *StatusBroadcaster) Run(ctx context.Context) {
	ticker := b.clock.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.broadcast(ctx)
		}
	}
}

func (b *StatusBroadcaster) broadcast(ctx context.Context) {
	activeGames, totalPlayers, err := b.casino.Stats(ctx)
	if err != nil {
		b.logger.Error("Failed to compute stats", "error", err)
		return
	}

	now := b.clock.Now()
	snapshot := StatusSnapshot{
		Status:       "online",
		Datetime:     now.UTC().Format(time.RFC3339),
		ActiveGames:  activeGames,
		TotalPlayers: totalPlayers,
		ServerUptime: now.Sub(b.startedAt).Truncate(time.Second).String(),
	}

	message, err := json.Marshal(snapshot)
	if err != nil {
		b.logger.Error("Failed to marshal status snapshot", "error", err)
		return
	}

	b.connMgr.Broadcast(message)
}
