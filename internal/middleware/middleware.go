// Package middleware provides cross-cutting wrappers for prefix commands.
package middleware

import (
	"context"
	"log"
	"time"

	"github.com/hironha/nina/internal/command"
	"github.com/hironha/nina/internal/storage"
	"github.com/hironha/nina/pkg/cmd"
)

// WithGuildOnly silently drops invocations that did not come from a guild
// channel (e.g. DMs).
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			mc, ok := inv.Data.(*command.Context)
			if !ok || mc.Message.GuildID == "" {
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithCommandLogger records each invocation to the guild's command history
// before running it. Logging failures never block the command.
func WithCommandLogger(store *storage.Storage) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if mc, ok := inv.Data.(*command.Context); ok && store != nil {
				err := store.AddCommandRecord(mc.Message.GuildID, storage.CommandRecord{
					ChannelID: mc.Message.ChannelID,
					UserID:    mc.Message.Author.ID,
					Username:  mc.Message.Author.Username,
					Command:   c.Name(),
					Datetime:  time.Now(),
				})
				if err != nil {
					log.Println("[WARN] Failed to record command history:", err)
				}
			}
			return c.Run(ctx, inv)
		})
	}
}
