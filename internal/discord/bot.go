package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/internal/command"
	"github.com/hironha/nina/internal/config"
	"github.com/hironha/nina/internal/middleware"
	"github.com/hironha/nina/internal/music/player"
	"github.com/hironha/nina/internal/music/resolver"
	"github.com/hironha/nina/internal/storage"
	"github.com/hironha/nina/pkg/cmd"
)

// Bot is the Discord adapter: it owns the gateway session, dispatches prefix
// commands to the registry, and implements the voice transport the playback
// engine streams through.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	store    *storage.Storage
	sessions *player.Registry
	resolver *resolver.Resolver
	registry *cmd.Registry
}

// NewBot creates the bot and wires the playback engine and commands.
func NewBot(cfg *config.Config, store *storage.Storage) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{
		dg:       dg,
		cfg:      cfg,
		store:    store,
		resolver: resolver.New(),
		registry: cmd.NewRegistry(),
	}
	b.sessions = player.NewRegistry(&voiceTransport{dg: dg})
	b.registerCommands()
	return b, nil
}

// Run opens the gateway session and blocks until ctx is done, then tears
// down every voice session before closing the gateway.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onVoiceStateUpdate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	b.sessions.Shutdown()
	return nil
}

// Sessions exposes the session registry (used by the auto-leave handler and
// tests).
func (b *Bot) Sessions() *player.Registry {
	return b.sessions
}

// registerCommands builds the command set behind the shared middleware chain.
func (b *Bot) registerCommands() {
	mws := []cmd.Middleware{
		middleware.WithCommandLogger(b.store),
		middleware.WithGuildOnly(),
	}

	for _, c := range []cmd.Command{
		&command.HelpCommand{Registry: b.registry},
		&command.JoinCommand{},
		&command.LeaveCommand{},
		&command.MuteCommand{},
		&command.UnmuteCommand{},
		&command.PlayCommand{},
		&command.SkipCommand{},
		&command.StopCommand{},
		&command.QueueCommand{},
		&command.NowCommand{},
	} {
		b.registry.Register(cmd.Apply(c, mws...))
	}
}

// onReady is called when the gateway handshake completes.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] %s#%s is connected", r.User.Username, r.User.Discriminator)
}

// onMessageCreate parses prefix commands out of guild messages and runs them.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, b.cfg.CommandPrefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(content, b.cfg.CommandPrefix))
	if len(fields) == 0 {
		return
	}

	c := b.registry.Get(strings.ToLower(fields[0]))
	if c == nil {
		return
	}

	mc := &command.Context{
		Session:  s,
		Message:  m,
		Args:     fields[1:],
		Prefix:   b.cfg.CommandPrefix,
		Sessions: b.sessions,
		Resolver: b.resolver,
		Storage:  b.store,
		Voice:    b,
	}

	if err := c.Run(context.Background(), &cmd.Invocation{Args: mc.Args, Data: mc}); err != nil {
		log.Printf("[ERR] Command %s failed: %v", c.Name(), err)
		bot.MessageEmbed(s, m.ChannelID, bot.ErrorEmbed(b.cfg.CommandPrefix+c.Name(),
			"Something went wrong running the command"))
	}
}

// FindUserVoiceState finds the voice state of a user from gateway state.
func (b *Bot) FindUserVoiceState(guildID, userID string) (*bot.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &bot.VoiceState{
				ChannelID: vs.ChannelID,
				UserID:    vs.UserID,
			}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}
