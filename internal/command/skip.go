package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/internal/music/player"
	"github.com/hironha/nina/pkg/cmd"
)

// maxSkip caps how many tracks one invocation may skip.
const maxSkip = 20

var (
	errSkipTooMany    = errors.New("cannot skip more than 20 tracks at once")
	errSkipNotInteger = errors.New("amount of tracks to skip must be a positive integer")
)

// SkipCommand skips the current track, or several at once.
type SkipCommand struct{}

func (c *SkipCommand) Name() string { return "skip" }
func (c *SkipCommand) Description() string {
	return "Skip track. Accepts an optional parameter to define amount of tracks to skip (max of 20)"
}

func (c *SkipCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	sess, ok := connectedSession(mc, c.Name())
	if !ok {
		return nil
	}

	amount, err := parseSkipCount(mc.Args)
	switch {
	case errors.Is(err, errSkipTooMany):
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "Cannot skip more than 20 tracks at once"))
	case err != nil:
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "Amount of tracks to skip must be a positive integer"))
	}

	current, skipped, err := sess.Skip(amount)
	if errors.Is(err, player.ErrNothingPlaying) {
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "Queue is already empty. No tracks to skip"))
	}
	if err != nil {
		return mc.reply(bot.ErrorEmbed(mc.title(c.Name()), "Could not skip current track"))
	}

	description := fmt.Sprintf("Skipped %d track(s). ", skipped)
	if current != nil {
		description += fmt.Sprintf("Now playing **%s**", current.Title)
	} else {
		description += "The queue is now empty"
	}
	return mc.reply(bot.Embed(mc.title(c.Name()), description))
}

// parseSkipCount reads the optional skip amount argument. No argument means
// a single skip.
func parseSkipCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil || amount < 1 {
		return 0, errSkipNotInteger
	}
	if amount > maxSkip {
		return 0, errSkipTooMany
	}
	return amount, nil
}
