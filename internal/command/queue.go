package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/hironha/nina/internal/bot"
	"github.com/hironha/nina/pkg/cmd"
)

// queueListLimit caps how many entries one !queue reply shows. Presentation
// only; the queue itself is unbounded.
const queueListLimit = 50

// QueueCommand lists the current track and pending queue entries.
type QueueCommand struct{}

func (c *QueueCommand) Name() string { return "queue" }
func (c *QueueCommand) Description() string {
	return "List first 50 enqueued tracks. There is currently no way to list all enqueued tracks"
}

func (c *QueueCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mc, ok := fromInvocation(inv)
	if !ok {
		return nil
	}

	sess, ok := connectedSession(mc, c.Name())
	if !ok {
		return nil
	}

	current := sess.Now()
	if current == nil {
		return mc.reply(bot.Embed(mc.title(c.Name()), "Queue is currently empty"))
	}

	pending := sess.List(queueListLimit)
	total := sess.QueueLen()

	var b strings.Builder
	fmt.Fprintf(&b, "Now playing: **%s**\n\nTotal tracks in queue: **%d**\n\n", current.Title, total)
	for idx, t := range pending {
		fmt.Fprintf(&b, "%d. %s\n", idx+1, t.Title)
	}

	return mc.reply(bot.Embed(mc.title(c.Name()), b.String()))
}
