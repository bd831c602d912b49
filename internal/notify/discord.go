package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// errorEmbedColor is Discord's red, matching the Slack "danger" attachment.
const errorEmbedColor = 0xED4245

// discordSession abstracts the discordgo.Session methods we use, enabling
// test mocks.
type discordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts sync failures to a Discord channel.
type Discord struct {
	sess      discordSession
	channelID string
}

// DiscordOpts holds parameters for creating a Discord sink.
type DiscordOpts struct {
	BotToken  string
	ChannelID string
	// For testing: inject a mock session instead of the real Discord API.
	Session discordSession
}

// NewDiscord creates a Discord sink. The underlying session sends over REST
// only; no gateway connection is opened.
func NewDiscord(opts DiscordOpts) (*Discord, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("notify: discord bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: discord channel is required")
	}

	d := &Discord{sess: opts.Session, channelID: opts.ChannelID}
	if d.sess == nil {
		sess, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("notify: discord session: %w", err)
		}
		d.sess = sess
	}
	return d, nil
}

// SyncFailure posts the failure as a red embed.
func (d *Discord) SyncFailure(ctx context.Context, f Failure) error {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("GitHub sync failed: card %s", f.CardID),
		Description: failureText(f),
		Color:       errorEmbedColor,
	}
	if _, err := d.sess.ChannelMessageSendEmbed(d.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("notify: discord post: %w", err)
	}
	return nil
}
