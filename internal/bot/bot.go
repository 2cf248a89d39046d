// Package bot provides the Discord bot that answers build queries.
package bot

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/config"
	"github.com/buildadvisor/internal/data"
	"github.com/buildadvisor/internal/embeds"
)

// Bot represents the Discord bot.
type Bot struct {
	session  *discordgo.Session
	cfg      *config.Config
	advisor  *advisor.Advisor
	catalog  *data.Catalog
	commands []*discordgo.ApplicationCommand
}

// New creates a new Bot instance.
func New(cfg *config.Config, adv *advisor.Advisor, catalog *data.Catalog) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Slash commands only need the guild intent
	session.Identify.Intents = discordgo.IntentsGuilds

	if v := catalog.Version(); v != "" {
		embeds.DDragonVersion = v
	}

	bot := &Bot{
		session: session,
		cfg:     cfg,
		advisor: adv,
		catalog: catalog,
	}

	// Register handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// Start connects to Discord and starts the bot.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Println("Connected to Discord")

	// Register slash commands
	if err := b.registerCommands(); err != nil {
		log.Printf("Register commands failed: %v", err)
	}

	return nil
}

// Stop removes the registered commands and closes the session.
func (b *Bot) Stop() error {
	for _, cmd := range b.commands {
		if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, "", cmd.ID); err != nil {
			log.Printf("Remove /%s failed: %v", cmd.Name, err)
		}
	}
	b.commands = nil
	return b.session.Close()
}

// onReady is called when the bot is ready.
func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Bot ready: %s", event.User.Username)
}

// commandDefinitions lists the slash commands.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check that the bot is alive",
		},
		{
			Name:        "build",
			Description: "Recommended item build, learned from ranked games",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "champion",
					Description: "Champion to build for (e.g. Garen, or Garen vs Darius)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "opponent",
					Description: "Lane opponent (e.g. Darius)",
					Required:    false,
				},
			},
		},
		{
			Name:        "matchups",
			Description: "List opponents a champion has matchup builds against",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "champion",
					Description: "Champion name",
					Required:    true,
				},
			},
		},
		{
			Name:        "item",
			Description: "Show an item's cost and stats",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Item name or ID (e.g. Black Cleaver, 3071)",
					Required:    true,
				},
			},
		},
	}
}

// registerCommands replaces the global slash commands with the current set,
// dropping any left over from older versions.
func (b *Bot) registerCommands() error {
	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commandDefinitions())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.commands = registered
	log.Printf("Registered %d commands", len(registered))
	return nil
}

// onInteractionCreate handles slash command interactions.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmd := i.ApplicationCommandData()
	var embed *discordgo.MessageEmbed
	switch cmd.Name {
	case "ping":
		embed = embeds.Success(
			fmt.Sprintf("🏓 Pong! Latency: **%dms**", s.HeartbeatLatency().Milliseconds()),
			"✅ Bot is running",
		)
	case "build":
		embed = b.buildEmbed(optionString(cmd.Options, "champion"), optionString(cmd.Options, "opponent"))
	case "matchups":
		embed = b.matchupsEmbed(optionString(cmd.Options, "champion"))
	case "item":
		embed = b.itemEmbed(optionString(cmd.Options, "name"))
	default:
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Printf("Respond to /%s failed: %v", cmd.Name, err)
	}
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}
