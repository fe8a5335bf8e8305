// Package discord connects the wizard to the Discord gateway: message
// commands start and reload, component interactions drive the flow, and
// modals collect the typed date and amount.
package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-bot/internal/catalog"
	"github.com/dvloznov/finance-bot/internal/wizard"
)

// Bot owns the gateway session and dispatches its events.
type Bot struct {
	session *discordgo.Session
	machine *wizard.Machine
	catalog *catalog.Catalog
	log     zerolog.Logger

	// ctx is the lifecycle context handed to Open; webhook calls made from
	// gateway handlers run under it.
	ctx context.Context
}

// New builds the bot and registers its handlers. The gateway is not opened
// until Open is called.
func New(token string, machine *wizard.Machine, cat *catalog.Catalog, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord.New: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		machine: machine,
		catalog: cat,
		log:     log,
		ctx:     context.Background(),
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteractionCreate)

	return b, nil
}

// Open connects to the gateway. ctx bounds the webhook calls the handlers
// make; cancelling it does not close the gateway — call Close for that.
func (b *Bot) Open(ctx context.Context) error {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord.Open: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("username", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("Bot online")
}

// onMessageCreate handles the two text commands from settings: launch and
// reload. Anything else is ignored.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	content := strings.ToLower(strings.TrimSpace(m.Content))
	switch content {
	case strings.ToLower(b.catalog.LaunchKeyword()):
		prompt := b.machine.Launch(m.Author.ID)
		_, data := responseFor(prompt)
		_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
			Content:    data.Content,
			Components: data.Components,
			Reference:  m.Reference(),
		})
		if err != nil {
			b.log.Error().Err(err).Str("channel_id", m.ChannelID).Msg("Failed to send main menu")
		}

	case strings.ToLower(b.catalog.ReloadKeyword()):
		b.catalog.Reload()
		_, err := s.ChannelMessageSendReply(m.ChannelID,
			"🔄 Configurações recarregadas (entradas, categorias, subcats, pagamentos, settings).",
			m.Reference())
		if err != nil {
			b.log.Error().Err(err).Str("channel_id", m.ChannelID).Msg("Failed to confirm reload")
		}
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		b.handleModal(s, i)
	}
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	event, err := wizard.ParseEvent(customID)
	if err != nil {
		b.log.Warn().Err(err).Str("custom_id", customID).Msg("Ignoring unknown component")
		b.respond(s, i, wizard.Prompt{Kind: wizard.PromptNone})
		return
	}

	eventTime, err := discordgo.SnowflakeTimestamp(i.ID)
	if err != nil {
		eventTime = time.Now()
	}

	prompt := b.machine.HandleEvent(b.ctx, interactionUser(i), event, eventTime)
	b.respond(s, i, prompt)
}

func (b *Bot) handleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	user := interactionUser(i)

	var prompt wizard.Prompt
	switch data.CustomID {
	case modalDateAmount:
		prompt = b.machine.SubmitDateAmount(b.ctx, user,
			textInputValue(data, inputDate),
			textInputValue(data, inputAmount))
	case modalAmount:
		prompt = b.machine.SubmitAmount(b.ctx, user, textInputValue(data, inputAmount))
	default:
		b.log.Warn().Str("custom_id", data.CustomID).Msg("Ignoring unknown modal")
		return
	}

	b.respond(s, i, prompt)
}

// respond translates a wizard prompt into the matching interaction response.
func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, prompt wizard.Prompt) {
	how, data := responseFor(prompt)

	response := &discordgo.InteractionResponse{Data: data}
	switch how {
	case renderNothing:
		response.Type = discordgo.InteractionResponseDeferredMessageUpdate
		response.Data = nil
	case renderUpdate:
		response.Type = discordgo.InteractionResponseUpdateMessage
	case renderModal:
		response.Type = discordgo.InteractionResponseModal
	case renderEphemeral:
		response.Type = discordgo.InteractionResponseChannelMessageWithSource
	}

	if err := s.InteractionRespond(i.Interaction, response); err != nil {
		b.log.Error().Err(err).Int("prompt", int(prompt.Kind)).Msg("Failed to respond to interaction")
	}
}

// interactionUser resolves the acting user for both guild and DM contexts.
func interactionUser(i *discordgo.InteractionCreate) wizard.User {
	var u *discordgo.User
	if i.Member != nil {
		u = i.Member.User
	} else {
		u = i.User
	}
	if u == nil {
		return wizard.User{}
	}
	return wizard.User{ID: u.ID, Name: u.Username}
}

// textInputValue pulls one text input's value out of a modal submission.
func textInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
