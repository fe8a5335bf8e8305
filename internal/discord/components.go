package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dvloznov/finance-bot/internal/wizard"
)

// Modal custom IDs.
const (
	modalDateAmount = "lancamentoModal"
	modalAmount     = "valorModal"
)

// Text input custom IDs inside the modals.
const (
	inputDate   = "date"
	inputAmount = "valor"
)

// Discord caps an action row at five buttons.
const buttonsPerRow = 5

// howRendered says which interaction response type a prompt needs.
type howRendered int

const (
	renderNothing howRendered = iota // ack without UI change
	renderUpdate                     // edit the message the button lives on
	renderModal                      // open a form
	renderEphemeral                  // new ephemeral reply
)

// responseFor maps a wizard prompt to a Discord interaction response.
func responseFor(p wizard.Prompt) (howRendered, *discordgo.InteractionResponseData) {
	switch p.Kind {
	case wizard.PromptNone:
		return renderNothing, nil

	case wizard.PromptMainMenu:
		return renderUpdate, &discordgo.InteractionResponseData{
			Content:    "📝 **Escolha o que deseja fazer:**",
			Components: []discordgo.MessageComponent{mainMenuRow()},
		}

	case wizard.PromptOrigins:
		return renderUpdate, optionListData(
			"💼 **Entrada** selecionada. Agora escolha a *origem*:",
			p, wizard.EventOrigin)

	case wizard.PromptCategories:
		return renderUpdate, optionListData(
			"🧾 **Saída** selecionada. Agora escolha a *categoria*:",
			p, wizard.EventCategory)

	case wizard.PromptSubcategories:
		return renderUpdate, optionListData(
			fmt.Sprintf("📑 **Categoria:** %s. Agora escolha a *subcategoria*:", p.Category),
			p, wizard.EventSubcategory)

	case wizard.PromptPayments:
		return renderUpdate, optionListData(
			fmt.Sprintf("💳 **%s** anotado. Agora escolha a *forma de pagamento*:", p.Selected),
			p, wizard.EventPayment)

	case wizard.PromptNoSubcategories:
		return renderUpdate, &discordgo.InteractionResponseData{
			Content: fmt.Sprintf(
				"⚠️ **%s** ainda não tem subcategorias. Edite **config/subcats.json** para adicioná-las.",
				p.Category),
			Components: []discordgo.MessageComponent{backRow(p.Back)},
		}

	case wizard.PromptDateChoice:
		return renderUpdate, &discordgo.InteractionResponseData{
			Content:    "🗓️ **Escolha a data do lançamento:**",
			Components: append(dateQuickRows(p.HasLastDate), backRow(p.Back)),
		}

	case wizard.PromptAmountForm:
		return renderModal, amountModal(p.Date)

	case wizard.PromptDateAmountForm:
		return renderModal, dateAmountModal(p.RawDate)

	case wizard.PromptDateSuggestion:
		return renderEphemeral, &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❓ Não entendi a data **%q**. Você quis dizer **%s**?", p.RawDate, p.Suggestion),
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						CustomID: wizard.Event{Kind: wizard.EventDateFix, Value: p.Suggestion, Accept: true}.CustomID(),
						Label:    "Confirmar: " + p.Suggestion,
						Style:    discordgo.SuccessButton,
					},
					discordgo.Button{
						CustomID: wizard.Event{Kind: wizard.EventDateFix, Value: p.RawDate}.CustomID(),
						Label:    "Editar data",
						Style:    discordgo.SecondaryButton,
					},
				},
			}},
		}

	case wizard.PromptInvalidDate:
		return renderEphemeral, &discordgo.InteractionResponseData{
			Content: "❌ Data inválida. Use **AAAA-MM-DD** ou \"hoje\"/\"ontem\".",
			Flags:   discordgo.MessageFlagsEphemeral,
		}

	case wizard.PromptSubmitted:
		return renderEphemeral, &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("✅ Lançamento registrado para **%s**!", p.Date),
			Flags:   discordgo.MessageFlagsEphemeral,
		}

	case wizard.PromptSubmitFailed:
		content := "❌ Falha ao enviar pro n8n. O lançamento não foi registrado."
		if p.Timeout {
			content = "⌛ O n8n não respondeu a tempo. O lançamento não foi registrado."
		}
		return renderEphemeral, &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		}
	}

	return renderNothing, nil
}

func mainMenuRow() discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventTipo, Value: "Entrada"}.CustomID(),
			Label:    "Entrada 💰",
			Style:    discordgo.SuccessButton,
		},
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventTipo, Value: "Saída"}.CustomID(),
			Label:    "Saída 🧾",
			Style:    discordgo.DangerButton,
		},
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventFunc, Value: wizard.FuncBalance}.CustomID(),
			Label:    "Saldo Atual 💵",
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventFunc, Value: wizard.FuncSpendingByCategory}.CustomID(),
			Label:    "Saídas por Categoria 📊",
			Style:    discordgo.SecondaryButton,
		},
	}}
}

// optionListData renders an option-list prompt as chunked button rows plus
// the back row.
func optionListData(content string, p wizard.Prompt, kind wizard.EventKind) *discordgo.InteractionResponseData {
	components := chunkButtons(p.Options, kind)
	if p.HasBack() {
		components = append(components, backRow(p.Back))
	}
	return &discordgo.InteractionResponseData{
		Content:    content,
		Components: components,
	}
}

// chunkButtons lays out one primary button per option, five per row.
func chunkButtons(options []string, kind wizard.EventKind) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(options); start += buttonsPerRow {
		end := start + buttonsPerRow
		if end > len(options) {
			end = len(options)
		}

		row := discordgo.ActionsRow{}
		for _, label := range options[start:end] {
			row.Components = append(row.Components, discordgo.Button{
				CustomID: wizard.Event{Kind: kind, Value: label}.CustomID(),
				Label:    label,
				Style:    discordgo.PrimaryButton,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func backRow(back wizard.Event) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: back.CustomID(),
			Label:    "◀️ Voltar",
			Style:    discordgo.SecondaryButton,
		},
	}}
}

func dateQuickRows(hasLastDate bool) []discordgo.MessageComponent {
	quick := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventDate, Value: wizard.DateToday}.CustomID(),
			Label:    "Hoje",
			Style:    discordgo.SuccessButton,
		},
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventDate, Value: wizard.DateYesterday}.CustomID(),
			Label:    "Ontem",
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventDate, Value: wizard.DateMessage}.CustomID(),
			Label:    "Data da mensagem",
			Style:    discordgo.SecondaryButton,
		},
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventDate, Value: wizard.DateTyped}.CustomID(),
			Label:    "Digitar data",
			Style:    discordgo.SecondaryButton,
		},
	}}

	if !hasLastDate {
		return []discordgo.MessageComponent{quick}
	}

	last := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: wizard.Event{Kind: wizard.EventDate, Value: wizard.DateLast}.CustomID(),
			Label:    "Usar última data",
			Style:    discordgo.SecondaryButton,
		},
	}}
	return []discordgo.MessageComponent{last, quick}
}

// amountModal asks only for the amount, the date being already fixed.
func amountModal(date string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: modalAmount,
		Title:    "Valor para " + date,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    inputAmount,
					Label:       "Valor (somente números)",
					Style:       discordgo.TextInputShort,
					Placeholder: "ex: 250",
					Required:    true,
				},
			}},
		},
	}
}

// dateAmountModal asks for date and amount together. rawDate pre-fills the
// date field when the user is editing a rejected suggestion.
func dateAmountModal(rawDate string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: modalDateAmount,
		Title:    "Data e Valor",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    inputDate,
					Label:       "Data (AAAA-MM-DD, \"hoje\"/\"ontem\")",
					Style:       discordgo.TextInputShort,
					Placeholder: "ex: 2025-08-09 ou \"hoje\"",
					Value:       rawDate,
					Required:    true,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    inputAmount,
					Label:       "Valor (somente números)",
					Style:       discordgo.TextInputShort,
					Placeholder: "ex: 250",
					Required:    true,
				},
			}},
		},
	}
}
