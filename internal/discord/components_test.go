package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/dvloznov/finance-bot/internal/wizard"
)

func buttonsOf(t *testing.T, component discordgo.MessageComponent) []discordgo.Button {
	t.Helper()
	row, ok := component.(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("component is %T, want ActionsRow", component)
	}
	buttons := make([]discordgo.Button, 0, len(row.Components))
	for _, c := range row.Components {
		button, ok := c.(discordgo.Button)
		if !ok {
			t.Fatalf("row component is %T, want Button", c)
		}
		buttons = append(buttons, button)
	}
	return buttons
}

func TestChunkButtons_FivePerRow(t *testing.T) {
	options := []string{"a", "b", "c", "d", "e", "f", "g"}

	rows := chunkButtons(options, wizard.EventCategory)

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	first := buttonsOf(t, rows[0])
	second := buttonsOf(t, rows[1])
	if len(first) != 5 || len(second) != 2 {
		t.Errorf("row sizes = %d, %d, want 5, 2", len(first), len(second))
	}
	if first[0].CustomID != "cat:a" || first[0].Label != "a" {
		t.Errorf("first button = %+v", first[0])
	}
	if second[1].CustomID != "cat:g" {
		t.Errorf("last button CustomID = %q", second[1].CustomID)
	}
}

func TestResponseFor_OptionListCarriesBackRow(t *testing.T) {
	prompt := wizard.Prompt{
		Kind:    wizard.PromptCategories,
		Options: []string{"Casa"},
		Back:    wizard.Event{Kind: wizard.EventBack, Value: wizard.BackToTipo},
	}

	how, data := responseFor(prompt)

	if how != renderUpdate {
		t.Fatalf("how = %v, want renderUpdate", how)
	}
	if len(data.Components) != 2 {
		t.Fatalf("got %d component rows, want options + back", len(data.Components))
	}
	back := buttonsOf(t, data.Components[1])
	if len(back) != 1 || back[0].CustomID != "back:tipo" {
		t.Errorf("back row = %+v", back)
	}
}

func TestResponseFor_DateChoiceRows(t *testing.T) {
	prompt := wizard.Prompt{
		Kind: wizard.PromptDateChoice,
		Back: wizard.Event{Kind: wizard.EventBack, Value: wizard.BackToOrigin},
	}

	_, data := responseFor(prompt)
	// Quick row + back row without a last date.
	if len(data.Components) != 2 {
		t.Fatalf("got %d rows, want 2", len(data.Components))
	}

	prompt.HasLastDate = true
	_, data = responseFor(prompt)
	if len(data.Components) != 3 {
		t.Fatalf("got %d rows with last date, want 3", len(data.Components))
	}
	last := buttonsOf(t, data.Components[0])
	if last[0].CustomID != "date:Ultima" {
		t.Errorf("first row button = %q, want the last-date shortcut", last[0].CustomID)
	}
}

func TestResponseFor_AmountModal(t *testing.T) {
	how, data := responseFor(wizard.Prompt{Kind: wizard.PromptAmountForm, Date: "2025-08-09"})

	if how != renderModal {
		t.Fatalf("how = %v, want renderModal", how)
	}
	if data.CustomID != modalAmount {
		t.Errorf("CustomID = %q", data.CustomID)
	}
	if data.Title != "Valor para 2025-08-09" {
		t.Errorf("Title = %q", data.Title)
	}
	if len(data.Components) != 1 {
		t.Errorf("got %d input rows, want 1", len(data.Components))
	}
}

func TestResponseFor_DateAmountModalPrefillsRejectedInput(t *testing.T) {
	how, data := responseFor(wizard.Prompt{Kind: wizard.PromptDateAmountForm, RawDate: "9/8"})

	if how != renderModal {
		t.Fatalf("how = %v, want renderModal", how)
	}
	if data.CustomID != modalDateAmount {
		t.Errorf("CustomID = %q", data.CustomID)
	}
	row, ok := data.Components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("component is %T", data.Components[0])
	}
	input, ok := row.Components[0].(discordgo.TextInput)
	if !ok {
		t.Fatalf("row component is %T", row.Components[0])
	}
	if input.CustomID != inputDate || input.Value != "9/8" {
		t.Errorf("date input = %+v", input)
	}
}

func TestResponseFor_SuggestionButtons(t *testing.T) {
	how, data := responseFor(wizard.Prompt{
		Kind:       wizard.PromptDateSuggestion,
		Suggestion: "2025-08-09",
		RawDate:    "9/8",
	})

	if how != renderEphemeral {
		t.Fatalf("how = %v, want renderEphemeral", how)
	}
	if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("suggestion prompt must be ephemeral")
	}
	buttons := buttonsOf(t, data.Components[0])
	if buttons[0].CustomID != "datefix:accept:2025-08-09" {
		t.Errorf("accept CustomID = %q", buttons[0].CustomID)
	}
	if buttons[1].CustomID != "datefix:deny:9/8" {
		t.Errorf("deny CustomID = %q", buttons[1].CustomID)
	}
}

func TestResponseFor_NoneRendersNothing(t *testing.T) {
	how, data := responseFor(wizard.Prompt{Kind: wizard.PromptNone})
	if how != renderNothing || data != nil {
		t.Errorf("how = %v, data = %+v", how, data)
	}
}
