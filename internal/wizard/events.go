package wizard

import (
	"fmt"
	"strings"
)

// EventKind tags a button interaction with the wizard stage it belongs to.
// The set is closed: ParseEvent rejects anything outside it, so an unknown
// stage/value pair is an error at the edge instead of a silently ignored
// branch.
type EventKind int

const (
	// EventTipo selects the transaction direction.
	EventTipo EventKind = iota
	// EventFunc triggers a report quick action from the main menu.
	EventFunc
	// EventBack navigates to a prior stage.
	EventBack
	// EventOrigin selects an entry origin (Entrada flow).
	EventOrigin
	// EventCategory selects an expense category (Saída flow).
	EventCategory
	// EventSubcategory selects a subcategory.
	EventSubcategory
	// EventPayment selects a payment method.
	EventPayment
	// EventDate picks a date quick choice or opens the typed-date form.
	EventDate
	// EventDateFix accepts or rejects a suggested date completion.
	EventDateFix
)

// Back targets.
const (
	BackToTipo     = "tipo"
	BackToCategory = "cat"
	BackToOrigin   = "entr"
)

// Date quick-choice values.
const (
	DateToday     = "Hoje"
	DateYesterday = "Ontem"
	DateMessage   = "Msg"
	DateLast      = "Ultima"
	DateTyped     = "Digit"
)

// Quick-function values.
const (
	FuncBalance            = "SaldoAtual"
	FuncSpendingByCategory = "SaidasPorCategoria"
)

// Event is one decoded button interaction. Accept is only meaningful for
// EventDateFix, where Value carries either the suggested date (accept) or
// the user's original raw input (reject).
type Event struct {
	Kind   EventKind
	Value  string
	Accept bool
}

var kindTags = map[EventKind]string{
	EventTipo:        "tipo",
	EventFunc:        "func",
	EventBack:        "back",
	EventOrigin:      "entr",
	EventCategory:    "cat",
	EventSubcategory: "sub",
	EventPayment:     "pay",
	EventDate:        "date",
	EventDateFix:     "datefix",
}

var tagKinds = func() map[string]EventKind {
	m := make(map[string]EventKind, len(kindTags))
	for k, tag := range kindTags {
		m[tag] = k
	}
	return m
}()

// CustomID encodes the event as a component custom ID ("stage:value").
func (e Event) CustomID() string {
	if e.Kind == EventDateFix {
		verb := "deny"
		if e.Accept {
			verb = "accept"
		}
		return fmt.Sprintf("datefix:%s:%s", verb, e.Value)
	}
	return fmt.Sprintf("%s:%s", kindTags[e.Kind], e.Value)
}

// ParseEvent decodes a component custom ID back into an Event. Values for
// closed stages (tipo, func, back, date, datefix) are validated here;
// option values (origins, categories, subcategories, payments) are free-form
// and validated against the catalog when the wizard renders from them.
func ParseEvent(customID string) (Event, error) {
	tag, rest, ok := strings.Cut(customID, ":")
	if !ok {
		return Event{}, fmt.Errorf("wizard: malformed custom ID %q", customID)
	}

	kind, ok := tagKinds[tag]
	if !ok {
		return Event{}, fmt.Errorf("wizard: unknown stage %q", tag)
	}

	ev := Event{Kind: kind, Value: rest}

	switch kind {
	case EventTipo:
		if rest != "Entrada" && rest != "Saída" {
			return Event{}, fmt.Errorf("wizard: unknown tipo %q", rest)
		}
	case EventFunc:
		if rest != FuncBalance && rest != FuncSpendingByCategory {
			return Event{}, fmt.Errorf("wizard: unknown function %q", rest)
		}
	case EventBack:
		// "main" is a legacy alias for the type-selection stage.
		switch rest {
		case "main":
			ev.Value = BackToTipo
		case BackToTipo, BackToCategory, BackToOrigin:
		default:
			return Event{}, fmt.Errorf("wizard: unknown back target %q", rest)
		}
	case EventDate:
		switch rest {
		case DateToday, DateYesterday, DateMessage, DateLast, DateTyped:
		default:
			return Event{}, fmt.Errorf("wizard: unknown date choice %q", rest)
		}
	case EventDateFix:
		verb, value, ok := strings.Cut(rest, ":")
		if !ok {
			return Event{}, fmt.Errorf("wizard: malformed datefix ID %q", customID)
		}
		switch verb {
		case "accept":
			ev.Accept = true
		case "deny":
		default:
			return Event{}, fmt.Errorf("wizard: unknown datefix verb %q", verb)
		}
		ev.Value = value
	}

	return ev, nil
}
