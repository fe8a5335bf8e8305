// Package wizard is the entry flow's state machine: it interprets decoded
// interaction events against the user's session, validates choices against
// the option catalog, and tells the transport what to render next.
package wizard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-bot/internal/dateparse"
	"github.com/dvloznov/finance-bot/internal/domain"
	"github.com/dvloznov/finance-bot/internal/session"
	"github.com/dvloznov/finance-bot/internal/webhook"
)

// Options is the read side of the option catalog. A snapshot read here may
// be one reload behind a step that started earlier; that is accepted.
type Options interface {
	Origins() []string
	Categories() []string
	Subcategories(category string) []string
	PaymentMethods() []string
}

// Emitter delivers completed entries and quick-action requests.
type Emitter interface {
	Submit(ctx context.Context, entry *domain.Entry) error
	SubmitAction(ctx context.Context, action domain.QuickAction, user string) error
}

// User identifies the person driving a flow: ID keys the session, Name
// labels the submitted record.
type User struct {
	ID   string
	Name string
}

// Machine runs the wizard. One instance serves all users; per-user state
// lives in the session store.
type Machine struct {
	options Options
	store   *session.Store
	emitter Emitter
	log     zerolog.Logger

	// now is the clock for "today"/"yesterday"; tests pin it.
	now func() time.Time
}

// New creates a wizard machine.
func New(options Options, store *session.Store, emitter Emitter, log zerolog.Logger) *Machine {
	return &Machine{
		options: options,
		store:   store,
		emitter: emitter,
		log:     log,
		now:     time.Now,
	}
}

// Launch starts a fresh session for the user and returns the main menu.
// Any in-progress flow for the same user is discarded.
func (m *Machine) Launch(userID string) Prompt {
	m.store.Put(userID, session.Context{})
	return Prompt{Kind: PromptMainMenu}
}

// HandleEvent applies one decoded button event to the user's session and
// returns the next prompt. eventTime is the platform timestamp of the
// interaction, used by the "message date" quick choice.
func (m *Machine) HandleEvent(ctx context.Context, user User, ev Event, eventTime time.Time) Prompt {
	sess := m.store.Get(user.ID)

	switch ev.Kind {
	case EventTipo:
		sess.SetTipo(domain.Tipo(ev.Value))
		m.store.Put(user.ID, sess)
		if sess.Tipo == domain.TipoEntrada {
			return m.originsPrompt()
		}
		return m.categoriesPrompt()

	case EventFunc:
		action := domain.ActionBalance
		if ev.Value == FuncSpendingByCategory {
			action = domain.ActionSpendingByCategory
		}
		if err := m.emitter.SubmitAction(ctx, action, user.Name); err != nil {
			m.log.Error().Err(err).Str("action", string(action)).Str("user", user.Name).
				Msg("Quick action delivery failed")
		}
		return Prompt{Kind: PromptNone}

	case EventBack:
		return m.handleBack(user.ID, sess, ev.Value)

	case EventOrigin:
		sess.EntrySource = ev.Value
		m.store.Put(user.ID, sess)
		return m.paymentsPrompt(sess, ev.Value)

	case EventCategory:
		sess.Categoria = ev.Value
		sess.Subcategoria = ""
		m.store.Put(user.ID, sess)

		subs := m.options.Subcategories(ev.Value)
		if len(subs) == 0 {
			return Prompt{
				Kind:     PromptNoSubcategories,
				Category: ev.Value,
				Back:     Event{Kind: EventBack, Value: BackToCategory},
			}
		}
		return Prompt{
			Kind:     PromptSubcategories,
			Category: ev.Value,
			Options:  subs,
			Back:     Event{Kind: EventBack, Value: BackToCategory},
		}

	case EventSubcategory:
		sess.Subcategoria = ev.Value
		m.store.Put(user.ID, sess)
		return m.paymentsPrompt(sess, ev.Value)

	case EventPayment:
		sess.Pagamento = ev.Value
		m.store.Put(user.ID, sess)
		return Prompt{
			Kind:        PromptDateChoice,
			HasLastDate: sess.LastDate != "",
			Back:        Event{Kind: EventBack, Value: m.backFromPayment(sess)},
		}

	case EventDate:
		return m.handleDateChoice(user.ID, sess, ev.Value, eventTime)

	case EventDateFix:
		if ev.Accept {
			sess.ChosenDate = ev.Value
			sess.LastDate = ev.Value
			m.store.Put(user.ID, sess)
			return Prompt{Kind: PromptAmountForm, Date: ev.Value}
		}
		return Prompt{Kind: PromptDateAmountForm, RawDate: ev.Value}
	}

	// ParseEvent guarantees the kinds above are exhaustive.
	m.log.Warn().Int("kind", int(ev.Kind)).Msg("Unhandled wizard event")
	return Prompt{Kind: PromptNone}
}

// SubmitDateAmount handles the free-text form: a raw date plus an amount.
// On a confident parse the entry is submitted and the session destroyed; an
// ambiguous date yields a confirm/edit prompt; an invalid one leaves the
// session untouched so the user can retry.
func (m *Machine) SubmitDateAmount(ctx context.Context, user User, rawDate, rawAmount string) Prompt {
	sess := m.store.Get(user.ID)
	valor := NormalizeAmount(rawAmount)

	res := dateparse.Normalize(rawDate, m.now())
	switch res.Kind {
	case dateparse.Invalid:
		return Prompt{Kind: PromptInvalidDate, RawDate: rawDate}
	case dateparse.Ambiguous:
		return Prompt{Kind: PromptDateSuggestion, Suggestion: res.Suggestion, RawDate: rawDate}
	}

	sess.LastDate = res.Date
	m.store.Put(user.ID, sess)

	return m.submit(ctx, user, sess, res.Date, valor)
}

// SubmitAmount handles the amount-only form, the date having been fixed by
// a quick choice or an accepted suggestion. The session is destroyed after
// the submission attempt regardless of outcome.
func (m *Machine) SubmitAmount(ctx context.Context, user User, rawAmount string) Prompt {
	sess := m.store.Get(user.ID)
	valor := NormalizeAmount(rawAmount)

	date := sess.ChosenDate
	if date == "" {
		date = sess.LastDate
	}
	if date == "" {
		// Defensive: both absent only if the flow was driven out of order.
		date = dateparse.Format(m.now())
	}

	return m.submit(ctx, user, sess, date, valor)
}

// NormalizeAmount trims surrounding whitespace and swaps the first decimal
// comma for a point. Nothing else: numeric interpretation belongs to the
// automation side.
func NormalizeAmount(raw string) string {
	return strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
}

func (m *Machine) submit(ctx context.Context, user User, sess session.Context, date, valor string) Prompt {
	entry := &domain.Entry{
		Tipo:      sess.Tipo,
		Pagamento: sess.Pagamento,
		Data:      date,
		Valor:     valor,
		User:      user.Name,
	}
	if sess.Tipo == domain.TipoEntrada {
		entry.Origem = sess.EntrySource
	} else {
		entry.Categoria = sess.Categoria
		entry.Subcategoria = sess.Subcategoria
	}

	err := m.emitter.Submit(ctx, entry)

	// The session is gone either way; the user starts over on failure.
	m.store.Remove(user.ID)

	if err != nil {
		m.log.Error().Err(err).Str("user", user.Name).Str("data", date).
			Msg("Entry submission failed")
		return Prompt{Kind: PromptSubmitFailed, Timeout: errors.Is(err, webhook.ErrTimeout)}
	}

	m.log.Info().Str("user", user.Name).Str("tipo", string(sess.Tipo)).Str("data", date).
		Msg("Entry submitted")
	return Prompt{Kind: PromptSubmitted, Date: date}
}

func (m *Machine) handleBack(userID string, sess session.Context, target string) Prompt {
	switch target {
	case BackToTipo:
		// Hard reset: back to the type menu drops everything, LastDate included.
		m.store.Put(userID, session.Context{})
		return Prompt{Kind: PromptMainMenu}

	case BackToCategory:
		sess.Categoria = ""
		sess.Subcategoria = ""
		sess.Pagamento = ""
		m.store.Put(userID, sess)
		return m.categoriesPrompt()

	case BackToOrigin:
		sess.Pagamento = ""
		m.store.Put(userID, sess)
		return m.originsPrompt()
	}

	// Unknown targets are rejected by ParseEvent; nothing to do here.
	return Prompt{Kind: PromptNone}
}

func (m *Machine) handleDateChoice(userID string, sess session.Context, choice string, eventTime time.Time) Prompt {
	if choice == DateTyped {
		return Prompt{Kind: PromptDateAmountForm}
	}

	var chosen string
	switch choice {
	case DateToday:
		chosen = dateparse.Format(m.now())
	case DateYesterday:
		chosen = dateparse.Format(m.now().AddDate(0, 0, -1))
	case DateMessage:
		chosen = dateparse.Format(eventTime)
	case DateLast:
		chosen = sess.LastDate
	}

	if chosen == "" {
		// "Use last date" with no last date recorded; leave the prompt as is.
		return Prompt{Kind: PromptNone}
	}

	sess.ChosenDate = chosen
	m.store.Put(userID, sess)
	return Prompt{Kind: PromptAmountForm, Date: chosen}
}

func (m *Machine) originsPrompt() Prompt {
	return Prompt{
		Kind:    PromptOrigins,
		Options: m.options.Origins(),
		Back:    Event{Kind: EventBack, Value: BackToTipo},
	}
}

func (m *Machine) categoriesPrompt() Prompt {
	return Prompt{
		Kind:    PromptCategories,
		Options: m.options.Categories(),
		Back:    Event{Kind: EventBack, Value: BackToTipo},
	}
}

func (m *Machine) paymentsPrompt(sess session.Context, selected string) Prompt {
	return Prompt{
		Kind:     PromptPayments,
		Options:  m.options.PaymentMethods(),
		Selected: selected,
		Back:     Event{Kind: EventBack, Value: m.backFromPayment(sess)},
	}
}

// backFromPayment names the stage the payment and date prompts return to:
// the origin list for Entrada flows, the category list for Saída flows.
func (m *Machine) backFromPayment(sess session.Context) string {
	if sess.Tipo == domain.TipoEntrada {
		return BackToOrigin
	}
	return BackToCategory
}
