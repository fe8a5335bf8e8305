package domain

// Tipo is the direction of a financial entry.
type Tipo string

const (
	// TipoEntrada is money coming in.
	TipoEntrada Tipo = "Entrada"
	// TipoSaida is money going out.
	TipoSaida Tipo = "Saída"
)

// Entry represents one completed wizard flow, ready to be submitted.
// This is a domain struct, not a wire format; the webhook client maps it
// into the n8n payload. Origem is set for Entrada entries, Categoria and
// Subcategoria for Saída entries.
type Entry struct {
	Tipo         Tipo   `json:"tipo"`
	Pagamento    string `json:"pagamento"`
	Data         string `json:"data"`  // canonical YYYY-MM-DD
	Valor        string `json:"valor"` // normalized amount string, not parsed
	User         string `json:"user"`
	Origem       string `json:"origem,omitempty"`
	Categoria    string `json:"categoria,omitempty"`
	Subcategoria string `json:"subcategoria,omitempty"`
}

// QuickAction identifies one of the report shortcuts on the main menu.
// These bypass the wizard entirely and are resolved by the automation side.
type QuickAction string

const (
	// ActionBalance requests the current balance report.
	ActionBalance QuickAction = "saldo_atual"
	// ActionSpendingByCategory requests the spending-by-category report.
	ActionSpendingByCategory QuickAction = "saidas_por_categoria"
)
