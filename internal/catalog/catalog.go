// Package catalog holds the selectable option lists the wizard offers:
// entry origins, expense categories and their subcategories, payment
// methods, and the two command keywords. Everything is loaded from JSON
// files owned by the operator and replaced as one unit on reload.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// File names under the config directory. The set is fixed; editing one of
// these and saving is the supported way to change the bot's menus.
const (
	OriginsFile       = "entradas.json"
	CategoriesFile    = "categorias.json"
	SubcategoriesFile = "subcats.json"
	PaymentsFile      = "pagamentos.json"
	SettingsFile      = "settings.json"
)

// Settings holds the two command keywords.
type Settings struct {
	LaunchCommand string `json:"launchCommand"`
	ReloadCommand string `json:"reloadCommand"`
}

// DefaultSettings are used when settings.json is absent or unreadable.
var DefaultSettings = Settings{
	LaunchCommand: "!lancar",
	ReloadCommand: "!reload",
}

// snapshot is one immutable view of all five structures. Readers always see
// a complete snapshot; Reload builds a new one and swaps the pointer.
type snapshot struct {
	origins       []string
	categories    []string
	subcategories map[string][]string
	payments      []string
	settings      Settings
}

// Catalog is a reloadable view over the config directory. Safe for
// concurrent readers; Reload may run concurrently with reads.
type Catalog struct {
	dir  string
	log  zerolog.Logger
	curr atomic.Pointer[snapshot]
}

// New loads the catalog from dir. Individual files that are missing or
// corrupt contribute their defaults and are logged; New itself only fails
// when the directory cannot be read at all.
func New(dir string, log zerolog.Logger) (*Catalog, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("catalog.New: config dir: %w", err)
	}

	c := &Catalog{dir: dir, log: log}
	c.curr.Store(c.load())
	return c, nil
}

// Reload rebuilds the full snapshot from disk and swaps it in atomically.
// A reader that started under the previous snapshot keeps it; there is no
// partially-updated state.
func (c *Catalog) Reload() {
	c.curr.Store(c.load())
	c.log.Info().Str("dir", c.dir).Msg("Catalog reloaded")
}

// Origins returns the configured entry origins, in file order.
func (c *Catalog) Origins() []string {
	return c.curr.Load().origins
}

// Categories returns the configured expense categories, in file order.
func (c *Catalog) Categories() []string {
	return c.curr.Load().categories
}

// Subcategories returns the subcategories of a category, possibly empty.
func (c *Catalog) Subcategories(category string) []string {
	return c.curr.Load().subcategories[category]
}

// PaymentMethods returns the configured payment methods, in file order.
func (c *Catalog) PaymentMethods() []string {
	return c.curr.Load().payments
}

// LaunchKeyword returns the message command that starts a wizard session.
func (c *Catalog) LaunchKeyword() string {
	return c.curr.Load().settings.LaunchCommand
}

// ReloadKeyword returns the message command that reloads the catalog.
func (c *Catalog) ReloadKeyword() string {
	return c.curr.Load().settings.ReloadCommand
}

// Files returns the absolute paths of the config files, for the watcher.
func (c *Catalog) Files() []string {
	names := []string{OriginsFile, CategoriesFile, SubcategoriesFile, PaymentsFile, SettingsFile}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(c.dir, name))
	}
	return paths
}

// Dir returns the watched config directory.
func (c *Catalog) Dir() string {
	return c.dir
}

func (c *Catalog) load() *snapshot {
	s := &snapshot{
		subcategories: map[string][]string{},
		settings:      DefaultSettings,
	}
	loadJSON(c, OriginsFile, &s.origins)
	loadJSON(c, CategoriesFile, &s.categories)
	loadJSON(c, SubcategoriesFile, &s.subcategories)
	loadJSON(c, PaymentsFile, &s.payments)
	loadJSON(c, SettingsFile, &s.settings)
	if s.settings.LaunchCommand == "" {
		s.settings.LaunchCommand = DefaultSettings.LaunchCommand
	}
	if s.settings.ReloadCommand == "" {
		s.settings.ReloadCommand = DefaultSettings.ReloadCommand
	}
	return s
}

// loadJSON reads one config file into dst, leaving dst untouched on any
// failure so the caller's default survives.
func loadJSON[T any](c *Catalog, name string, dst *T) {
	path := filepath.Join(c.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Warn().Err(err).Str("file", name).Msg("Config file unreadable, using default")
		return
	}

	var parsed T
	if err := json.Unmarshal(data, &parsed); err != nil {
		c.log.Warn().Err(err).Str("file", name).Msg("Config file unparseable, using default")
		return
	}
	*dst = parsed
}
