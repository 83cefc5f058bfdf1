package chatclient

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fertilitycare/pkg/api"
)

// Theme is the UI theme preference. It is process-local and never persisted.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// languageFile is the fixed key the language code is stored under in the
// user's durable config directory.
const languageFile = "language"

// Preferences holds the client's language and theme as an explicit value
// passed to the pipeline and suggester. Only the language code is persisted.
// Interested components register a callback instead of listening on any
// broadcast channel.
type Preferences struct {
	mu        sync.Mutex
	language  api.Language
	theme     Theme
	dir       string
	observers []func(api.Language)
}

// LoadPreferences reads the stored language from the user config directory,
// falling back to the process locale (when it is a supported code) and
// finally to English.
func LoadPreferences() *Preferences {
	dir := ""
	if base, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(base, "fertilitycare")
	}
	return LoadPreferencesFrom(dir)
}

// LoadPreferencesFrom is LoadPreferences rooted at an explicit directory.
func LoadPreferencesFrom(dir string) *Preferences {
	p := &Preferences{
		language: api.DefaultLanguage,
		theme:    ThemeLight,
		dir:      dir,
	}

	if lang, ok := p.readStored(); ok {
		p.language = lang
	} else if lang := localeLanguage(); lang.Valid() {
		p.language = lang
	}

	return p
}

// Language returns the active language code.
func (p *Preferences) Language() api.Language {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.language
}

// SetLanguage changes the active language, persists the code, and notifies
// registered observers. Unsupported codes are ignored.
func (p *Preferences) SetLanguage(language api.Language) error {
	if !language.Valid() {
		return nil
	}

	p.mu.Lock()
	if p.language == language {
		p.mu.Unlock()
		return nil
	}
	p.language = language
	observers := make([]func(api.Language), len(p.observers))
	copy(observers, p.observers)
	dir := p.dir
	p.mu.Unlock()

	for _, fn := range observers {
		fn(language)
	}

	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, languageFile), []byte(language), 0o644)
}

// OnLanguageChange registers a callback invoked after each language change.
func (p *Preferences) OnLanguageChange(fn func(api.Language)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// Theme returns the active theme.
func (p *Preferences) Theme() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// SetTheme changes the active theme. Themes are not persisted.
func (p *Preferences) SetTheme(theme Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = theme
}

// readStored loads the persisted language code, if any.
func (p *Preferences) readStored() (api.Language, bool) {
	if p.dir == "" {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(p.dir, languageFile))
	if err != nil {
		return "", false
	}
	lang := api.Language(strings.TrimSpace(string(data)))
	if !lang.Valid() {
		return "", false
	}
	return lang, true
}

// localeLanguage derives a language code from the process locale, e.g.
// LANG=hi_IN.UTF-8 yields "hi".
func localeLanguage() api.Language {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		code := value
		if i := strings.IndexAny(code, "_."); i >= 0 {
			code = code[:i]
		}
		return api.Language(code)
	}
	return ""
}
