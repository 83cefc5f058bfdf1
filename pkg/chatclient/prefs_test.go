package chatclient

import (
	"os"
	"path/filepath"
	"testing"

	"fertilitycare/pkg/api"
)

func clearLocale(t *testing.T) {
	t.Helper()
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestPreferencesDefaultLanguage(t *testing.T) {
	clearLocale(t)
	prefs := LoadPreferencesFrom(t.TempDir())
	if got := prefs.Language(); got != api.LanguageEnglish {
		t.Errorf("Expected default language en, got %s", got)
	}
}

func TestPreferencesLocaleFallback(t *testing.T) {
	clearLocale(t)
	t.Setenv("LANG", "hi_IN.UTF-8")
	prefs := LoadPreferencesFrom(t.TempDir())
	if got := prefs.Language(); got != api.LanguageHindi {
		t.Errorf("Expected hi from locale, got %s", got)
	}
}

func TestPreferencesLocaleUnsupported(t *testing.T) {
	clearLocale(t)
	t.Setenv("LANG", "fr_FR.UTF-8")
	prefs := LoadPreferencesFrom(t.TempDir())
	if got := prefs.Language(); got != api.LanguageEnglish {
		t.Errorf("Expected en for unsupported locale, got %s", got)
	}
}

func TestPreferencesPersistRoundTrip(t *testing.T) {
	clearLocale(t)
	dir := t.TempDir()

	prefs := LoadPreferencesFrom(dir)
	if err := prefs.SetLanguage(api.LanguageGujarati); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}

	reloaded := LoadPreferencesFrom(dir)
	if got := reloaded.Language(); got != api.LanguageGujarati {
		t.Errorf("Expected persisted gu, got %s", got)
	}
}

func TestPreferencesStoredBeatsLocale(t *testing.T) {
	clearLocale(t)
	t.Setenv("LANG", "hi_IN.UTF-8")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, languageFile), []byte("gu"), 0o644); err != nil {
		t.Fatalf("Failed to seed language file: %v", err)
	}

	prefs := LoadPreferencesFrom(dir)
	if got := prefs.Language(); got != api.LanguageGujarati {
		t.Errorf("Expected stored gu to win over locale, got %s", got)
	}
}

func TestPreferencesCorruptStoreIgnored(t *testing.T) {
	clearLocale(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, languageFile), []byte("klingon"), 0o644); err != nil {
		t.Fatalf("Failed to seed language file: %v", err)
	}

	prefs := LoadPreferencesFrom(dir)
	if got := prefs.Language(); got != api.LanguageEnglish {
		t.Errorf("Expected en for corrupt stored code, got %s", got)
	}
}

func TestSetLanguageIgnoresInvalid(t *testing.T) {
	clearLocale(t)
	prefs := LoadPreferencesFrom(t.TempDir())
	if err := prefs.SetLanguage(api.Language("xx")); err != nil {
		t.Fatalf("SetLanguage returned error for invalid code: %v", err)
	}
	if got := prefs.Language(); got != api.LanguageEnglish {
		t.Errorf("Expected language unchanged, got %s", got)
	}
}

func TestSetLanguageNotifiesObservers(t *testing.T) {
	clearLocale(t)
	prefs := LoadPreferencesFrom(t.TempDir())

	var seen []api.Language
	prefs.OnLanguageChange(func(lang api.Language) { seen = append(seen, lang) })

	if err := prefs.SetLanguage(api.LanguageHindi); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	// Setting the same language again is a no-op.
	if err := prefs.SetLanguage(api.LanguageHindi); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}

	if len(seen) != 1 || seen[0] != api.LanguageHindi {
		t.Errorf("Expected exactly one notification for hi, got %v", seen)
	}
}

func TestThemeNotPersisted(t *testing.T) {
	clearLocale(t)
	dir := t.TempDir()

	prefs := LoadPreferencesFrom(dir)
	prefs.SetTheme(ThemeDark)
	if got := prefs.Theme(); got != ThemeDark {
		t.Errorf("Expected dark theme, got %s", got)
	}

	reloaded := LoadPreferencesFrom(dir)
	if got := reloaded.Theme(); got != ThemeLight {
		t.Errorf("Expected theme reset to light on reload, got %s", got)
	}
}
