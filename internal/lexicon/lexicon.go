// Package lexicon provides the static keyword dictionaries used to classify
// job descriptions. A Lexicon is an immutable value: callers receive copies
// and inject them into the tagger and the risk rules.
package lexicon

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/spigell/whoami-engine/internal/riasec"
)

const DefaultVersion = "2024.1"

var ErrInvalid = errors.New("invalid lexicon")

type Lexicon struct {
	Version    string                       `mapstructure:"version"`
	Categories map[riasec.Category][]string `mapstructure:"categories"`
	// Stress lists words signalling a demanding working environment.
	Stress []string `mapstructure:"stress"`
	// Focus lists words signalling analytic or concentration-heavy work.
	Focus []string `mapstructure:"focus"`
	// Organization is looked up in job requirements by the discipline rule.
	Organization string `mapstructure:"organization"`
}

// Default returns the built-in Polish dictionaries.
func Default() *Lexicon {
	return &Lexicon{
		Version: DefaultVersion,
		Categories: map[riasec.Category][]string{
			riasec.Realistic:     {"narzędzia", "maszyny", "naprawa", "montaż", "fizyczna", "sprzęt", "konstrukcje", "instalacje", "kierowca", "mechanik", "inżynier", "budowa", "teren", "ruch"},
			riasec.Investigative: {"analiza", "badania", "nauka", "rozwiązywanie", "logika", "teoria", "eksperyment", "dane", "programowanie", "biologia", "chemia", "fizyka", "matematyka", "diagnoza"},
			riasec.Artistic:      {"sztuka", "projektowanie", "grafika", "muzyka", "pisanie", "kreatywność", "tworzenie", "wyobraźnia", "media", "kultura", "design", "styl", "artysta"},
			riasec.Social:        {"ludzie", "pomoc", "nauczanie", "opieka", "współpraca", "terapia", "doradztwo", "szkolenia", "dzieci", "pacjent", "klient", "zespół", "rozmowa"},
			riasec.Enterprising:  {"zarządzanie", "sprzedaż", "biznes", "lider", "negocjacje", "marketing", "przedsiębiorczość", "decydowanie", "ryzyko", "kierowanie", "prezes", "strategia"},
			riasec.Conventional:  {"biuro", "dane", "organizacja", "procedury", "finanse", "księgowość", "dokładność", "archiwizacja", "administracja", "porządek", "prawo", "regulamin"},
		},
		Stress:       []string{"stres", "presja", "terminy", "odpowiedzialność", "ryzyko", "konflikt", "awarie", "wypadki", "dyżur", "napięcie"},
		Focus:        []string{"analiza", "koncentracja", "skupienie", "precyzja", "dokładność", "szczegół"},
		Organization: "organizacja",
	}
}

// Load reads a lexicon from a YAML, JSON or TOML file.
func Load(path string) (*Lexicon, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading lexicon %q: %w", path, err)
	}

	// viper lower-cases map keys, so categories are decoded as raw strings first.
	var raw struct {
		Version      string              `mapstructure:"version"`
		Categories   map[string][]string `mapstructure:"categories"`
		Stress       []string            `mapstructure:"stress"`
		Focus        []string            `mapstructure:"focus"`
		Organization string              `mapstructure:"organization"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decoding lexicon %q: %w", path, err)
	}

	lx := &Lexicon{
		Version:      raw.Version,
		Categories:   make(map[riasec.Category][]string, len(raw.Categories)),
		Stress:       raw.Stress,
		Focus:        raw.Focus,
		Organization: raw.Organization,
	}
	for key, words := range raw.Categories {
		category, ok := riasec.ParseCategory(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q in %q", ErrInvalid, key, path)
		}
		lx.Categories[category] = words
	}

	lx.normalize()
	if err := lx.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return lx, nil
}

// Validate checks that every category has at least one keyword.
func (l *Lexicon) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: lexicon is nil", ErrInvalid)
	}
	if strings.TrimSpace(l.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalid)
	}
	for _, category := range riasec.Categories() {
		if len(l.Categories[category]) == 0 {
			return fmt.Errorf("%w: category %s has no keywords", ErrInvalid, category)
		}
	}
	return nil
}

// Keywords returns the keywords of a category.
func (l *Lexicon) Keywords(c riasec.Category) []string {
	return l.Categories[c]
}

// Fingerprint identifies the lexicon contents. Two lexicons with equal
// fingerprints classify every text identically.
func (l *Lexicon) Fingerprint() string {
	var b strings.Builder
	b.WriteString(l.Version)
	for _, category := range riasec.Categories() {
		b.WriteString("|" + string(category) + ":")
		b.WriteString(strings.Join(l.Categories[category], ","))
	}
	b.WriteString("|stress:" + strings.Join(l.Stress, ","))
	b.WriteString("|focus:" + strings.Join(l.Focus, ","))
	b.WriteString("|org:" + l.Organization)

	hash := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("lx:%x", hash[:12])
}

func (l *Lexicon) normalize() {
	for category, words := range l.Categories {
		l.Categories[category] = normalizeWords(words)
	}
	l.Stress = normalizeWords(l.Stress)
	l.Focus = normalizeWords(l.Focus)
	l.Organization = strings.ToLower(strings.TrimSpace(l.Organization))
}

func normalizeWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Summary reports keyword counts per list, used for debug logging.
func (l *Lexicon) Summary() map[string]int {
	summary := make(map[string]int, len(l.Categories)+2)
	for category, words := range l.Categories {
		summary[string(category)] = len(words)
	}
	summary["stress"] = len(l.Stress)
	summary["focus"] = len(l.Focus)
	return summary
}
