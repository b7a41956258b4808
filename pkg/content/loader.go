package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/termfolio/pkg/domain"
)

//go:embed catalog.yaml banner.txt portrait.txt locales/*.yaml
var files embed.FS

const (
	catalogFile = "catalog.yaml"
	bannerFile  = "banner.txt"
	localeDir   = "locales"
)

// portraitFile is optional; without it the welcome portrait is an empty frame.
const portraitFile = "portrait.txt"

type catalogFileData struct {
	Boot     BootScreen     `yaml:"boot"`
	Language LanguageScreen `yaml:"language"`
}

type localeFileData struct {
	Locale   string            `yaml:"locale"`
	Prompt   string            `yaml:"prompt"`
	Shell    string            `yaml:"shell"`
	Commands map[string]string `yaml:"commands"`
	Help     struct {
		Title   string      `yaml:"title"`
		Entries []HelpEntry `yaml:"entries"`
	} `yaml:"help"`
	Nav   map[string]string   `yaml:"nav"`
	Views map[string][]string `yaml:"views"`
}

// Load decodes and validates the embedded catalog.
func Load() (*Catalog, error) {
	return LoadFS(files)
}

// MustLoad is Load for program start; the embedded files are part of the build,
// so a failure here is a programming error.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(fmt.Sprintf("content: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadFS decodes a catalog laid out like the embedded one and validates it.
// Decoding problems in locale files are aggregated with the validation failures.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var meta catalogFileData
	if err := decodeFile(fsys, catalogFile, &meta); err != nil {
		return nil, err
	}

	bannerData, err := fs.ReadFile(fsys, bannerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", bannerFile, err)
	}

	portrait, err := readLines(fsys, portraitFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	c := &Catalog{
		Boot:     meta.Boot,
		Language: meta.Language,
		Banner:   splitLines(bannerData),
		Portrait: portrait,
		tables:   make(map[domain.Locale]*Table),
	}

	var errs []error
	for _, locale := range domain.Locales {
		name := path.Join(localeDir, locale.String()+".yaml")
		var raw localeFileData
		if err := decodeFile(fsys, name, &raw); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, invalid(locale, "file", "missing %s", name))
				continue
			}
			return nil, err
		}
		table, tableErrs := buildTable(locale, &raw, c.Banner)
		errs = append(errs, tableErrs...)
		c.tables[locale] = table
	}

	if err := Validate(c); err != nil {
		errs = append(errs, ValidationErrors(err)...)
	}
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return c, nil
}

func readLines(fsys fs.FS, name string) ([]string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return splitLines(data), nil
}

func splitLines(data []byte) []string {
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func buildTable(locale domain.Locale, raw *localeFileData, banner []string) (*Table, []error) {
	var errs []error
	if raw.Locale != locale.String() {
		errs = append(errs, invalid(locale, "locale", "file declares %q", raw.Locale))
	}

	t := &Table{
		Locale:    locale,
		Prompt:    raw.Prompt,
		Shell:     raw.Shell,
		Commands:  make(map[string]domain.Action, len(raw.Commands)),
		HelpTitle: raw.Help.Title,
		Help:      raw.Help.Entries,
		Nav:       make(map[domain.View]string, len(raw.Nav)),
		banner:    banner,
		views:     make(map[domain.View][]string, len(raw.Views)),
	}

	for _, token := range sortedKeys(raw.Commands) {
		key := "commands." + token
		if token != Normalize(token) {
			errs = append(errs, invalid(locale, key, "token must be lowercase without surrounding spaces"))
			continue
		}
		action, err := domain.ParseAction(raw.Commands[token])
		if err != nil {
			errs = append(errs, invalid(locale, key, "%v", err))
			continue
		}
		t.Commands[token] = action
	}

	for _, name := range sortedKeys(raw.Nav) {
		view, err := domain.ParseView(name)
		if err != nil {
			errs = append(errs, invalid(locale, "nav."+name, "%v", err))
			continue
		}
		t.Nav[view] = raw.Nav[name]
	}

	for _, name := range sortedKeys(raw.Views) {
		view, err := domain.ParseView(name)
		if err != nil {
			errs = append(errs, invalid(locale, "views."+name, "%v", err))
			continue
		}
		if view == domain.ViewHelp {
			errs = append(errs, invalid(locale, "views.help", "help is generated from the help section"))
			continue
		}
		t.views[view] = raw.Views[name]
	}

	return t, errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortTokens(tokens []string, commands map[string]domain.Action) {
	rank := func(a domain.Action) int {
		switch a.Kind {
		case domain.ActionView:
			return slices.Index(domain.Views, a.View)
		case domain.ActionClear:
			return len(domain.Views)
		default:
			return len(domain.Views) + 1 + int(a.Direction)
		}
	}
	slices.SortFunc(tokens, func(a, b string) int {
		if d := rank(commands[a]) - rank(commands[b]); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
}
