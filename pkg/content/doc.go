/*
Package content holds the static text of the portfolio: the boot screen, the language
selector, and one command Table per locale.

All files are compiled into the binary with go:embed and decoded with yaml.v3 when the
program starts. Load validates the whole catalog and reports every problem at once, so a
broken locale file is caught by `termfolio validate` and by the test suite rather than by a
visitor.

# Key Entities

  - Catalog: every locale Table plus the locale-independent boot and language screens.
  - Table: prompt strings, the command token map, help entries, nav labels and view text.
  - ValidationError: one problem found in a locale file, keyed by locale and field.
*/
package content
