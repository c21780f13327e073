// # internal/lang/lang.go
package lang

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Language identifies one supported grammar. TSX parses with its own grammar
// but reports under the "typescript" display name.
type Language string

const (
	Rust       Language = "rust"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Python     Language = "python"
	Java       Language = "java"
	C          Language = "c"
	Cpp        Language = "cpp"
	Go         Language = "go"
)

// All returns every supported language in stable order.
func All() []Language {
	return []Language{Rust, JavaScript, TypeScript, TSX, Python, Java, C, Cpp, Go}
}

// DisplayName folds parsing variants into their reporting name.
func (l Language) DisplayName() string {
	if l == TSX {
		return string(TypeScript)
	}
	return string(l)
}

func (l Language) String() string { return string(l) }

// FromString resolves a user-supplied language name or alias.
func FromString(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rust", "rs":
		return Rust, nil
	case "javascript", "js":
		return JavaScript, nil
	case "typescript", "ts":
		return TypeScript, nil
	case "tsx":
		return TSX, nil
	case "python", "py":
		return Python, nil
	case "java":
		return Java, nil
	case "c":
		return C, nil
	case "cpp", "c++", "cxx":
		return Cpp, nil
	case "go", "golang":
		return Go, nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// ParseList validates a list of language names, expanding "typescript" to
// cover the TSX parsing variant as well.
func ParseList(names []string) ([]Language, error) {
	seen := make(map[Language]bool)
	out := make([]Language, 0, len(names))
	add := func(l Language) {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, name := range names {
		l, err := FromString(name)
		if err != nil {
			return nil, err
		}
		add(l)
		if l == TypeScript {
			add(TSX)
		}
	}
	return out, nil
}

// extensionTable maps lowercase file extensions to languages. Detection is
// extension-only; no content sniffing.
var extensionTable = map[string]Language{
	".rs":   Rust,
	".js":   JavaScript,
	".jsx":  JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".ts":   TypeScript,
	".tsx":  TSX,
	".py":   Python,
	".pyw":  Python,
	".py3":  Python,
	".java": Java,
	".c":    C,
	".h":    C,
	".cpp":  Cpp,
	".cc":   Cpp,
	".cxx":  Cpp,
	".c++":  Cpp,
	".hpp":  Cpp,
	".hh":   Cpp,
	".hxx":  Cpp,
	".go":   Go,
}

// SupportedExtensions returns the recognized extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionTable))
	for ext := range extensionTable {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Catalog resolves file paths to languages, optionally restricted to an
// allow-list. A restricted catalog reports languages outside the list as
// unsupported before any parsing resources are allocated. Catalogs are
// immutable after construction and safe for concurrent use.
type Catalog struct {
	enabled map[Language]bool // nil means all languages enabled
}

// NewCatalog returns a catalog with every supported language enabled.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// NewCatalogWithLanguages returns a catalog restricted to the given languages.
func NewCatalogWithLanguages(languages []Language) *Catalog {
	enabled := make(map[Language]bool, len(languages))
	for _, l := range languages {
		enabled[l] = true
	}
	return &Catalog{enabled: enabled}
}

// Detect maps a file path to its language. The second return is false when
// the extension is unknown or the language is outside the allow-list.
func (c *Catalog) Detect(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := extensionTable[ext]
	if !ok {
		return "", false
	}
	if c.enabled != nil && !c.enabled[l] {
		return "", false
	}
	return l, true
}

// IsSupportedPath reports whether the path would be analyzed.
func (c *Catalog) IsSupportedPath(path string) bool {
	_, ok := c.Detect(path)
	return ok
}

// EnabledLanguages returns the active allow-list, or all languages.
func (c *Catalog) EnabledLanguages() []Language {
	if c.enabled == nil {
		return All()
	}
	out := make([]Language, 0, len(c.enabled))
	for _, l := range All() {
		if c.enabled[l] {
			out = append(out, l)
		}
	}
	return out
}
