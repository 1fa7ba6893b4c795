package syntax

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// Language identifies a supported highlight language.
type Language int

const (
	LangNone Language = iota
	LangGo
	LangRust
	LangJavaScript
	LangTypeScript
	LangTSX
	LangPython
	LangJSON
	LangTOML
	LangYAML
	LangMarkdown
	LangPHP
)

// String returns the display name of the language.
func (l Language) String() string {
	switch l {
	case LangGo:
		return "go"
	case LangRust:
		return "rust"
	case LangJavaScript:
		return "javascript"
	case LangTypeScript:
		return "typescript"
	case LangTSX:
		return "tsx"
	case LangPython:
		return "python"
	case LangJSON:
		return "json"
	case LangTOML:
		return "toml"
	case LangYAML:
		return "yaml"
	case LangMarkdown:
		return "markdown"
	case LangPHP:
		return "php"
	default:
		return "text"
	}
}

// lexerName is the chroma lexer each variant binds to.
func (l Language) lexerName() string {
	switch l {
	case LangGo:
		return "Go"
	case LangRust:
		return "Rust"
	case LangJavaScript:
		return "JavaScript"
	case LangTypeScript, LangTSX:
		return "TypeScript"
	case LangPython:
		return "Python"
	case LangJSON:
		return "JSON"
	case LangTOML:
		return "TOML"
	case LangYAML:
		return "YAML"
	case LangMarkdown:
		return "markdown"
	case LangPHP:
		return "PHP"
	default:
		return ""
	}
}

// lexer returns the bound chroma lexer, or nil for LangNone and for
// lexers missing from the chroma build.
func (l Language) lexer() chroma.Lexer {
	name := l.lexerName()
	if name == "" {
		return nil
	}
	lx := lexers.Get(name)
	if lx == nil {
		return nil
	}
	return chroma.Coalesce(lx)
}

// Lookup resolves a language name or alias to its variant. It is a pure
// function of its argument; fence injection and config parsing both go
// through it.
func Lookup(name string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "go", "golang":
		return LangGo, true
	case "rust", "rs":
		return LangRust, true
	case "javascript", "js":
		return LangJavaScript, true
	case "typescript", "ts":
		return LangTypeScript, true
	case "tsx":
		return LangTSX, true
	case "python", "py":
		return LangPython, true
	case "json":
		return LangJSON, true
	case "toml":
		return LangTOML, true
	case "yaml", "yml":
		return LangYAML, true
	case "markdown", "md":
		return LangMarkdown, true
	case "php":
		return LangPHP, true
	default:
		return LangNone, false
	}
}

// builtinExtensions maps file extensions (without the dot) to languages.
var builtinExtensions = map[string]Language{
	"go":   LangGo,
	"rs":   LangRust,
	"js":   LangJavaScript,
	"mjs":  LangJavaScript,
	"cjs":  LangJavaScript,
	"ts":   LangTypeScript,
	"tsx":  LangTSX,
	"py":   LangPython,
	"json": LangJSON,
	"toml": LangTOML,
	"yaml": LangYAML,
	"yml":  LangYAML,
	"md":   LangMarkdown,
	"php":  LangPHP,
}

// Registry resolves files to languages, with user-configured extension
// overrides layered over the builtins.
type Registry struct {
	overrides map[string]Language
}

// NewRegistry builds a registry from extension overrides, a map of
// extension (without dot) to language name. Unknown language names are
// ignored.
func NewRegistry(overrides map[string]string) *Registry {
	r := &Registry{overrides: make(map[string]Language, len(overrides))}
	for ext, name := range overrides {
		if lang, ok := Lookup(name); ok {
			r.overrides[strings.TrimPrefix(strings.ToLower(ext), ".")] = lang
		}
	}
	return r
}

// ForFile resolves the language for a file. Extension overrides win over
// builtins; files with no mapped extension fall back to content-based
// detection. Unresolvable files are LangNone, which renders unhighlighted.
func (r *Registry) ForFile(path string, content []byte) Language {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	if lang, ok := r.overrides[ext]; ok {
		return lang
	}
	if lang, ok := builtinExtensions[ext]; ok {
		return lang
	}

	if name := enry.GetLanguage(filepath.Base(path), content); name != "" {
		if lang, ok := Lookup(name); ok {
			return lang
		}
	}
	return LangNone
}
