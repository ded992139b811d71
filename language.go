package main

import (
	"path/filepath"
	"strings"
)

// Supported languages for analysis and metrics. Aliases map to the
// canonical short name used in prompts and history records.
var languageAliases = map[string]string{
	"python":     "python",
	"py":         "python",
	"java":       "java",
	"ruby":       "ruby",
	"rb":         "ruby",
	"php":        "php",
	"cpp":        "cpp",
	"c++":        "cpp",
	"c":          "c",
	"csharp":     "csharp",
	"c#":         "csharp",
	"javascript": "javascript",
	"js":         "javascript",
	"typescript": "typescript",
	"ts":         "typescript",
	"go":         "go",
	"golang":     "go",
	"rust":       "rust",
	"swift":      "swift",
	"kotlin":     "kotlin",
}

var languageDisplayNames = map[string]string{
	"python":     "Python",
	"java":       "Java",
	"ruby":       "Ruby",
	"php":        "PHP",
	"cpp":        "C++",
	"c":          "C",
	"csharp":     "C#",
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"go":         "Go",
	"rust":       "Rust",
	"swift":      "Swift",
	"kotlin":     "Kotlin",
}

// NormalizeLanguage resolves a user-supplied language name to its
// canonical form. Unknown languages fall back to python, which keeps
// the analysis pipeline usable for pseudocode and snippets.
func NormalizeLanguage(name string) string {
	if canonical, ok := languageAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return "python"
}

// LanguageForFile infers the language from a file name's extension.
// Unknown extensions fall back through NormalizeLanguage.
func LanguageForFile(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "rs":
		return "rust"
	case "kt", "kts":
		return "kotlin"
	case "cs":
		return "csharp"
	case "cc", "cxx", "hpp":
		return "cpp"
	}
	return NormalizeLanguage(ext)
}

// LanguageDisplayName returns the human-readable name for a canonical
// language.
func LanguageDisplayName(lang string) string {
	if display, ok := languageDisplayNames[NormalizeLanguage(lang)]; ok {
		return display
	}
	return "Python"
}

// SupportedLanguages lists the canonical language names in a stable
// display order.
func SupportedLanguages() []string {
	return []string{
		"python", "javascript", "typescript", "go", "java", "c", "cpp",
		"csharp", "ruby", "php", "rust", "swift", "kotlin",
	}
}
