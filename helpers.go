package main

import (
	"os"
	"regexp"
	"strings"
)

// extractCode extracts code from a markdown fenced block. The language
// tag, if present, must be followed by whitespace or a newline so a
// single-line fence keeps its first word.
func extractCode(response string) string {
	response = strings.ReplaceAll(response, "\r\n", "\n")

	re := regexp.MustCompile("(?s)```(?:[a-zA-Z0-9+#]+)?[ \t]*\n(.*?)\n?```")
	if matches := re.FindStringSubmatch(response); len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}

	// Truncated response: opening fence with a language tag but no
	// closing fence.
	reOpen := regexp.MustCompile("(?s)```[a-zA-Z0-9+#]+[ \t]*\n(.+)")
	if matches := reOpen.FindStringSubmatch(response); len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}

	return ""
}

// extractFormattedCode pulls the reformatted code out of a format
// response. The FORMATTED_CODE: section wins; a fenced block is the
// fallback; otherwise the whole response is taken as-is.
func extractFormattedCode(response string) string {
	response = strings.ReplaceAll(response, "\r\n", "\n")

	if idx := strings.Index(strings.ToUpper(response), "FORMATTED_CODE:"); idx >= 0 {
		body := response[idx+len("FORMATTED_CODE:"):]
		if fenced := extractCode(body); fenced != "" {
			return fenced
		}
		return strings.TrimSpace(strings.Trim(body, "\n"))
	}

	if fenced := extractCode(response); fenced != "" {
		return fenced
	}
	return strings.TrimSpace(response)
}

// codeWasChanged reports whether formatting altered the code, ignoring
// trailing whitespace on each line.
func codeWasChanged(original, formatted string) bool {
	return rstripLines(original) != rstripLines(formatted)
}

func rstripLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// saveToFile writes code to a file
func saveToFile(filename, code string) error {
	return os.WriteFile(filename, []byte(code), 0600)
}

// stripMarkdown removes common markdown formatting from text for terminal display
func stripMarkdown(text string) string {
	// Remove bold (**text** or __text__)
	re := regexp.MustCompile(`\*\*([^*]+)\*\*`)
	text = re.ReplaceAllString(text, "$1")
	re = regexp.MustCompile(`__([^_]+)__`)
	text = re.ReplaceAllString(text, "$1")

	// Remove italic (*text* or _text_) - be careful not to match bullet points
	re = regexp.MustCompile(`(?:^|[^*])\*([^*\n]+)\*(?:[^*]|$)`)
	text = re.ReplaceAllString(text, "$1")

	// Remove inline code (`text`)
	re = regexp.MustCompile("`([^`]+)`")
	text = re.ReplaceAllString(text, "$1")

	return text
}

// wrapText wraps text to a specified width, preserving paragraph breaks
func wrapText(text string, width int) []string {
	var result []string
	paragraphs := strings.Split(text, "\n")

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			result = append(result, "")
			continue
		}

		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		var line string
		for _, word := range words {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}

	return result
}

// shortModelName extracts a readable model name from the full ID
func shortModelName(modelID string) string {
	// us.anthropic.claude-haiku-4-5-20251001-v1:0 -> claude-haiku-4-5
	if parts := strings.Split(modelID, "."); len(parts) >= 3 {
		modelPart := parts[2]
		if idx := strings.Index(modelPart, "-202"); idx > 0 {
			return modelPart[:idx]
		}
		return modelPart
	}
	// gemini-2.0-flash and friends pass through unchanged
	return modelID
}
