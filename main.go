package main

import (
	"fmt"
	"os"
	"strings"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	var initialFile string
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "--version", "-v":
			fmt.Printf("mentor %s (built %s)\n", Version, BuildDate)
			fmt.Println("AI code review with inline, acceptable fixes")
			os.Exit(0)
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Unknown flag: %s\n\n", arg)
				printHelp()
				os.Exit(2)
			}
			initialFile = arg
		}
	}

	if err := StartTUI(initialFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`mentor - AI code review with inline, acceptable fixes

Usage:
  mentor [flags] [file]

A file argument is loaded into the editor at startup, with the
language inferred from its extension.

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Interactive Commands:
  /analyze        Review the code in the editor (or Ctrl+A)
  /viz            Step-by-step execution trace
  /format         Reformat without changing behavior
  /gen <request>  Generate code from a description
  /lesson <topic> Short lesson on a topic
  /lang <name>    Set the language (python, go, javascript, ...)
  /history        Show past submissions
  /help           Show all commands
  /quit           Exit mentor

Environment Variables:
  MENTOR_PROVIDER         LLM provider: gemini, anthropic, openai, bedrock
  MENTOR_MODEL            Model tier (fast, balanced, deep) or a concrete model ID
  MENTOR_MAX_TOKENS       Max tokens per response (default: 4096)
  MENTOR_MAX_TOTAL_TOKENS Max tokens per session (default: 150000, 0 = unlimited)
  MENTOR_HISTORY          Set to 0/false/off to disable submission history
  GEMINI_API_KEY          API key for the Gemini provider
  ANTHROPIC_API_KEY       API key for the Anthropic provider
  OPENAI_API_KEY          API key for the OpenAI provider
  AWS_REGION              AWS region for Bedrock (default: us-east-1)

Example:
  $ mentor
  > def add(a, b)
  >     return a + b
  [Ctrl+A]
  error L1: SyntaxError: missing colon
    - def add(a, b)
    + def add(a, b):
  [a to accept the fix, d to dismiss]

Settings are stored in ~/.aimentor/settings.json`)
}
