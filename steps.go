package main

import (
	"regexp"
	"strings"
)

// ExecutionStep is one step of a code walkthrough, anchored to a line
// range in the analyzed buffer.
type ExecutionStep struct {
	Number      int
	StartLine   int
	EndLine     int
	Description string
	Variables   string
	Action      string
	Output      string
}

// Visualization is a parsed step-by-step execution walkthrough.
type Visualization struct {
	Steps       []ExecutionStep
	Explanation string
	FlowDiagram string
}

var stepHeaderRe = regexp.MustCompile(`Step (\d+):\s*\[Line (\d+)(?:-(\d+))?\]\s*-\s*(.+)`)

// ParseVisualization parses a walkthrough response of the form:
//
//	STEPS:
//	Step 1: [Line 1] - initialize the counter
//	Variables: count = 0
//	Action: assign zero to count
//	EXPLANATION:
//	...
//	FLOW_DIAGRAM:
//	...
//
// Lines under a step that carry no recognized label are appended to
// the step's action. Steps outside a STEPS section are still accepted
// when the response skips the section headers entirely.
func ParseVisualization(response string) Visualization {
	viz := Visualization{}

	const (
		inSteps = iota
		inExplanation
		inDiagram
	)
	section := inSteps

	var current *ExecutionStep
	var explanation, diagram []string

	flushStep := func() {
		if current != nil {
			viz.Steps = append(viz.Steps, *current)
			current = nil
		}
	}

	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, "STEPS:"):
			section = inSteps
			continue
		case strings.HasPrefix(upper, "EXPLANATION:"):
			flushStep()
			section = inExplanation
			if rest := strings.TrimSpace(line[len("EXPLANATION:"):]); rest != "" {
				explanation = append(explanation, rest)
			}
			continue
		case strings.HasPrefix(upper, "FLOW_DIAGRAM:"), strings.HasPrefix(upper, "FLOW DIAGRAM:"):
			flushStep()
			section = inDiagram
			continue
		}

		switch section {
		case inExplanation:
			if line != "" {
				explanation = append(explanation, line)
			}
		case inDiagram:
			diagram = append(diagram, raw)
		default:
			if m := stepHeaderRe.FindStringSubmatch(line); m != nil {
				flushStep()
				start := parseIntSafe(m[2], 1)
				end := start
				if m[3] != "" {
					end = parseIntSafe(m[3], start)
				}
				current = &ExecutionStep{
					Number:      parseIntSafe(m[1], len(viz.Steps)+1),
					StartLine:   start,
					EndLine:     end,
					Description: strings.TrimSpace(m[4]),
				}
				continue
			}
			if current == nil || line == "" {
				continue
			}
			switch {
			case strings.HasPrefix(line, "Variables:"):
				current.Variables = strings.TrimSpace(line[len("Variables:"):])
			case strings.HasPrefix(line, "Action:"):
				current.Action = strings.TrimSpace(line[len("Action:"):])
			case strings.HasPrefix(line, "Output:"):
				current.Output = strings.TrimSpace(line[len("Output:"):])
			default:
				// Continuation of the previous action text.
				if current.Action != "" {
					current.Action += " " + line
				} else {
					current.Action = line
				}
			}
		}
	}
	flushStep()

	viz.Explanation = strings.Join(explanation, "\n")
	viz.FlowDiagram = strings.TrimSpace(strings.Join(diagram, "\n"))
	return viz
}
