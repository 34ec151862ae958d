package barg

import (
	"encoding/json"
	"strconv"
	"strings"
)

// completionColor is the color_code spec.md §4.8 assigns to a completion
// candidate: 0 subcommand, 1 optional flag, 2 required flag, 3 enum value.
type completionColor int

const (
	colorSubcommand completionColor = 0
	colorOptFlag    completionColor = 1
	colorReqFlag    completionColor = 2
	colorEnumValue  completionColor = 3
)

// completionCandidate is one row of the completion stream: a value, the
// color_code that classifies it, and an optional human-readable description.
type completionCandidate struct {
	Value       string
	Color       completionColor
	Description string
}

// runCompletion is the Completion Generator (spec.md §4.8). barg intercepts
// completion requests via a reserved first argv token rather than the
// teacher's hidden "__complete" subcommand, since the DSL has no concept of
// a builtin subcommand: "@tsvcomp" emits a color_code-tagged TSV stream for a
// bash/zsh completion script, "@nucomp" emits a JSON array for richer
// shells/editors to consume directly.
func runCompletion(spec *Spec, mode string, rest []string) string {
	cands := computeCompletions(spec, rest)

	var out string
	switch mode {
	case "@tsvcomp":
		out = formatTSV(cands)
	case "@nucomp":
		out = formatJSON(cands)
	}
	return out
}

// formatTSV renders the raw completion form spec.md §4.8 documents: one
// "value\tcolor_code\tdescription" line per candidate. The numeric
// color_code is the wire format here, not an ANSI escape — shell completion
// scripts (completion_bash.go/completion_zsh.go) pick columns back apart.
func formatTSV(cands []completionCandidate) string {
	var b strings.Builder
	for _, c := range cands {
		b.WriteString(c.Value)
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(int(c.Color)))
		b.WriteByte('\t')
		b.WriteString(c.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// completionJSONEntry is the @nucomp wire shape from spec.md §4.8.
type completionJSONEntry struct {
	Value       string            `json:"value"`
	Display     string            `json:"display"`
	Description string            `json:"description"`
	Style       map[string]string `json:"style"`
}

// fgForColor maps a color_code to the "fg" style name @nucomp documents.
func fgForColor(c completionColor) string {
	switch c {
	case colorSubcommand:
		return "green"
	case colorReqFlag:
		return "red"
	case colorEnumValue:
		return "cyan"
	default: // colorOptFlag
		return "yellow"
	}
}

func formatJSON(cands []completionCandidate) string {
	entries := make([]completionJSONEntry, 0, len(cands))
	for _, c := range cands {
		entries = append(entries, completionJSONEntry{
			Value:       c.Value,
			Display:     c.Value,
			Description: c.Description,
			Style:       map[string]string{"fg": fgForColor(c.Color)},
		})
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// computeCompletions decides what belongs after the tokens already typed
// (rest), following the context rules in spec.md §4.8: an enum-valued
// flag's pending value completes against its choices, a token starting
// with "-" completes against flag names active in scope, and anything else
// completes against subcommand names (when none has been selected yet).
func computeCompletions(spec *Spec, rest []string) []completionCandidate {
	if len(rest) == 0 {
		return topLevelCandidates(spec, "")
	}

	last := rest[len(rest)-1]
	prefix := rest[:len(rest)-1]
	activeScope := scanActiveScope(prefix, spec)

	if len(prefix) > 0 {
		prevTok := prefix[len(prefix)-1]
		if isFlagToken(prevTok) {
			name, _, _ := splitEquals(prevTok)
			isLong := len(name) >= 2 && name[1] == '-'
			var key string
			if isLong {
				key = name[2:]
			} else {
				key = name[1:]
			}
			if d, _ := lookupDeclaration(spec, activeScope, isLong, key); d != nil && d.Kind == KindEnum {
				return filterPrefix(enumValueCandidates(d), last)
			}
		}
	}

	if isFlagToken(last) {
		return filterPrefix(flagCandidates(spec, activeScope), last)
	}

	return filterPrefix(topLevelCandidates(spec, activeScope), last)
}

func scanActiveScope(prefix []string, spec *Spec) string {
	for _, tok := range prefix {
		if isFlagToken(tok) {
			continue
		}
		if sc := spec.subcommandByName(tok); sc != nil {
			return sc.Name
		}
	}
	return ""
}

func enumValueCandidates(d *Declaration) []completionCandidate {
	out := make([]completionCandidate, 0, len(d.Choices))
	for _, choice := range d.Choices {
		out = append(out, completionCandidate{Value: choice, Color: colorEnumValue})
	}
	return out
}

func flagCandidates(spec *Spec, activeScope string) []completionCandidate {
	var out []completionCandidate
	for _, d := range spec.declarationsForScope(activeScope) {
		color := colorOptFlag
		if d.Required {
			color = colorReqFlag
		}
		if d.Kind == KindSwitch {
			for _, arm := range d.Arms {
				if arm.Pattern.HasShort() {
					out = append(out, completionCandidate{Value: "-" + arm.Pattern.Short, Color: color, Description: arm.Help})
				}
				out = append(out, completionCandidate{Value: "--" + arm.Pattern.Long, Color: color, Description: arm.Help})
			}
			continue
		}
		if d.Pattern.HasShort() {
			out = append(out, completionCandidate{Value: "-" + d.Pattern.Short, Color: color, Description: d.Description})
		}
		if d.Pattern.HasLong() {
			out = append(out, completionCandidate{Value: "--" + d.Pattern.Long, Color: color, Description: d.Description})
		}
	}
	if spec.Config.HelpEnabled && autoHelpAvailable(spec) {
		out = append(out, completionCandidate{Value: "-h", Color: colorOptFlag, Description: "show help"})
		out = append(out, completionCandidate{Value: "--help", Color: colorOptFlag, Description: "show help"})
	}
	return out
}

func topLevelCandidates(spec *Spec, activeScope string) []completionCandidate {
	if activeScope != "" {
		return nil
	}
	out := make([]completionCandidate, 0, len(spec.Subcommands))
	for _, sc := range spec.Subcommands {
		out = append(out, completionCandidate{Value: sc.Name, Color: colorSubcommand, Description: sc.Description})
	}
	return out
}

func filterPrefix(candidates []completionCandidate, prefix string) []completionCandidate {
	var out []completionCandidate
	for _, c := range candidates {
		if strings.HasPrefix(c.Value, prefix) {
			out = append(out, c)
		}
	}
	return out
}
