package barg

import (
	"fmt"
	"regexp"
	"strings"
)

// renderHelp is the Help Generator (spec.md §4.7): it renders the summary,
// "Usage:" synopsis, Commands section, Options section, and an optional
// palette-aware epilog, following the layout and coloring conventions the
// teacher's ra_usage.go applies to its own usage/synopsis/options sections.
func renderHelp(spec *Spec, argv []string) string {
	pal := resolvePalette(spec.Config)
	activeSub := detectSubcommandForHelp(argv, spec)

	progName := spec.Config.ProgramName
	if progName == "" {
		progName = "program"
	}

	var b strings.Builder

	if spec.Config.Summary != "" {
		b.WriteString(spec.Config.Summary)
		b.WriteString("\n\n")
	}

	b.WriteString(chromeHeader("Usage:"))
	b.WriteString(" ")
	b.WriteString(pal.sprintf(RoleCommand, "%s", progName))
	if activeSub != "" {
		b.WriteString(" ")
		b.WriteString(pal.sprintf(RoleCommand, "%s", activeSub))
	}
	b.WriteString(buildSynopsis(spec, activeSub))
	b.WriteString("\n")

	if activeSub == "" && len(spec.Subcommands) > 0 {
		b.WriteString("\n")
		b.WriteString(chromeHeader("Commands:"))
		b.WriteString("\n")
		width := maxWidth(subcommandNames(spec.Subcommands))
		for _, sc := range spec.Subcommands {
			b.WriteString(fmt.Sprintf("  %s%s  %s\n",
				pal.sprintf(RoleCommand, "%s", sc.Name),
				strings.Repeat(" ", width-len([]rune(sc.Name))),
				sc.Description))
		}
	}

	decls := spec.declarationsForScope(activeSub)
	if len(decls) > 0 {
		b.WriteString("\n")
		b.WriteString(chromeHeader("Options:"))
		b.WriteString("\n")
		b.WriteString(formatDeclarations(decls, spec.Config, pal))
	}

	if spec.Config.EpilogSource != "" {
		b.WriteString("\n")
		b.WriteString(expandEpilogTokens(spec.Config.EpilogSource, pal))
		b.WriteString("\n")
	}

	out := b.String()
	fmt.Fprint(stdoutWriter, out)
	return out
}

// detectSubcommandForHelp picks the subcommand whose help to render, so
// "prog sub --help" shows sub's own options rather than the top-level
// summary: the first non-flag token before any "--" selects a subcommand if
// it names one, and otherwise ends the search. Unlike buildIndex, it does
// not skip the value token of a value-taking flag and does not look past a
// first positional that is not a subcommand.
func detectSubcommandForHelp(argv []string, spec *Spec) string {
	for _, tok := range argv {
		if tok == "--" {
			return ""
		}
		if isFlagToken(tok) {
			continue
		}
		if sc := spec.subcommandByName(tok); sc != nil {
			return sc.Name
		}
		return ""
	}
	return ""
}

func buildSynopsis(spec *Spec, activeSub string) string {
	var b strings.Builder
	if activeSub == "" && len(spec.Subcommands) > 0 {
		b.WriteString(" <command>")
	}
	b.WriteString(" [OPTIONS]")
	if sc := spec.subcommandByName(activeSub); sc != nil && sc.NeedsSpare {
		b.WriteString(" <args...>")
	} else if activeSub == "" && spec.Config.SpareArgsRequired {
		b.WriteString(" <args...>")
	}
	return b.String()
}

func subcommandNames(subs []*Subcommand) []string {
	names := make([]string, len(subs))
	for i, sc := range subs {
		names[i] = sc.Name
	}
	return names
}

func maxWidth(strs []string) int {
	max := 0
	for _, s := range strs {
		if n := len([]rune(s)); n > max {
			max = n
		}
	}
	return max
}

func flagSignature(d *Declaration) string {
	if d.Kind == KindSwitch {
		var parts []string
		for _, arm := range d.Arms {
			sig := ""
			if arm.Pattern.HasShort() {
				sig += "-" + arm.Pattern.Short + "/"
			}
			sig += "--" + arm.Pattern.Long
			parts = append(parts, sig)
		}
		return strings.Join(parts, ", ")
	}

	sig := ""
	if d.Pattern.HasShort() {
		sig = "-" + d.Pattern.Short + ", "
	}
	sig += "--" + d.Pattern.Long
	if d.Kind != KindFlag {
		sig += " <" + typeLabel(d) + ">"
	}
	return sig
}

func typeLabel(d *Declaration) string {
	if d.Kind == KindEnum {
		return strings.Join(d.Choices, "|")
	}
	label := d.ValueType.String()
	if d.Kind == KindVector {
		label += "..."
	}
	return label
}

func roleForDefault(vt ValueType) PaletteRole {
	if vt == TypeStr {
		return RoleStringDefault
	}
	return RoleOtherDefault
}

func formatDeclarations(decls []*Declaration, cfg Configuration, pal Palette) string {
	sigs := make([]string, len(decls))
	for i, d := range decls {
		sigs[i] = flagSignature(d)
	}
	width := maxWidth(sigs)

	var b strings.Builder
	for i, d := range decls {
		pad := width - len([]rune(sigs[i]))
		b.WriteString("  ")
		b.WriteString(pal.sprintf(RoleAccent, "%s", sigs[i]))
		b.WriteString(strings.Repeat(" ", pad))
		if d.Description != "" {
			b.WriteString("  ")
			b.WriteString(truncate(d.Description, 60))
		}
		switch {
		case d.Required:
			b.WriteString("  ")
			b.WriteString(pal.sprintf(RoleRequired, "(required)"))
		case cfg.ShowDefaults && d.Default != nil:
			b.WriteString("  ")
			b.WriteString(pal.sprintf(roleForDefault(d.ValueType), "(default: %s)", d.Default.AsString()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var epilogRoleTags = []struct {
	tag  string
	role PaletteRole
}{
	{"acc", RoleAccent}, {"cmd", RoleCommand}, {"req", RoleRequired},
	{"err", RoleError}, {"sdef", RoleStringDefault}, {"odef", RoleOtherDefault},
}

// expandEpilogTokens lets a DSL author style epilog_source text with the
// same six roles used elsewhere, via "{tag}...{/tag}" spans.
func expandEpilogTokens(text string, pal Palette) string {
	out := text
	for _, rt := range epilogRoleTags {
		re := regexp.MustCompile(`\{` + rt.tag + `\}(.*?)\{/` + rt.tag + `\}`)
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			sub := re.FindStringSubmatch(m)
			return pal.wrap(rt.role, sub[1])
		})
	}
	return out
}
