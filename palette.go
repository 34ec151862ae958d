package barg

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/color"
)

// PaletteRole identifies one of the six roles the DSL's color_palette
// assigns an ANSI SGR code to (spec.md §4.2).
type PaletteRole int

const (
	RoleAccent PaletteRole = iota
	RoleCommand
	RoleRequired
	RoleError
	RoleStringDefault
	RoleOtherDefault
	paletteRoleCount
)

// Palette holds the six raw SGR parameter strings (e.g. "32;1"), in role
// order, plus whether color rendering is enabled at all.
type Palette struct {
	codes   [paletteRoleCount]string
	enabled bool
}

// resolvePalette implements the Palette & Options Resolver's color half:
// config.ColorPalette wins if non-empty, otherwise the BARG_COLOR_PALETTE
// environment variable is consulted. An explicit ":" (all segments empty)
// disables color outright.
func resolvePalette(cfg Configuration) Palette {
	raw := cfg.ColorPalette
	if raw == "" {
		raw = os.Getenv("BARG_COLOR_PALETTE")
	}

	p := Palette{enabled: true}
	if raw == "" {
		return p
	}

	parts := strings.Split(raw, ":")
	allEmpty := true
	for i := 0; i < paletteRoleCount && i < len(parts); i++ {
		p.codes[i] = parts[i]
		if parts[i] != "" {
			allEmpty = false
		}
	}
	if allEmpty {
		p.enabled = false
	}
	return p
}

// colorCapable mirrors the teacher's initializeColorFromEnv (ra_cmd_parse.go):
// github.com/amterp/color's tty/NO_COLOR auto-detection gates whether any
// ANSI is emitted at all, independent of the DSL's own palette toggle.
func colorCapable() bool {
	return !color.NoColor
}

// wrap applies role's SGR code to s, honoring both the DSL palette toggle
// and the terminal's own color capability.
func (p Palette) wrap(role PaletteRole, s string) string {
	if !p.enabled || !colorCapable() {
		return s
	}
	code := p.codes[role]
	if code == "" {
		return s
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, s)
}

func (p Palette) sprintf(role PaletteRole, format string, args ...any) string {
	return p.wrap(role, fmt.Sprintf(format, args...))
}

// Chrome text (section headers, command names) isn't palette-driven — it
// uses the teacher's fixed bold/green/cyan styling (ra_usage.go), gated only
// by the terminal's own color capability.
var (
	chromeHeader = color.New(color.FgGreen, color.Bold).SprintfFunc()
	chromeBold   = color.New(color.Bold).SprintfFunc()
	chromeCyan   = color.New(color.FgCyan).SprintfFunc()
)
