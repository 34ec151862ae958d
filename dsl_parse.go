package barg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var bindingPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ParseSpec runs the Definition Parser (spec.md §4.1): it recognizes the
// DSL text's "#[always]" directive, meta{} block, commands{} block, and
// every option declaration, and returns the normalized Spec or a
// *ParseError / *ProgrammingError describing what went wrong.
func ParseSpec(dsl string) (*Spec, error) {
	body, always := stripDirectiveAndComments(dsl)

	p := &parser{
		lex:  newLexer(body),
		spec: &Spec{Always: always, Config: DefaultConfiguration()},
	}

	if err := p.parseAll(); err != nil {
		return nil, err
	}
	if err := validateSpec(p.spec); err != nil {
		return nil, err
	}
	return p.spec, nil
}

// stripDirectiveAndComments removes the leading "#[always]" directive (only
// recognized as the first non-blank line) and every full-line comment
// (a line whose first non-whitespace character is '#'), per spec.md §4.1.
func stripDirectiveAndComments(src string) (body string, always bool) {
	lines := strings.Split(src, "\n")
	var kept []string
	seenNonBlank := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !seenNonBlank && trimmed == "#[always]" {
			always = true
			seenNonBlank = true
			continue
		}
		if trimmed != "" {
			seenNonBlank = true
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), always
}

type parser struct {
	lex      *lexer
	spec     *Spec
	lastDecl string // binding of the last successfully matched declaration, for DSLSyntax context
}

func (p *parser) syntaxErr(format string, args ...any) *ParseError {
	msg := fmt.Sprintf(format, args...)
	if p.lastDecl != "" {
		msg = fmt.Sprintf("%s (after declaration '%s', line %d)", msg, p.lastDecl, p.lex.line)
	} else {
		msg = fmt.Sprintf("%s (line %d)", msg, p.lex.line)
	}
	return newParseError(KindDSLSyntax, "%s", msg)
}

func (p *parser) parseAll() error {
	for {
		p.lex.skipSpace()
		if p.lex.eof() {
			return nil
		}
		if p.tryKeyword("meta") {
			if err := p.parseMetaBlock(); err != nil {
				return err
			}
			continue
		}
		if p.tryKeyword("commands") {
			if err := p.parseCommandsBlock(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseDeclaration(); err != nil {
			return err
		}
	}
}

// tryKeyword consumes kw when it is the next word and is followed by
// (optional space then) '{'; otherwise it restores the cursor position and
// reports false.
func (p *parser) tryKeyword(kw string) bool {
	w := p.lex.peekWord(isLongChar)
	if w != kw {
		return false
	}
	// Require the keyword to be followed by (optional space then) '{' so a
	// binding or option literally named "meta"/"commands" isn't swallowed.
	save := p.lex.pos
	p.lex.consumeRunes(len([]rune(w)))
	p.lex.skipSpace()
	if p.lex.peek() != '{' {
		p.lex.pos = save
		return false
	}
	return true
}

var metaKeys = map[string]bool{
	"program_name": true, "summary": true, "color_palette": true,
	"on_error_hook": true, "epilog_source": true, "spare_args_binding": true,
	"spare_args_required": true, "subcommand_required": true,
	"allow_empty_values": true, "show_defaults": true, "help_enabled": true,
	"completion_enabled": true, "quiet_exit": true, "use_stderr": true,
}

func (p *parser) parseMetaBlock() error {
	if !p.lex.tryConsume("{") {
		return p.syntaxErr("expected '{' after meta")
	}
	for {
		p.lex.skipSpace()
		if p.lex.peek() == '}' {
			p.lex.advance()
			return nil
		}
		if p.lex.eof() {
			return p.syntaxErr("unterminated meta block")
		}
		key := p.lex.scanWord(isLongChar)
		if key == "" {
			return p.syntaxErr("expected meta key")
		}
		if !metaKeys[key] {
			return newParseError(KindInvalidOption, "unknown meta key %q", key)
		}
		if !p.lex.tryConsume(":") {
			return p.syntaxErr("expected ':' after meta key %q", key)
		}
		val, err := p.parseValue()
		if err != nil {
			return err
		}
		if err := applyMetaKey(&p.spec.Config, key, val); err != nil {
			return err
		}
	}
}

func applyMetaKey(cfg *Configuration, key string, val *Literal) error {
	switch key {
	case "program_name":
		cfg.ProgramName = val.AsString()
	case "summary":
		cfg.Summary = val.AsString()
	case "color_palette":
		cfg.ColorPalette = val.AsString()
	case "on_error_hook":
		cfg.OnErrorHook = val.AsString()
	case "epilog_source":
		cfg.EpilogSource = val.AsString()
	case "spare_args_binding":
		cfg.SpareArgsBinding = val.AsString()
	case "spare_args_required":
		cfg.SpareArgsRequired = literalBool(val)
	case "subcommand_required":
		cfg.SubcommandRequired = literalBool(val)
	case "allow_empty_values":
		cfg.AllowEmptyValues = literalBool(val)
	case "show_defaults":
		cfg.ShowDefaults = literalBool(val)
	case "help_enabled":
		cfg.HelpEnabled = literalBool(val)
	case "completion_enabled":
		cfg.CompletionEnabled = literalBool(val)
	case "quiet_exit":
		cfg.QuietExit = literalBool(val)
	case "use_stderr":
		cfg.UseStderr = literalBool(val)
	}
	return nil
}

func literalBool(v *Literal) bool {
	if v == nil {
		return false
	}
	if v.Bool != nil {
		return *v.Bool
	}
	if v.Str != nil {
		return *v.Str == "true"
	}
	if v.Int != nil {
		return *v.Int != 0
	}
	return false
}

func (p *parser) parseCommandsBlock() error {
	if !p.lex.tryConsume("{") {
		return p.syntaxErr("expected '{' after commands")
	}
	for {
		p.lex.skipSpace()
		if p.lex.peek() == '}' {
			p.lex.advance()
			return nil
		}
		if p.lex.eof() {
			return p.syntaxErr("unterminated commands block")
		}
		needsSpare := false
		if p.lex.peek() == '*' {
			p.lex.advance()
			needsSpare = true
		}
		name := p.lex.scanWord(isLongChar)
		if name == "" {
			return p.syntaxErr("expected subcommand name")
		}
		if !p.lex.tryConsume(":") {
			return p.syntaxErr("expected ':' after subcommand name %q", name)
		}
		descLit, err := p.parseValue()
		if err != nil {
			return err
		}
		p.spec.Subcommands = append(p.spec.Subcommands, &Subcommand{
			Name:        name,
			Description: descLit.AsString(),
			NeedsSpare:  needsSpare,
		})
	}
}

// parseValue consumes one DSL literal: a quoted string, a signed integer, or true/false.
func (p *parser) parseValue() (*Literal, error) {
	l := p.lex
	l.skipSpace()

	if r := l.peek(); r == '"' || r == '\'' {
		s, ok := l.scanQuotedString()
		if !ok {
			return nil, p.syntaxErr("unterminated string literal")
		}
		return stringLiteral(s), nil
	}

	if w := l.peekWord(isLongChar); w == "true" || w == "false" {
		l.consumeRunes(len([]rune(w)))
		b := w == "true"
		return boolLiteral(b), nil
	}

	// signed-integer: optional '-' then one or more digits.
	start := l.pos
	neg := false
	if l.peek() == '-' {
		neg = true
		l.advance()
	}
	digits := l.scanWord(func(r rune) bool { return r >= '0' && r <= '9' })
	if digits == "" {
		l.pos = start
		return nil, p.syntaxErr("expected a value (string, integer, or boolean)")
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, p.syntaxErr("invalid integer literal %q", digits)
	}
	if neg {
		n = -n
	}
	return intLiteral(n), nil
}

func (p *parser) parseDeclaration() error {
	l := p.lex
	l.skipSpace()

	d := &Declaration{Scope: ScopeGlobalAlways, line: l.line}

	// scope? := "@" identifier?
	if l.peek() == '@' {
		l.advance()
		name := l.scanWord(isLongChar)
		if name == "" {
			d.Scope = ScopeGlobalOnly
		} else {
			d.Scope = ScopeSubcommand
			d.SubcommandName = name
		}
	}

	// "!"?
	l.skipSpace()
	if l.peek() == '!' {
		l.advance()
		d.Required = true
	}

	l.skipSpace()
	switch {
	case l.peek() == '"' || l.peek() == '\'':
		name, ok := l.scanQuotedString()
		if !ok {
			return p.syntaxErr("unterminated switch name string")
		}
		d.SwitchName = name
		if err := p.parseSwitchBody(d); err != nil {
			return err
		}
	case l.peek() == '{':
		if err := p.parseSwitchBody(d); err != nil {
			return err
		}
	default:
		if err := p.parseOptionBody(d); err != nil {
			return err
		}
	}

	// default? — a bare value token before "=>", same production for every
	// option kind (spec grammar: "option type? default? '=>' binding").
	l.skipSpace()
	if !p.peekArrow() {
		def, err := p.parseValue()
		if err != nil {
			return err
		}
		d.Default = def
	}

	if !l.tryConsume("=>") {
		return p.syntaxErr("expected '=>' before output binding")
	}

	binding := l.scanWord(isLongChar)
	if binding == "" || !bindingPattern.MatchString(binding) {
		return p.syntaxErr("invalid output binding name %q", binding)
	}
	if isReservedBinding(binding) {
		return newParseError(KindIllegalBinding, "binding %q collides with a reserved name", binding)
	}
	d.Binding = binding

	// description?
	l.skipSpace()
	if l.peek() == '"' || l.peek() == '\'' {
		desc, ok := l.scanQuotedString()
		if !ok {
			return p.syntaxErr("unterminated description string")
		}
		d.Description = desc
	}

	if d.Kind == KindEnum && d.Default == nil {
		d.Default = stringLiteral(d.Choices[0])
	}
	if d.Kind == KindFlag && d.Default != nil {
		d.FlagDefault = literalBool(d.Default)
	}

	p.lastDecl = binding
	p.spec.Declarations = append(p.spec.Declarations, d)
	return nil
}

// peekArrow reports whether "=>" appears at the current position (after
// skipping space) without consuming it.
func (p *parser) peekArrow() bool {
	l := p.lex
	l.skipSpace()
	return l.peekAt(0) == '=' && l.peekAt(1) == '>'
}

// parseOptionBody parses (short "/")? long, optionally followed by an
// enum-list "[" value+ "]", or otherwise a ":" type suffix.
func (p *parser) parseOptionBody(d *Declaration) error {
	l := p.lex
	l.skipSpace()

	if isShortChar(l.peekAt(0)) && l.peekAt(1) == '/' {
		d.Pattern.Short = string(l.peekAt(0))
		l.consumeRunes(2)
	}

	long := l.scanWord(isLongChar)
	if long == "" {
		return p.syntaxErr("expected an option name")
	}
	d.Pattern.Long = long

	l.skipSpace()
	if l.peek() == '[' {
		l.advance()
		var choices []string
		for {
			l.skipSpace()
			if l.peek() == ']' {
				l.advance()
				break
			}
			if l.eof() {
				return p.syntaxErr("unterminated enum choice list for %q", long)
			}
			lit, err := p.parseValue()
			if err != nil {
				return err
			}
			choices = append(choices, lit.AsString())
		}
		if len(choices) == 0 {
			return p.syntaxErr("enum %q must declare at least one choice", long)
		}
		d.Kind = KindEnum
		d.Choices = choices
		return nil
	}

	if !l.tryConsume(":") {
		return p.syntaxErr("expected ':' type suffix for option %q", long)
	}
	typeWord := l.scanWord(isLongChar)
	kind, vt, ok := resolveTypeWord(typeWord)
	if !ok {
		return p.syntaxErr("unknown type %q for option %q", typeWord, long)
	}
	d.Kind = kind
	d.ValueType = vt
	return nil
}

func resolveTypeWord(word string) (Kind, ValueType, bool) {
	switch word {
	case "flag":
		return KindFlag, TypeStr, true
	case "str":
		return KindScalar, TypeStr, true
	case "int":
		return KindScalar, TypeInt, true
	case "float":
		return KindScalar, TypeFloat, true
	case "num":
		return KindScalar, TypeNum, true
	case "strs":
		return KindVector, TypeStr, true
	case "ints":
		return KindVector, TypeInt, true
	case "floats":
		return KindVector, TypeFloat, true
	case "nums":
		return KindVector, TypeNum, true
	}
	return 0, 0, false
}

// parseSwitchBody parses the "{" arm+ "}" block. d.SwitchName, if any, was
// already consumed by the caller.
func (p *parser) parseSwitchBody(d *Declaration) error {
	l := p.lex
	if !l.tryConsume("{") {
		return p.syntaxErr("expected '{' to start switch block")
	}
	d.Kind = KindSwitch

	for {
		l.skipSpace()
		if l.peek() == '}' {
			l.advance()
			break
		}
		if l.eof() {
			return p.syntaxErr("unterminated switch block")
		}

		var arm SwitchArm
		if isShortChar(l.peekAt(0)) && l.peekAt(1) == '/' {
			arm.Pattern.Short = string(l.peekAt(0))
			l.consumeRunes(2)
		}
		long := l.scanWord(isLongChar)
		if long == "" {
			return p.syntaxErr("expected an arm name in switch block")
		}
		arm.Pattern.Long = long

		if !l.tryConsume(":") {
			return p.syntaxErr("expected ':' after switch arm %q", long)
		}
		valLit, err := p.parseValue()
		if err != nil {
			return err
		}
		arm.Value = valLit.AsString()

		l.skipSpace()
		if l.peek() == 'h' && (l.peekAt(1) == '"' || l.peekAt(1) == '\'') {
			l.advance()
			help, ok := l.scanQuotedString()
			if !ok {
				return p.syntaxErr("unterminated help string for switch arm %q", long)
			}
			arm.Help = help
		}

		d.Arms = append(d.Arms, arm)
	}

	if len(d.Arms) == 0 {
		return p.syntaxErr("switch must declare at least one arm")
	}
	return nil
}
