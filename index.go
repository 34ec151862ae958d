package barg

import "strings"

// occurrence is one resolved flag appearance in the normalized argv stream.
// A flag-looking token that matches no active declaration gets no
// occurrence; buildIndex records its position in indexResult.unknownFlags.
type occurrence struct {
	declaration    *Declaration
	arm            *SwitchArm // set when declaration.Kind == KindSwitch
	tokenIndex     int        // index of the flag token itself
	valueTokenIndex int       // index of the following token holding the value, -1 if none/missing
	attachedEquals bool       // value came from "--flag=value" / "-f=value" syntax
}

// indexResult is the Indexing Phase's output (spec.md §4.4): which
// subcommand (if any) was selected, every resolved flag occurrence, and the
// positions of every token left over as positional or unrecognized.
type indexResult struct {
	subcommand   string
	occurrences  []occurrence
	positionals  []int
	unknownFlags []int
}

// buildIndex walks the normalized token stream once, resolving the (at most
// one level deep) subcommand selection and every flag occurrence against
// the declarations active in the scope selected at that point in the scan.
func buildIndex(tokens []normToken, spec *Spec) (*indexResult, error) {
	res := &indexResult{}
	activeScope := ""
	subcommandConsumed := len(spec.Subcommands) == 0

	for i := 0; i < len(tokens); {
		tok := tokens[i]

		if tok.Literal {
			res.positionals = append(res.positionals, i)
			i++
			continue
		}

		if isFlagToken(tok.Text) {
			occ, consumed := matchFlagToken(tokens, i, activeScope, spec)
			if occ == nil {
				res.unknownFlags = append(res.unknownFlags, i)
				i += consumed
				continue
			}
			res.occurrences = append(res.occurrences, *occ)
			i += consumed
			continue
		}

		if !subcommandConsumed && activeScope == "" {
			if sc := spec.subcommandByName(tok.Text); sc != nil {
				res.subcommand = sc.Name
				activeScope = sc.Name
				subcommandConsumed = true
				i++
				continue
			}
		}

		res.positionals = append(res.positionals, i)
		i++
	}

	return res, nil
}

// matchFlagToken resolves the flag token at tokens[i] and reports how many
// tokens it consumed (1 for a valueless match, or 2 when the next token
// supplies the value).
func matchFlagToken(tokens []normToken, i int, activeScope string, spec *Spec) (*occurrence, int) {
	name, _, hasAttached := splitEquals(tokens[i].Text)
	isLong := len(name) >= 2 && name[1] == '-'

	var key string
	if isLong {
		key = name[2:]
	} else {
		key = name[1:]
	}

	decl, arm := lookupDeclaration(spec, activeScope, isLong, key)
	if decl == nil {
		return nil, 1
	}

	occ := &occurrence{declaration: decl, arm: arm, tokenIndex: i, valueTokenIndex: -1}

	switch decl.Kind {
	case KindFlag, KindSwitch:
		return occ, 1
	default: // Scalar, Vector, Enum
		if hasAttached {
			occ.attachedEquals = true
			return occ, 1
		}
		if i+1 < len(tokens) {
			next := tokens[i+1]
			if next.Literal || !isFlagToken(next.Text) {
				occ.valueTokenIndex = i + 1
				return occ, 2
			}
		}
		return occ, 1
	}
}

func lookupDeclaration(spec *Spec, activeScope string, isLong bool, key string) (*Declaration, *SwitchArm) {
	for _, d := range spec.declarationsForScope(activeScope) {
		if d.Kind == KindSwitch {
			for ai := range d.Arms {
				arm := &d.Arms[ai]
				if isLong && arm.Pattern.Long == key {
					return d, arm
				}
				if !isLong && arm.Pattern.Short == key {
					return d, arm
				}
			}
			continue
		}
		if isLong && d.Pattern.Long == key {
			return d, nil
		}
		if !isLong && d.Pattern.Short == key {
			return d, nil
		}
	}
	return nil, nil
}

func splitEquals(text string) (name, value string, hasAttached bool) {
	idx := strings.IndexByte(text, '=')
	if idx == -1 {
		return text, "", false
	}
	return text[:idx], text[idx+1:], true
}
