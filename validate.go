package barg

import "fmt"

// validateSpec checks the cross-declaration invariants spec.md §4.1 and §8
// list (unique bindings, unique patterns, switch-arm distinctness) once the
// whole DSL body has been parsed. These catch malformed DSL authored by the
// embedding program, so they surface as *ProgrammingError or as a
// *ParseError of kind DuplicatePattern rather than as ordinary runtime
// input errors.
func validateSpec(spec *Spec) error {
	for _, d := range spec.Declarations {
		if d.Scope == ScopeSubcommand && spec.subcommandByName(d.SubcommandName) == nil {
			return newProgrammingError(
				"declaration %q (line %d) scoped to undeclared subcommand %q",
				d.Binding, d.line, d.SubcommandName,
			)
		}
		if d.Kind == KindSwitch {
			if err := validateSwitchArms(d); err != nil {
				return err
			}
			if d.Default != nil && !switchHasArmValue(d, d.Default.AsString()) {
				return newProgrammingError(
					"switch %q (line %d) default %q matches none of its arm values",
					d.Binding, d.line, d.Default.AsString(),
				)
			}
		}
		if d.Kind == KindEnum && d.Default != nil {
			if !containsChoice(d.Choices, d.Default.AsString()) {
				return newProgrammingError(
					"declaration %q (line %d) default %q is not among its declared choices",
					d.Binding, d.line, d.Default.AsString(),
				)
			}
		}
	}

	activeSets := buildActiveSets(spec)
	for _, set := range activeSets {
		if err := checkUniqueBindings(set); err != nil {
			return err
		}
		if err := checkUniquePatterns(set); err != nil {
			return err
		}
	}
	return nil
}

func containsChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}

func switchHasArmValue(d *Declaration, v string) bool {
	for _, arm := range d.Arms {
		if arm.Value == v {
			return true
		}
	}
	return false
}

func validateSwitchArms(d *Declaration) error {
	seenShort := map[string]bool{}
	seenLong := map[string]bool{}
	for _, arm := range d.Arms {
		if arm.Pattern.HasShort() {
			if seenShort[arm.Pattern.Short] {
				return newParseError(KindDuplicatePattern,
					"switch %q (line %d): duplicate short arm -%s", d.Binding, d.line, arm.Pattern.Short)
			}
			seenShort[arm.Pattern.Short] = true
		}
		if seenLong[arm.Pattern.Long] {
			return newParseError(KindDuplicatePattern,
				"switch %q (line %d): duplicate arm --%s", d.Binding, d.line, arm.Pattern.Long)
		}
		seenLong[arm.Pattern.Long] = true
	}
	return nil
}

// buildActiveSets returns, for every possible "active scope" (no subcommand
// selected, or each declared subcommand selected), the declarations that
// would be simultaneously live — the domain over which binding names and
// option patterns must be collision-free.
func buildActiveSets(spec *Spec) [][]*Declaration {
	var sets [][]*Declaration
	sets = append(sets, spec.declarationsForScope(""))
	for _, sc := range spec.Subcommands {
		sets = append(sets, spec.declarationsForScope(sc.Name))
	}
	return sets
}

func checkUniqueBindings(set []*Declaration) error {
	seen := map[string]*Declaration{}
	for _, d := range set {
		if prior, ok := seen[d.Binding]; ok {
			return newProgrammingError(
				"binding %q declared twice in the same active scope (lines %d and %d)",
				d.Binding, prior.line, d.line,
			)
		}
		seen[d.Binding] = d
	}
	return nil
}

// checkUniquePatterns ensures no two declarations (or switch arms) active at
// once claim the same short character or long name. This is stricter than
// spec.md's literal wording, which calls out only non-switch declarations
// explicitly, but is necessary for deterministic argv binding regardless.
func checkUniquePatterns(set []*Declaration) error {
	seenShort := map[string]string{}
	seenLong := map[string]string{}

	check := func(owner string, p Pattern) error {
		if p.HasShort() {
			if prior, ok := seenShort[p.Short]; ok {
				return newParseError(KindDuplicatePattern,
					"short flag -%s claimed by both %q and %q in the same active scope", p.Short, prior, owner)
			}
			seenShort[p.Short] = owner
		}
		if p.HasLong() {
			if prior, ok := seenLong[p.Long]; ok {
				return newParseError(KindDuplicatePattern,
					"long flag --%s claimed by both %q and %q in the same active scope", p.Long, prior, owner)
			}
			seenLong[p.Long] = owner
		}
		return nil
	}

	for _, d := range set {
		if d.Kind == KindSwitch {
			for _, arm := range d.Arms {
				label := fmt.Sprintf("%s (switch arm --%s)", d.Binding, arm.Pattern.Long)
				if err := check(label, arm.Pattern); err != nil {
					return err
				}
			}
			continue
		}
		if err := check(d.Binding, d.Pattern); err != nil {
			return err
		}
	}
	return nil
}
