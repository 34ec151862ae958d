package barg

import "strconv"

// Result is everything ParseOrError hands back to the caller on success: the typed
// output bindings (spec.md §4.5/§6), which subcommand (if any) was
// selected, the leftover positional ("spare") tokens, and a record of which
// bindings actually came from argv as opposed to a declared default.
type Result struct {
	Subcommand string
	Bindings   map[string]any
	WasSet     map[string]bool
	Spare      []string
}

// bindAndValidate is the Bind & Validate Engine (spec.md §4.5): given the
// resolved index and the original normalized tokens, it coerces and
// validates every active declaration's value and assembles the Result, or
// returns the first *ParseError it encounters.
func bindAndValidate(spec *Spec, idx *indexResult, tokens []normToken) (*Result, error) {
	if len(idx.unknownFlags) > 0 {
		tok := tokens[idx.unknownFlags[0]]
		return nil, newParseError(KindUnknownFlag, "unrecognized flag %q", tok.Text)
	}

	if spec.Config.SubcommandRequired && idx.subcommand == "" && len(spec.Subcommands) > 0 {
		return nil, newParseError(KindMissingSubcommand, "a subcommand is required")
	}

	active := spec.declarationsForScope(idx.subcommand)

	res := &Result{
		Subcommand: idx.subcommand,
		Bindings:   map[string]any{},
		WasSet:     map[string]bool{},
	}

	consumedValue := map[int]bool{}

	for _, d := range active {
		occs := occurrencesFor(idx.occurrences, d)
		if err := bindOne(spec, d, occs, tokens, res); err != nil {
			return nil, err
		}
		for _, occ := range occs {
			if occ.valueTokenIndex >= 0 {
				consumedValue[occ.valueTokenIndex] = true
			}
		}
	}

	res.Bindings["BARG_SUBCOMMAND"] = idx.subcommand

	var spare []string
	for _, ti := range idx.positionals {
		if consumedValue[ti] {
			continue
		}
		spare = append(spare, tokens[ti].Text)
	}
	res.Spare = spare

	spareRequired := spec.Config.SpareArgsRequired
	if sc := spec.subcommandByName(idx.subcommand); sc != nil {
		spareRequired = spareRequired || sc.NeedsSpare
	}
	if spareRequired && len(spare) == 0 {
		return nil, newParseError(KindMissingSpare, "at least one spare argument is required")
	}

	res.Bindings[spec.Config.SpareArgsBinding] = append([]string(nil), spare...)
	res.WasSet[spec.Config.SpareArgsBinding] = len(spare) > 0

	argvTable := make(map[string]string, len(res.WasSet))
	for binding, wasSet := range res.WasSet {
		if wasSet {
			argvTable[binding] = "!"
		} else {
			argvTable[binding] = ""
		}
	}
	res.Bindings["BARG_ARGV_TABLE"] = argvTable

	return res, nil
}

func occurrencesFor(all []occurrence, d *Declaration) []occurrence {
	var out []occurrence
	for _, o := range all {
		if o.declaration == d {
			out = append(out, o)
		}
	}
	return out
}

func bindOne(spec *Spec, d *Declaration, occs []occurrence, tokens []normToken, res *Result) error {
	switch d.Kind {
	case KindFlag:
		return bindFlag(d, occs, res)
	case KindSwitch:
		return bindSwitch(d, occs, res)
	case KindEnum:
		return bindScalarLike(spec, d, occs, tokens, res, true)
	case KindScalar:
		return bindScalarLike(spec, d, occs, tokens, res, false)
	case KindVector:
		return bindVector(spec, d, occs, tokens, res)
	}
	return newProgrammingError("declaration %q has unknown kind", d.Binding)
}

func bindFlag(d *Declaration, occs []occurrence, res *Result) error {
	if len(occs) == 0 {
		res.Bindings[d.Binding] = d.FlagDefault
		res.WasSet[d.Binding] = false
		return nil
	}
	res.Bindings[d.Binding] = !d.FlagDefault
	res.WasSet[d.Binding] = true
	return nil
}

func bindSwitch(d *Declaration, occs []occurrence, res *Result) error {
	if len(occs) == 0 {
		if d.Required {
			return newParseError(KindMissingRequired, "switch %q requires one of its arms", d.Binding)
		}
		if d.Default != nil {
			res.Bindings[d.Binding] = d.Default.AsString()
		} else {
			res.Bindings[d.Binding] = "0"
		}
		res.WasSet[d.Binding] = false
		return nil
	}
	// With several arms given, the arm declared first wins, whatever their
	// order in argv.
	chosen := occs[0].arm
armLoop:
	for ai := range d.Arms {
		for _, occ := range occs {
			if occ.arm == &d.Arms[ai] {
				chosen = occ.arm
				break armLoop
			}
		}
	}
	res.Bindings[d.Binding] = chosen.Value
	res.WasSet[d.Binding] = true
	return nil
}

func bindScalarLike(spec *Spec, d *Declaration, occs []occurrence, tokens []normToken, res *Result, isEnum bool) error {
	if len(occs) == 0 {
		return bindDefault(d, res, isEnum)
	}

	last := occs[len(occs)-1]
	raw, err := resolveOccurrenceValue(last, tokens)
	if err != nil {
		return err
	}

	val, err := coerceAndValidate(spec, d, raw, isEnum)
	if err != nil {
		return err
	}
	res.Bindings[d.Binding] = val
	res.WasSet[d.Binding] = true
	return nil
}

func bindVector(spec *Spec, d *Declaration, occs []occurrence, tokens []normToken, res *Result) error {
	if len(occs) == 0 {
		return bindDefault(d, res, false)
	}

	var values []any
	for _, occ := range occs {
		raw, err := resolveOccurrenceValue(occ, tokens)
		if err != nil {
			return err
		}
		val, err := coerceAndValidate(spec, d, raw, false)
		if err != nil {
			return err
		}
		values = append(values, val)
	}
	res.Bindings[d.Binding] = values
	res.WasSet[d.Binding] = true
	return nil
}

func bindDefault(d *Declaration, res *Result, isEnum bool) error {
	// A required declaration has to come from argv; a declared default only
	// fills in for an optional one.
	if d.Required {
		return newParseError(KindMissingRequired, "%q is required", d.Binding)
	}

	// Vector kind binds an empty vector when absent, full stop — spec.md's
	// per-kind rule ("empty vector if absent; required + empty ->
	// MissingRequired") doesn't carve out an exception for a declared
	// default, unlike scalar/enum/flag.
	if d.Kind == KindVector {
		res.Bindings[d.Binding] = []any(nil)
		res.WasSet[d.Binding] = false
		return nil
	}

	if d.Default == nil {
		res.Bindings[d.Binding] = zeroValueFor(d.ValueType)
		res.WasSet[d.Binding] = false
		return nil
	}

	res.Bindings[d.Binding] = literalTyped(d.Default, d.ValueType)
	res.WasSet[d.Binding] = false
	return nil
}

func zeroValueFor(vt ValueType) any {
	switch vt {
	case TypeInt:
		return int64(0)
	case TypeFloat:
		return float64(0)
	default:
		return ""
	}
}

// literalTyped renders a DSL-declared default Literal as the Go value its
// declaration's ValueType would coerce it to, without re-running grammar
// validation (a default is trusted to already be well-formed, per
// validateSpec's enum-default check; scalar/numeric defaults are the
// embedding program's responsibility).
func literalTyped(lit *Literal, vt ValueType) any {
	switch vt {
	case TypeInt:
		if lit.Int != nil {
			return *lit.Int
		}
		if n, err := strconv.ParseInt(lit.AsString(), 10, 64); err == nil {
			return n
		}
		return int64(0)
	case TypeFloat:
		if lit.Float != nil {
			return *lit.Float
		}
		if f, err := strconv.ParseFloat(lit.AsString(), 64); err == nil {
			return f
		}
		return float64(0)
	case TypeNum:
		s := lit.AsString()
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	default:
		return lit.AsString()
	}
}

// resolveOccurrenceValue extracts the raw string value an occurrence
// supplied, or returns the ParamLikeValue error describing why none was
// available (no following token, or the next token looks like a flag).
func resolveOccurrenceValue(occ occurrence, tokens []normToken) (string, error) {
	if occ.attachedEquals {
		_, value, _ := splitEquals(tokens[occ.tokenIndex].Text)
		return value, nil
	}
	if occ.valueTokenIndex >= 0 {
		return tokens[occ.valueTokenIndex].Text, nil
	}
	if occ.tokenIndex+1 < len(tokens) {
		return "", newParseError(KindParamLikeValue,
			"%q looks like a flag, not a value for %s", tokens[occ.tokenIndex+1].Text, flagLabel(occ.declaration))
	}
	return "", newParseError(KindParamLikeValue, "missing value for %s", flagLabel(occ.declaration))
}

func flagLabel(d *Declaration) string {
	if d.Pattern.HasLong() {
		return "--" + d.Pattern.Long
	}
	return "-" + d.Pattern.Short
}

func coerceAndValidate(spec *Spec, d *Declaration, raw string, isEnum bool) (any, error) {
	if raw == "" && !spec.Config.AllowEmptyValues {
		if d.Required {
			return nil, newParseError(KindMissingRequired, "%s requires a non-empty value", flagLabel(d))
		}
		if !isEnum {
			return nil, newParseError(KindTypeMismatch, "empty value not allowed for %s", flagLabel(d))
		}
	}

	if isEnum {
		if !containsChoice(d.Choices, raw) {
			return nil, newParseError(KindInvalidChoice, "%q is not a valid choice for %s (choices: %v)", raw, flagLabel(d), d.Choices)
		}
		return raw, nil
	}

	switch d.ValueType {
	case TypeStr:
		return raw, nil
	case TypeInt, TypeFloat, TypeNum:
		cleaned, kind, ok := validateNumeric(raw, d.ValueType)
		if !ok {
			return nil, newParseError(kind, "%q is not a valid %s for %s", raw, d.ValueType, flagLabel(d))
		}
		return parseCleanedNumber(cleaned, d.ValueType)
	}
	return raw, nil
}

func parseCleanedNumber(cleaned string, vt ValueType) (any, error) {
	switch vt {
	case TypeInt:
		return strconv.ParseInt(cleaned, 10, 64)
	case TypeFloat:
		return strconv.ParseFloat(cleaned, 64)
	default: // TypeNum
		if n, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
			return n, nil
		}
		return strconv.ParseFloat(cleaned, 64)
	}
}
