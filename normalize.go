package barg

// normToken is one token of the normalized argv stream: Literal is true for
// the single token immediately following a "--" end-of-options marker,
// meaning it must never be flag-interpreted even if it looks like one.
// Tokens after that one return to normal processing — "--" escapes only
// the next token, not the rest of argv.
type normToken struct {
	Text    string
	Literal bool
}

// normalizeArgv implements the Argv Normalizer (spec.md §4.3): it expands
// bundled short flags ("-abc" -> "-a" "-b" "-c"), splits an attached value
// off a value-consuming short flag ("-t2" -> "-t" "2"; "-t=2" stays one
// token and is split at bind time), and marks only the single token
// immediately following a literal "--" as never flag-interpreted; every
// later token resumes normal processing. Running it again over the texts of
// its own output gives the same texts as long as no escaped token and no
// split-off value begins with '-': the "--" markers are gone from the
// output, so such a token is treated as a flag on the second pass.
func normalizeArgv(argv []string, spec *Spec) []normToken {
	var out []normToken
	literal := false

	for _, tok := range argv {
		if literal {
			out = append(out, normToken{Text: tok, Literal: true})
			literal = false
			continue
		}
		if tok == "--" {
			literal = true
			continue
		}
		if !isFlagToken(tok) {
			out = append(out, normToken{Text: tok})
			continue
		}
		if len(tok) >= 2 && tok[1] == '-' {
			// long flag; "--flag=value" splitting happens at bind time.
			out = append(out, normToken{Text: tok})
			continue
		}
		out = append(out, expandShortCluster(tok[1:], spec)...)
	}

	return out
}

func expandShortCluster(rest string, spec *Spec) []normToken {
	runes := []rune(rest)
	var out []normToken

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if !isShortChar(c) {
			// Malformed cluster; leave the remainder intact for the bind
			// stage to reject as an unknown flag rather than guessing.
			out = append(out, normToken{Text: "-" + string(runes[i:])})
			return out
		}

		out = append(out, normToken{Text: "-" + string(c)})

		if shortConsumesValue(spec, string(c)) && i+1 < len(runes) {
			if runes[i+1] == '=' {
				// "-f=value" stays one token; matchFlagToken splits it.
				out[len(out)-1].Text = "-" + string(runes[i:])
				return out
			}
			out = append(out, normToken{Text: string(runes[i+1:])})
			return out
		}
	}

	return out
}

// shortConsumesValue reports whether short char c names a Scalar, Vector, or
// Enum declaration anywhere in spec (switch arms and Flag declarations never
// consume an attached value, so they stay bundleable).
func shortConsumesValue(spec *Spec, c string) bool {
	for _, d := range spec.Declarations {
		if d.Kind == KindSwitch {
			continue
		}
		if d.Pattern.Short == c {
			return d.Kind == KindScalar || d.Kind == KindVector || d.Kind == KindEnum
		}
	}
	return false
}
