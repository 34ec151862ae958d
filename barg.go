package barg

import "errors"

// ParseOption configures a single ParseOrError/ParseOrExit call,
// mirroring the teacher's functional-options ParseOpt family (ra_opt.go).
type ParseOption func(*parseOptions)

type parseOptions struct {
	errorHook ErrorHook
}

// WithErrorHook installs the error-hook contract from spec.md §6: when a
// recoverable parse error occurs, hook is called with its kind and
// message; a zero return suppresses the error, any other value becomes
// the process exit code under ParseOrExit.
func WithErrorHook(hook ErrorHook) ParseOption {
	return func(o *parseOptions) { o.errorHook = hook }
}

// ParseOrError runs the full seven-stage pipeline: it parses dslText into a
// Spec, intercepts --help/-h and the reserved completion tokens, then
// normalizes, indexes, and binds argv against the active declarations. It
// never calls os.Exit; ParseOrExit wraps it for that behavior.
func ParseOrError(dslText string, argv []string, opts ...ParseOption) (*Result, error) {
	po := &parseOptions{}
	for _, o := range opts {
		o(po)
	}

	spec, err := ParseSpec(dslText)
	if err != nil {
		return nil, err
	}

	if spec.Config.HelpEnabled && autoHelpAvailable(spec) && helpRequested(argv) {
		renderHelp(spec, argv)
		return nil, &helpInvokedError{long: true}
	}

	if spec.Config.CompletionEnabled && len(argv) > 0 && (argv[0] == "@tsvcomp" || argv[0] == "@nucomp") {
		out := runCompletion(spec, argv[0], argv[1:])
		stdoutWriter.Write([]byte(out))
		return nil, &completionInvokedError{output: out}
	}

	tokens := normalizeArgv(argv, spec)
	idx, err := buildIndex(tokens, spec)
	if err != nil {
		return dispatchError(po, err)
	}

	res, err := bindAndValidate(spec, idx, tokens)
	if err != nil {
		return dispatchError(po, err)
	}
	return res, nil
}

func dispatchError(po *parseOptions, err error) (*Result, error) {
	if po.errorHook != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			po.errorHook(pe.Kind, pe.Message)
		}
	}
	return nil, err
}

// ParseOrExit runs ParseOrError and terminates the process per spec.md §6's
// exit-code rules: 0 on a successful bind of a non-empty argv (or any argv
// when the DSL began with "#[always]"), 1 on an empty argv otherwise, and
// on error either the error hook's return value or 1.
func ParseOrExit(dslText string, argv []string, opts ...ParseOption) *Result {
	po := &parseOptions{}
	for _, o := range opts {
		o(po)
	}

	spec, specErr := ParseSpec(dslText)
	if specErr != nil {
		reportFatal(DefaultConfiguration(), specErr)
		osExit(1)
		return nil
	}

	res, err := ParseOrError(dslText, argv, opts...)
	if err != nil {
		if errors.Is(err, HelpInvokedErr) || errors.Is(err, CompletionInvokedErr) {
			osExit(0)
			return nil
		}

		exitCode := 1
		if po.errorHook != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				exitCode = po.errorHook(pe.Kind, pe.Message)
			}
		} else {
			reportFatal(spec.Config, err)
		}
		osExit(exitCode)
		return nil
	}

	if len(argv) == 0 && !spec.Always {
		osExit(1)
		return nil
	}

	osExit(0)
	return res
}

// reportFatal renders err to the configured stream, unless quiet_exit asks
// for silence — in which case the exit code still stands, per spec.md §7's
// propagation rule; only the text is suppressed.
func reportFatal(cfg Configuration, err error) {
	if cfg.QuietExit {
		return
	}
	writeTo(cfg, err.Error()+"\n")
}

func writeTo(cfg Configuration, s string) {
	if cfg.UseStderr {
		stderrWriter.Write([]byte(s))
		return
	}
	stdoutWriter.Write([]byte(s))
}

func helpRequested(argv []string) bool {
	for _, t := range argv {
		if t == "--" {
			return false
		}
		if t == "-h" || t == "--help" {
			return true
		}
	}
	return false
}

// autoHelpAvailable reports whether -h/--help is free for barg's own
// automatic help interception, i.e. no declaration anywhere already claims
// either pattern.
func autoHelpAvailable(spec *Spec) bool {
	for _, d := range spec.Declarations {
		if d.Kind == KindSwitch {
			for _, arm := range d.Arms {
				if arm.Pattern.Short == "h" || arm.Pattern.Long == "help" {
					return false
				}
			}
			continue
		}
		if d.Pattern.Short == "h" || d.Pattern.Long == "help" {
			return false
		}
	}
	return true
}
