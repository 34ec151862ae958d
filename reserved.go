package barg

// reservedBindingNames is the fixed set of identifiers a Declaration's
// binding may not use. The shell-rewrite source (klapptnot/barg.sh) needed
// this to protect shell-global names like IFS/PATH from being clobbered by
// `=>`-bound output variables; in this library rewrite nothing actually
// shares a namespace with these names, but the check is kept as the
// portability courtesy spec.md §9 calls for, plus barg's own reserved
// output names so a DSL author can't shadow them.
var reservedBindingNames = map[string]bool{
	"PATH": true, "IFS": true, "HOME": true, "UID": true, "PWD": true,
	"SHELL": true, "USER": true, "OLDPWD": true, "PPID": true,
	"RANDOM": true, "SECONDS": true, "BASH": true, "BASHPID": true,
	"BASH_VERSION": true, "LINENO": true,

	// barg's own always-produced output names (spec.md §6). The spare-args
	// binding is configurable via meta.spare_args_binding, but the default
	// name is reserved too so a DSL author can't collide with it by accident
	// before overriding it.
	"BARG_SUBCOMMAND":  true,
	"BARG_ARGV_TABLE":  true,
	"BARG_SPARE_ARGS":  true,
}

func isReservedBinding(name string) bool {
	return reservedBindingNames[name]
}
