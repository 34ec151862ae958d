package barg

// Scope identifies when a Declaration applies.
type Scope int

const (
	// ScopeGlobalAlways applies regardless of which subcommand (if any) is selected.
	// Encoded in the DSL by the absence of a scope prefix.
	ScopeGlobalAlways Scope = iota
	// ScopeGlobalOnly applies only when no subcommand is selected. Encoded as "@".
	ScopeGlobalOnly
	// ScopeSubcommand applies only when the named subcommand is selected. Encoded as "@name".
	ScopeSubcommand
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobalOnly:
		return "global-only"
	case ScopeSubcommand:
		return "subcommand"
	default:
		return "global-always"
	}
}

// Kind is the tagged variant of a Declaration's shape.
type Kind int

const (
	KindFlag Kind = iota
	KindScalar
	KindVector
	KindEnum
	KindSwitch
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindEnum:
		return "enum"
	case KindSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// ValueType is the scalar/vector element type.
type ValueType int

const (
	TypeStr ValueType = iota
	TypeInt
	TypeFloat
	TypeNum
)

func (t ValueType) String() string {
	switch t {
	case TypeStr:
		return "str"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeNum:
		return "num"
	default:
		return "str"
	}
}

// Pattern is how an option is matched in argv: a short char, a long name, or both.
type Pattern struct {
	Short string // single character, empty if none
	Long  string // empty if none (switch arms always carry Long; top-level options require it)
}

func (p Pattern) HasShort() bool { return p.Short != "" }
func (p Pattern) HasLong() bool  { return p.Long != "" }

// SwitchArm is one mutually exclusive option of a Switch declaration.
type SwitchArm struct {
	Pattern Pattern
	Value   string // the literal string bound when this arm is selected
	Help    string
}

// Literal is a DSL literal value: exactly one of the pointers is non-nil.
type Literal struct {
	Str   *string
	Int   *int64
	Float *float64
	Bool  *bool
}

func stringLiteral(s string) *Literal  { return &Literal{Str: &s} }
func intLiteral(i int64) *Literal      { return &Literal{Int: &i} }
func floatLiteral(f float64) *Literal  { return &Literal{Float: &f} }
func boolLiteral(b bool) *Literal      { return &Literal{Bool: &b} }

// AsString renders a Literal as the string it would bind to a str-typed field.
func (l *Literal) AsString() string {
	if l == nil {
		return ""
	}
	switch {
	case l.Str != nil:
		return *l.Str
	case l.Int != nil:
		return formatInt(*l.Int)
	case l.Float != nil:
		return formatFloat(*l.Float)
	case l.Bool != nil:
		return formatBool(*l.Bool)
	}
	return ""
}

// Declaration is the normalized form of one DSL option declaration.
type Declaration struct {
	Scope          Scope
	SubcommandName string // set when Scope == ScopeSubcommand

	Required bool

	Kind      Kind
	ValueType ValueType // meaningful for KindScalar / KindVector

	FlagDefault bool // the Flag kind's declared default (presence flips this)

	Choices []string // KindEnum: ordered, non-empty; first is the implicit default

	Arms []SwitchArm // KindSwitch, in declaration order
	SwitchName string // optional user-visible type name shown in usage for a switch

	Pattern Pattern // meaningless for KindSwitch (lives per-arm instead)

	Default *Literal // explicit DSL default, nil if none given

	Binding     string
	Description string

	line int // 1-indexed source line, used in validateSpec's error messages
}

// scopeApplies reports whether the Declaration is active given the selected subcommand name
// (empty string meaning no subcommand was selected).
func (d *Declaration) scopeApplies(activeSubcommand string) bool {
	switch d.Scope {
	case ScopeGlobalAlways:
		return true
	case ScopeGlobalOnly:
		return activeSubcommand == ""
	case ScopeSubcommand:
		return d.SubcommandName == activeSubcommand
	}
	return false
}

// Subcommand is one entry of the DSL's commands{} block.
type Subcommand struct {
	Name        string
	Description string
	NeedsSpare  bool
}

// Configuration is the resolved form of the DSL's meta{} block.
type Configuration struct {
	ProgramName        string
	Summary            string
	ColorPalette       string
	OnErrorHook        string
	EpilogSource       string
	SpareArgsBinding   string
	SpareArgsRequired  bool
	SubcommandRequired bool
	AllowEmptyValues   bool
	ShowDefaults       bool
	HelpEnabled        bool
	CompletionEnabled  bool
	QuietExit          bool
	UseStderr          bool
}

// DefaultConfiguration returns a Configuration with every key at its documented default.
func DefaultConfiguration() Configuration {
	return Configuration{
		SpareArgsBinding:  "BARG_SPARE_ARGS",
		CompletionEnabled: true,
		UseStderr:         true,
	}
}

// Spec is the complete output of the Definition Parser: configuration,
// subcommands, and declarations, ready for the Bind engine or the
// help/completion generators.
type Spec struct {
	Always       bool // true when the DSL began with the "#[always]" directive
	Config       Configuration
	Subcommands  []*Subcommand // in DSL declaration order
	Declarations []*Declaration
}

func (s *Spec) subcommandByName(name string) *Subcommand {
	for _, sc := range s.Subcommands {
		if sc.Name == name {
			return sc
		}
	}
	return nil
}

// declarationsForScope returns the declarations active for the given subcommand selection
// (empty string = no subcommand), in declaration order.
func (s *Spec) declarationsForScope(activeSubcommand string) []*Declaration {
	var out []*Declaration
	for _, d := range s.Declarations {
		if d.scopeApplies(activeSubcommand) {
			out = append(out, d)
		}
	}
	return out
}
