package operation

// Category groups operations for display. It has no effect on dispatch.
type Category string

const (
	CategoryEncoding Category = "Encoding"
	CategoryHashing  Category = "Hashing"
	CategoryText     Category = "Text"
	CategoryCrypto   Category = "Crypto"
	CategoryData     Category = "Data"
)

// ParamType is the declared type of an operation parameter.
type ParamType string

const (
	// TypeNumber is a signed 32-bit decimal integer ("+5", "-3", "13").
	TypeNumber ParamType = "number"
	// TypeString is passed through unchanged.
	TypeString ParamType = "string"
	// TypeBoolean accepts the forms understood by strconv.ParseBool.
	TypeBoolean ParamType = "boolean"
)

// ParameterDescriptor declares one entry of an operation's parameter map.
type ParameterDescriptor struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"param_type"`
	Description string    `json:"description"`
	Required    bool      `json:"required"`

	// DefaultValue is the string-encoded fallback used when the parameter
	// is absent or fails to coerce. Nil means no default.
	DefaultValue *string `json:"default_value,omitempty"`
}

// Descriptor is the discovery metadata for one operation.
type Descriptor struct {
	Name        string                `json:"name"`
	Category    Category              `json:"category"`
	Description string                `json:"description"`
	Parameters  []ParameterDescriptor `json:"parameters"`
}

// clone returns a deep copy so callers of List cannot reach registry state.
func (d Descriptor) clone() Descriptor {
	params := make([]ParameterDescriptor, len(d.Parameters))
	for i, p := range d.Parameters {
		if p.DefaultValue != nil {
			v := *p.DefaultValue
			p.DefaultValue = &v
		}
		params[i] = p
	}
	d.Parameters = params
	return d
}

// Default returns a pointer to v, for use in ParameterDescriptor literals.
func Default(v string) *string {
	return &v
}
