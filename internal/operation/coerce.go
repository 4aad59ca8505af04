package operation

import (
	"fmt"
	"strconv"
)

// Coercer converts a raw parameter string into its declared type.
type Coercer func(raw string) (any, error)

var coercers = map[ParamType]Coercer{
	TypeNumber:  coerceNumber,
	TypeString:  coerceString,
	TypeBoolean: coerceBoolean,
}

func coerceNumber(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

func coerceString(raw string) (any, error) {
	return raw, nil
}

func coerceBoolean(raw string) (any, error) {
	return strconv.ParseBool(raw)
}

// Coerce parses raw according to typ.
func Coerce(typ ParamType, raw string) (any, error) {
	c, ok := coercers[typ]
	if !ok {
		return nil, fmt.Errorf("unsupported parameter type %q", typ)
	}
	return c(raw)
}

// Params holds parameter values after coercion. Accessors return the zero
// value for names the operation did not declare.
type Params struct {
	values map[string]any
}

// NewParams wraps already-typed values. It is intended for tests and for
// handlers invoked outside a Registry.
func NewParams(values map[string]any) Params {
	return Params{values: values}
}

// Int returns a number parameter.
func (p Params) Int(name string) int {
	v, _ := p.values[name].(int)
	return v
}

// String returns a string parameter.
func (p Params) String(name string) string {
	v, _ := p.values[name].(string)
	return v
}

// Bool returns a boolean parameter.
func (p Params) Bool(name string) bool {
	v, _ := p.values[name].(bool)
	return v
}

// Has reports whether name resolved to a value.
func (p Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Fallback records a supplied parameter that failed to coerce and was
// replaced by its default.
type Fallback struct {
	Parameter string
	Raw       string
	Cause     error
}

// resolveParams applies the coercion policy to every declared parameter:
//   - present and coercible: the coerced value
//   - present but not coercible: the default (reported as a Fallback), or an
//     invalid_parameter error when the parameter is required and has none
//   - absent: the default, or a missing_parameter error when required
//
// Keys in raw that are not declared are ignored.
func resolveParams(operation string, specs []ParameterDescriptor, raw map[string]string) (Params, []Fallback, error) {
	values := make(map[string]any, len(specs))
	var fallbacks []Fallback

	for _, spec := range specs {
		if s, ok := raw[spec.Name]; ok {
			v, err := Coerce(spec.Type, s)
			if err == nil {
				values[spec.Name] = v
				continue
			}
			if spec.Required && spec.DefaultValue == nil {
				return Params{}, nil, NewInvalidParameterError(operation, spec.Name, err)
			}
			fallbacks = append(fallbacks, Fallback{Parameter: spec.Name, Raw: s, Cause: err})
		} else if spec.Required {
			return Params{}, nil, NewMissingParameterError(operation, spec.Name)
		}

		if spec.DefaultValue != nil {
			// Defaults are checked in NewRegistry, so this cannot fail.
			v, _ := Coerce(spec.Type, *spec.DefaultValue)
			values[spec.Name] = v
		}
	}

	return Params{values: values}, fallbacks, nil
}
