package schema

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// headline maps a failure kind to the phrase of the report's first
// line, rendered as `error: <phrase> '<subject>'`. The mapping is a
// closed match: the taxonomy is fixed by the engine's own kinds.
func headline(errorKind jsonschema.ErrorKind) string {
	switch k := errorKind.(type) {
	case *kind.Type:
		return "invalid type for"
	case *kind.Required:
		return "missing required property in"
	case *kind.Enum, *kind.Const:
		return "invalid value for"
	case *kind.Pattern, *kind.Format:
		return "malformed value for"
	case *kind.Minimum, *kind.Maximum, *kind.ExclusiveMinimum, *kind.ExclusiveMaximum, *kind.MultipleOf:
		return "value out of range for"
	case *kind.MinLength, *kind.MaxLength:
		return "invalid length for"
	case *kind.MinItems, *kind.MaxItems, *kind.MinProperties, *kind.MaxProperties:
		return "invalid size for"
	case *kind.UniqueItems:
		return "duplicate items in"
	case *kind.AdditionalProperties:
		return "unknown properties in"
	case *kind.AdditionalItems:
		return "unexpected items in"
	case *kind.AnyOf:
		return "no matching variant for"
	case *kind.OneOf:
		if k.Subschemas == nil {
			return "no matching variant for"
		}
		return "ambiguous value for"
	case *kind.Not, *kind.FalseSchema:
		return "disallowed value for"
	case *kind.ContentEncoding, *kind.ContentMediaType:
		return "malformed content in"
	case *kind.RefCycle:
		return "unresolvable schema for"
	default:
		return "invalid value for"
	}
}

// message maps a failure kind to the sentence printed after the
// underline carets. Every kind has exactly one deterministic template.
func message(errorKind jsonschema.ErrorKind) string {
	switch k := errorKind.(type) {
	case *kind.Type:
		return fmt.Sprintf("this is not a/an `%s`", strings.Join(k.Want, " or "))
	case *kind.Required:
		if len(k.Missing) == 1 {
			return fmt.Sprintf("this is missing required property `%s`", k.Missing[0])
		}
		return fmt.Sprintf("this is missing required properties [%s]", strings.Join(k.Missing, ", "))
	case *kind.Enum:
		options := make([]string, 0, len(k.Want))
		for _, want := range k.Want {
			options = append(options, jsonText(want))
		}
		return fmt.Sprintf("expected one of `%s`", strings.Join(options, ", "))
	case *kind.Const:
		return fmt.Sprintf("expected `%s`", jsonText(k.Want))
	case *kind.Pattern:
		return "this does not match the expected pattern"
	case *kind.Format:
		return fmt.Sprintf("this is not a valid `%s`", k.Want)
	case *kind.Minimum:
		return fmt.Sprintf("this must be at least %s", formatRat(k.Want))
	case *kind.Maximum:
		return fmt.Sprintf("this must be less than or equal to %s", formatRat(k.Want))
	case *kind.ExclusiveMinimum:
		return fmt.Sprintf("this must be greater than %s", formatRat(k.Want))
	case *kind.ExclusiveMaximum:
		return fmt.Sprintf("this must be less than %s", formatRat(k.Want))
	case *kind.MultipleOf:
		return fmt.Sprintf("this must be a multiple of %s", formatRat(k.Want))
	case *kind.MinLength:
		return fmt.Sprintf("this must have at least %d characters", k.Want)
	case *kind.MaxLength:
		return fmt.Sprintf("this must have less than or equal to %d characters", k.Want)
	case *kind.MinItems:
		return fmt.Sprintf("this must have at least %d items", k.Want)
	case *kind.MaxItems:
		return fmt.Sprintf("this must have less than or equal to %d items", k.Want)
	case *kind.MinProperties:
		return fmt.Sprintf("this must have at least %d properties", k.Want)
	case *kind.MaxProperties:
		return fmt.Sprintf("this must have less than or equal to %d properties", k.Want)
	case *kind.UniqueItems:
		return "this contains duplicate items"
	case *kind.AdditionalProperties:
		return fmt.Sprintf("this contains unknown properties [%s]", strings.Join(k.Properties, ", "))
	case *kind.AdditionalItems:
		return "this contains additional items"
	case *kind.ContentEncoding:
		return fmt.Sprintf("this is not encoded as `%s`", k.Want)
	case *kind.ContentMediaType:
		return fmt.Sprintf("this is not the media type `%s`", k.Want)
	case *kind.AnyOf:
		return "this is not a valid instance of any of the allowed types"
	case *kind.OneOf:
		if k.Subschemas == nil {
			return "this is not valid for any variant"
		}
		return "this is valid for multiple variants"
	case *kind.Not:
		return "this matches a disallowed schema"
	case *kind.FalseSchema:
		return "this is not valid here"
	case *kind.RefCycle:
		return "this could not be resolved"
	default:
		return "this could not be validated"
	}
}

// jsonText renders a value the way it would appear in source.
func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// formatRat renders a numeric limit without rational noise: integers
// stay integers, everything else is a trimmed decimal.
func formatRat(r *big.Rat) string {
	if r == nil {
		return "?"
	}
	if r.IsInt() {
		return r.Num().String()
	}
	s := r.FloatString(6)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
