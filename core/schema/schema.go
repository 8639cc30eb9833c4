// Package schema defines the declarative option model expansion plugins
// use to describe their configuration shape. The host consumes these
// entries to validate configuration documents and to render authoring UIs.
package schema

// Entry is the root schema declaration contributed by one plugin.
type Entry struct {
	// BaseType groups plugins by feature family (e.g. "expansion").
	BaseType string `json:"basetype" yaml:"basetype"`

	// SubType is the discriminator matched against an entry's "type" field.
	SubType string `json:"subtype" yaml:"subtype"`

	// Comment is a human-readable description for authoring tools.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Options declares the recognized configuration fields.
	Options map[string]Option `json:"options" yaml:"options"`
}

// Option declares one configuration field, possibly nested.
type Option struct {
	// Type is the option type. See OptionType constants.
	Type OptionType `json:"type" yaml:"type"`

	// Name is a short display name for authoring tools.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Comment describes the option's meaning and units.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Default is the value assumed when the option is omitted.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Required marks options that must be present in a valid document.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Options holds the nested fields of dict-typed options.
	Options map[string]Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// OptionType represents the type of a schema option.
type OptionType string

const (
	// Primitive types
	OptionTypeInt  OptionType = "int"
	OptionTypeBool OptionType = "bool"
	OptionTypeDict OptionType = "dict"

	// Pin-role types: the value is a physical pin identifier, and the
	// type carries the electrical direction of the pin.
	OptionTypeInputPin  OptionType = "input"
	OptionTypeOutputPin OptionType = "output"
)

// IsPin returns whether the option names a physical pin.
func (o Option) IsPin() bool {
	return o.Type == OptionTypeInputPin || o.Type == OptionTypeOutputPin
}
