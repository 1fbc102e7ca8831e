package model

// PropertyCategory identifies how a property value is interpreted and
// rendered.
type PropertyCategory string

const (
	CategoryString   PropertyCategory = "string"
	CategoryMarkdown PropertyCategory = "markdown"
	CategoryDate     PropertyCategory = "date"
	CategoryFloat    PropertyCategory = "float"
	CategoryBoolean  PropertyCategory = "boolean"
	CategoryEnum     PropertyCategory = "enum"
	CategoryFile     PropertyCategory = "file"
	CategoryURL      PropertyCategory = "url"
	CategoryTrace    PropertyCategory = "trace"
)

// NameProperty is the conventional property holding an object's display
// name.
const NameProperty = ":Proteus-name"

// Placeholder is the sentinel value meaning "intentionally left
// undetermined". Comparison is case-sensitive.
const Placeholder = "tbd"

// Trace is a directed reference from a property to another object,
// optionally tagged with a trace type.
type Trace struct {
	Target string // target object ID
	Type   string // optional trace-type tag, e.g. "authors", "sources"
}

// Property is a named, typed value attached to an object. Scalar
// categories use Value; trace properties use Traces.
type Property struct {
	Name     string
	Category PropertyCategory
	Value    string
	Traces   []Trace
	Tooltip  string
}

// IsEmpty reports whether the property carries no renderable content.
// The placeholder token counts as empty for suppression purposes.
func (p Property) IsEmpty() bool {
	if p.Category == CategoryTrace {
		return len(p.Traces) == 0
	}
	return p.Value == "" || p.Value == Placeholder
}

// Object is a node in the document tree: class tags ordered from most
// general to most specific, named properties in declaration order, and
// child objects in document order.
type Object struct {
	ID         string
	Classes    []string
	Properties []Property
	Children   []*Object
}

// Class returns the most specific class tag, or "" for an untagged
// object.
func (o *Object) Class() string {
	if len(o.Classes) == 0 {
		return ""
	}
	return o.Classes[len(o.Classes)-1]
}

// HasClass reports whether tag appears anywhere in the class list.
func (o *Object) HasClass(tag string) bool {
	for _, c := range o.Classes {
		if c == tag {
			return true
		}
	}
	return false
}

// Property returns the named property and whether it exists.
func (o *Object) Property(name string) (Property, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyValue returns the scalar value of the named property, or ""
// if absent.
func (o *Object) PropertyValue(name string) string {
	p, ok := o.Property(name)
	if !ok {
		return ""
	}
	return p.Value
}

// Name returns the display name: the name property if present and
// non-empty, otherwise the object ID.
func (o *Object) Name() string {
	if v := o.PropertyValue(NameProperty); v != "" {
		return v
	}
	return o.ID
}
