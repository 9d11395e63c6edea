// Package srg imports TSRG class/field/method mappings into an immutable,
// cross-referenced database and reads and writes its text serialization.
package srg

import "fmt"

// Kind identifies the category of a mapping entry.
type Kind string

const (
	KindClass          Kind = "class"
	KindField          Kind = "field"
	KindEnumValue      Kind = "enum_value"
	KindNumberedMethod Kind = "numbered_method"
	KindNamedMethod    Kind = "named_method"
	KindConstructor    Kind = "constructor"
	KindParameter      Kind = "parameter"
)

// Entry is any record stored in a Database.
type Entry interface {
	Kind() Kind
}

// Class is the root namespace of the database. Every other entry refers to
// its owning Class by value, so equal input text yields equal entries.
type Class struct {
	Name         string // canonical (srg) name, unique key
	ExternalName string // reobfuscated name
}

func (Class) Kind() Kind { return KindClass }

func (c Class) String() string {
	return fmt.Sprintf("Class[srg=%s, reobf=%s]", c.Name, c.ExternalName)
}

// Field is a numbered field. IDs are unique database-wide.
type Field struct {
	ID           int
	Name         string
	ExternalName string
	Owner        Class
}

func (Field) Kind() Kind { return KindField }

func (f Field) String() string {
	return fmt.Sprintf("Field[id=%d, srg=%s, reobf=%s, class=%s]", f.ID, f.Name, f.ExternalName, f.Owner.Name)
}

// EnumValue has no numeric id; (Owner, Name) identifies it.
type EnumValue struct {
	Name         string
	ExternalName string
	Owner        Class
}

func (EnumValue) Kind() Kind { return KindEnumValue }

func (e EnumValue) String() string {
	return fmt.Sprintf("EnumValue[value=%s, reobf=%s, class=%s]", e.Name, e.ExternalName, e.Owner.Name)
}

// Signature is the shape shared by every method-like entry.
type Signature struct {
	Owner      Class
	Descriptor string
}

func (s Signature) signature() Signature { return s }

// Method is a method-like entry that can own parameters: NumberedMethod,
// NamedMethod or Constructor. The set of implementations is closed.
type Method interface {
	Entry
	signature() Signature
	// static reports whether the method has no implicit receiver slot.
	static() bool
	withDescriptor(desc string) Method
}

// NumberedMethod is a method carrying an srg id. The same id may appear in
// several classes, so (ID, Owner) is the real key.
type NumberedMethod struct {
	Signature
	ID           int
	Name         string
	ExternalName string
	Static       bool
}

func (NumberedMethod) Kind() Kind     { return KindNumberedMethod }
func (m NumberedMethod) static() bool { return m.Static }

func (m NumberedMethod) withDescriptor(desc string) Method {
	m.Descriptor = desc
	return m
}

func (m NumberedMethod) String() string {
	return fmt.Sprintf("NumberedMethod[id=%d, srg=%s, reobf=%s, class=%s, signature=%s, static=%t]",
		m.ID, m.Name, m.ExternalName, m.Owner.Name, m.Descriptor, m.Static)
}

// NamedMethod is a method with a human-assigned name. Names group
// overloads and same-named methods of different classes.
type NamedMethod struct {
	Signature
	Name         string
	ExternalName string
}

func (NamedMethod) Kind() Kind   { return KindNamedMethod }
func (NamedMethod) static() bool { return false }

func (m NamedMethod) withDescriptor(desc string) Method {
	m.Descriptor = desc
	return m
}

func (m NamedMethod) String() string {
	return fmt.Sprintf("NamedMethod[deobf=%s, reobf=%s, class=%s, signature=%s]",
		m.Name, m.ExternalName, m.Owner.Name, m.Descriptor)
}

// Constructor is always an instance initializer. IDs are unique
// database-wide in their own numeric space.
type Constructor struct {
	Signature
	ID int
}

func (Constructor) Kind() Kind   { return KindConstructor }
func (Constructor) static() bool { return false }

func (c Constructor) withDescriptor(desc string) Method {
	c.Descriptor = desc
	return c
}

func (c Constructor) String() string {
	return fmt.Sprintf("Constructor[id=%d, class=%s, signature=%s]", c.ID, c.Owner.Name, c.Descriptor)
}

// MethodParameter has no identity of its own: (Parent, Index) defines it.
type MethodParameter struct {
	Parent Method
	Index  int
}

func (MethodParameter) Kind() Kind { return KindParameter }

// OwnerOf returns the owning class of a method-like entry.
func OwnerOf(m Method) Class { return m.signature().Owner }

// DescriptorOf returns the descriptor of a method-like entry.
func DescriptorOf(m Method) string { return m.signature().Descriptor }
