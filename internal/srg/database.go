package srg

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Database is the immutable, cross-referenced mapping database. It is built
// in one batch by Import or Deserialize and is safe for concurrent reads.
type Database struct {
	classes      map[string]Class                   // srg name -> class
	byExternal   map[string]Class                   // reobf name -> class
	fields       map[int]Field                      // srg id -> field
	enumValues   map[Class][]EnumValue              // class -> enum values
	numbered     *Table[int, Class, NumberedMethod] // (srg id, class) -> method
	named        map[string][]NamedMethod           // deobf name -> methods
	constructors map[int]Constructor                // srg id -> constructor

	numberedParams    map[NumberedMethod][]MethodParameter
	namedParams       map[NamedMethod][]MethodParameter
	constructorParams map[Constructor][]MethodParameter
}

// tables holds the raw output of an import or deserialization before it is
// frozen into a Database.
type tables struct {
	classes      map[string]Class
	fields       map[int]Field
	enumValues   map[Class][]EnumValue
	numbered     *Table[int, Class, NumberedMethod]
	named        map[string][]NamedMethod
	constructors map[int]Constructor

	numberedParams    map[NumberedMethod][]MethodParameter
	namedParams       map[NamedMethod][]MethodParameter
	constructorParams map[Constructor][]MethodParameter
}

// freeze takes ownership of t and returns the immutable database.
// Parameter lists are sorted by slot index.
func (t *tables) freeze() *Database {
	sortParams(t.numberedParams)
	sortParams(t.namedParams)
	sortParams(t.constructorParams)
	return &Database{
		classes:           t.classes,
		byExternal:        indexByExternalName(t.classes),
		fields:            t.fields,
		enumValues:        t.enumValues,
		numbered:          t.numbered,
		named:             t.named,
		constructors:      t.constructors,
		numberedParams:    t.numberedParams,
		namedParams:       t.namedParams,
		constructorParams: t.constructorParams,
	}
}

func sortParams[M comparable](params map[M][]MethodParameter) {
	for _, list := range params {
		slices.SortStableFunc(list, func(a, b MethodParameter) int { return a.Index - b.Index })
	}
}

// LookupByID returns the entry with the given srg id. Fields take priority,
// then numbered methods, then constructors. When several classes carry a
// numbered method with the id, the one whose class name sorts first is
// returned.
func (db *Database) LookupByID(id int) (Entry, bool) {
	if f, ok := db.fields[id]; ok {
		return f, true
	}
	if db.numbered.ContainsRow(id) {
		methods := db.NumberedMethodsByID(id)
		return methods[0], true
	}
	if c, ok := db.constructors[id]; ok {
		return c, true
	}
	return nil, false
}

// ParametersFor returns the parameters of the method or constructor with
// the given id, ordered by slot index. Unknown ids and fields yield nil.
func (db *Database) ParametersFor(id int) []MethodParameter {
	entry, ok := db.LookupByID(id)
	if !ok {
		return nil
	}
	m, ok := entry.(Method)
	if !ok {
		return nil
	}
	return db.Parameters(m)
}

// Parameters returns the parameters of a method-like entry.
func (db *Database) Parameters(m Method) []MethodParameter {
	switch m := m.(type) {
	case NumberedMethod:
		return slices.Clone(db.numberedParams[m])
	case NamedMethod:
		return slices.Clone(db.namedParams[m])
	case Constructor:
		return slices.Clone(db.constructorParams[m])
	}
	return nil
}

// Class returns the class with the given canonical name.
func (db *Database) Class(name string) (Class, bool) {
	c, ok := db.classes[name]
	return c, ok
}

// ClassByExternalName returns the class with the given reobfuscated name.
func (db *Database) ClassByExternalName(name string) (Class, bool) {
	c, ok := db.byExternal[name]
	return c, ok
}

// Field returns the field with the given id.
func (db *Database) Field(id int) (Field, bool) {
	f, ok := db.fields[id]
	return f, ok
}

// Constructor returns the constructor with the given id.
func (db *Database) Constructor(id int) (Constructor, bool) {
	c, ok := db.constructors[id]
	return c, ok
}

// NumberedMethod returns the numbered method with the given id in class c.
func (db *Database) NumberedMethod(id int, c Class) (NumberedMethod, bool) {
	return db.numbered.Get(id, c)
}

// NumberedMethodsByID returns every class-scoped method carrying id, sorted
// by class name.
func (db *Database) NumberedMethodsByID(id int) []NumberedMethod {
	row := db.numbered.Row(id)
	out := make([]NumberedMethod, 0, len(row))
	for _, m := range row {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b NumberedMethod) int { return cmp.Compare(a.Owner.Name, b.Owner.Name) })
	return out
}

// NamedMethodsByName returns every named method called name.
func (db *Database) NamedMethodsByName(name string) []NamedMethod {
	return slices.Clone(db.named[name])
}

// EnumValuesOf returns the enum values declared by c in input order.
func (db *Database) EnumValuesOf(c Class) []EnumValue {
	return slices.Clone(db.enumValues[c])
}

// Classes returns all classes sorted by canonical name.
func (db *Database) Classes() []Class {
	out := make([]Class, 0, len(db.classes))
	for _, name := range sortedKeys(db.classes) {
		out = append(out, db.classes[name])
	}
	return out
}

// Fields returns all fields sorted by id.
func (db *Database) Fields() []Field {
	out := make([]Field, 0, len(db.fields))
	for _, id := range sortedKeys(db.fields) {
		out = append(out, db.fields[id])
	}
	return out
}

// EnumValues returns all enum values sorted by class then value name.
func (db *Database) EnumValues() []EnumValue {
	var out []EnumValue
	for _, values := range db.enumValues {
		out = append(out, values...)
	}
	slices.SortFunc(out, compareEnumValues)
	return out
}

// NumberedMethods returns all numbered methods sorted by id then class.
func (db *Database) NumberedMethods() []NumberedMethod {
	out := db.numbered.Values()
	slices.SortFunc(out, compareNumberedMethods)
	return out
}

// NamedMethods returns all named methods sorted by name, class and
// descriptor.
func (db *Database) NamedMethods() []NamedMethod {
	var out []NamedMethod
	for _, methods := range db.named {
		out = append(out, methods...)
	}
	slices.SortFunc(out, compareNamedMethods)
	return out
}

// Constructors returns all constructors sorted by id.
func (db *Database) Constructors() []Constructor {
	out := make([]Constructor, 0, len(db.constructors))
	for _, id := range sortedKeys(db.constructors) {
		out = append(out, db.constructors[id])
	}
	return out
}

// Statistics returns the entry counts of the database.
func (db *Database) Statistics() Statistics {
	s := Statistics{
		Classes:         len(db.classes),
		Fields:          len(db.fields),
		NumberedMethods: db.numbered.Len(),
		Constructors:    len(db.constructors),
	}
	for _, values := range db.enumValues {
		s.EnumValues += len(values)
	}
	for _, methods := range db.named {
		s.NamedMethods += len(methods)
	}
	for _, params := range db.numberedParams {
		s.NumberedMethodParameters += len(params)
	}
	for _, params := range db.namedParams {
		s.NamedMethodParameters += len(params)
	}
	for _, params := range db.constructorParams {
		s.ConstructorParameters += len(params)
	}
	return s
}

// Fingerprint returns an xxhash digest of the serialized database. Equal
// databases have equal fingerprints.
func (db *Database) Fingerprint() uint64 {
	d := xxhash.New()
	for _, line := range db.Serialize() {
		_, _ = d.WriteString(line)
		_, _ = d.WriteString("\n")
	}
	return d.Sum64()
}

// Comparison records, table by table, whether two databases agree.
type Comparison struct {
	Classes                  bool
	Fields                   bool
	EnumValues               bool
	NamedMethods             bool
	NumberedMethods          bool
	Constructors             bool
	NamedMethodParameters    bool
	NumberedMethodParameters bool
	ConstructorParameters    bool
}

// Compare compares a and b table by table. Object identity and insertion
// order are ignored.
func Compare(a, b *Database) Comparison {
	return Comparison{
		Classes:                  slices.Equal(a.Classes(), b.Classes()),
		Fields:                   slices.Equal(a.Fields(), b.Fields()),
		EnumValues:               slices.Equal(a.EnumValues(), b.EnumValues()),
		NamedMethods:             slices.Equal(a.NamedMethods(), b.NamedMethods()),
		NumberedMethods:          slices.Equal(a.NumberedMethods(), b.NumberedMethods()),
		Constructors:             slices.Equal(a.Constructors(), b.Constructors()),
		NamedMethodParameters:    equalParams(a.namedParams, b.namedParams),
		NumberedMethodParameters: equalParams(a.numberedParams, b.numberedParams),
		ConstructorParameters:    equalParams(a.constructorParams, b.constructorParams),
	}
}

// Equal reports whether every table matched.
func (c Comparison) Equal() bool {
	return c.Classes && c.Fields && c.EnumValues &&
		c.NamedMethods && c.NumberedMethods && c.Constructors &&
		c.NamedMethodParameters && c.NumberedMethodParameters && c.ConstructorParameters
}

// Print writes the per-table result.
func (c Comparison) Print(w io.Writer) {
	fmt.Fprintf(w, "    classes: %t\n", c.Classes)
	fmt.Fprintf(w, "    fields: %t, enum values: %t\n", c.Fields, c.EnumValues)
	fmt.Fprintf(w, "    named methods: %t, parameters: %t\n", c.NamedMethods, c.NamedMethodParameters)
	fmt.Fprintf(w, "    numbered methods: %t, parameters: %t\n", c.NumberedMethods, c.NumberedMethodParameters)
	fmt.Fprintf(w, "    constructors: %t, parameters: %t\n", c.Constructors, c.ConstructorParameters)
}

// Equal reports whether a and b hold the same content.
func Equal(a, b *Database) bool { return Compare(a, b).Equal() }

func equalParams[M comparable](a, b map[M][]MethodParameter) bool {
	if len(a) != len(b) {
		return false
	}
	for m, params := range a {
		if !slices.Equal(params, b[m]) {
			return false
		}
	}
	return true
}

// Statistics is a snapshot of entry counts.
type Statistics struct {
	Classes                  int
	Fields                   int
	EnumValues               int
	NumberedMethods          int
	NamedMethods             int
	Constructors             int
	NumberedMethodParameters int
	NamedMethodParameters    int
	ConstructorParameters    int
}

// Print writes the statistics in the summary layout used by the CLI.
func (s Statistics) Print(w io.Writer) {
	fmt.Fprintf(w, "Classes: %d\n", s.Classes)
	fmt.Fprintf(w, "Total fields: %d [ fields: %d, enum values: %d ]\n",
		s.Fields+s.EnumValues, s.Fields, s.EnumValues)
	fmt.Fprintf(w, "Total methods: %d [ numbered: %d, named: %d ]\n",
		s.NumberedMethods+s.NamedMethods, s.NumberedMethods, s.NamedMethods)
	fmt.Fprintf(w, "Total parameters: %d [ numbered: %d, named: %d ]\n",
		s.NumberedMethodParameters+s.NamedMethodParameters, s.NumberedMethodParameters, s.NamedMethodParameters)
	fmt.Fprintf(w, "Constructors: %d [ parameters count: %d ]\n", s.Constructors, s.ConstructorParameters)
}

func compareEnumValues(a, b EnumValue) int {
	return cmp.Or(
		cmp.Compare(a.Owner.Name, b.Owner.Name),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.ExternalName, b.ExternalName),
	)
}

func compareNumberedMethods(a, b NumberedMethod) int {
	return cmp.Or(
		cmp.Compare(a.ID, b.ID),
		cmp.Compare(a.Owner.Name, b.Owner.Name),
	)
}

func compareNamedMethods(a, b NamedMethod) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Owner.Name, b.Owner.Name),
		cmp.Compare(a.Descriptor, b.Descriptor),
		cmp.Compare(a.ExternalName, b.ExternalName),
	)
}
