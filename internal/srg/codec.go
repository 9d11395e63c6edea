package srg

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// section is one START/END delimited block of the serialized database.
type section string

const (
	classSection            section = "Class"
	fieldSection            section = "Field"
	enumSection             section = "Enum"
	namedMethodSection      section = "NamedMethod"
	numberedMethodSection   section = "NumberedMethod"
	constructorSection      section = "Constructor"
	namedParamSection       section = "Parameter: NamedMethod"
	numberedParamSection    section = "Parameter: NumberedMethod"
	constructorParamSection section = "Parameter: Constructor"
)

func (s section) start() string { return "{ [START] " + string(s) + " }" }
func (s section) end() string   { return "{ [END] " + string(s) + " }" }

// lineFormat pairs the writer template of a line kind with its reader.
type lineFormat struct {
	format  string
	pattern *regexp.Regexp
}

func (f lineFormat) line(args ...any) string { return fmt.Sprintf(f.format, args...) }

var (
	classLine = lineFormat{
		"class reobf:%s srg:%s",
		regexp.MustCompile(`^class reobf:(?P<reobf>.+?) srg:(?P<srg>.+)$`),
	}
	fieldLine = lineFormat{
		"field id:%d reobf:%s srg:%s class:%s",
		regexp.MustCompile(`^field id:(?P<id>\d+) reobf:(?P<reobf>.+?) srg:(?P<srg>.+?) class:(?P<class>.+)$`),
	}
	enumLine = lineFormat{
		"enum reobf:%s value:%s class:%s",
		regexp.MustCompile(`^enum reobf:(?P<reobf>.+?) value:(?P<value>.+?) class:(?P<class>.+)$`),
	}
	namedMethodLine = lineFormat{
		"method reobf:%s deobf:%s class:%s signature:%s",
		regexp.MustCompile(`^method reobf:(?P<reobf>.+?) deobf:(?P<deobf>.+?) class:(?P<class>.+?) signature:(?P<signature>.*)$`),
	}
	numberedMethodLine = lineFormat{
		"method id:%d reobf:%s srg:%s class:%s signature:%s static:%t",
		regexp.MustCompile(`^method id:(?P<id>\d+) reobf:(?P<reobf>.+?) srg:(?P<srg>.+?) class:(?P<class>.+?) signature:(?P<signature>.+) static:(?P<static>true|false)$`),
	}
	constructorLine = lineFormat{
		"constructor id:%d class:%s signature:%s",
		regexp.MustCompile(`^constructor id:(?P<id>\d+) class:(?P<class>.+?) signature:(?P<signature>.+)$`),
	}
	namedParamLine = lineFormat{
		"parameter class:%s method_name:%s method_signature:%s index:%d",
		regexp.MustCompile(`^parameter class:(?P<class>.+?) method_name:(?P<name>.+?) method_signature:(?P<signature>.*?) index:(?P<index>\d+)$`),
	}
	// The class key is optional on read; without it the id resolves to the
	// first class carrying it.
	numberedParamLine = lineFormat{
		"parameter method_id:%d class:%s index:%d",
		regexp.MustCompile(`^parameter method_id:(?P<id>\d+)(?: class:(?P<class>.+?))? index:(?P<index>\d+)$`),
	}
	constructorParamLine = lineFormat{
		"parameter constructor_id:%d index:%d",
		regexp.MustCompile(`^parameter constructor_id:(?P<id>\d+) index:(?P<index>\d+)$`),
	}
)

// Serialize writes the database as nine marker-delimited sections in a
// fixed order. Lines within a section are sorted, so equal databases
// serialize identically.
func (db *Database) Serialize() []string {
	s := db.Statistics()
	out := make([]string, 0, s.Classes+s.Fields+s.EnumValues+s.NamedMethods+s.NumberedMethods+s.Constructors+
		s.NamedMethodParameters+s.NumberedMethodParameters+s.ConstructorParameters+18)

	out = append(out, classSection.start())
	for _, c := range db.Classes() {
		out = append(out, classLine.line(c.ExternalName, c.Name))
	}
	out = append(out, classSection.end())

	out = append(out, fieldSection.start())
	for _, f := range db.Fields() {
		out = append(out, fieldLine.line(f.ID, f.ExternalName, f.Name, f.Owner.Name))
	}
	out = append(out, fieldSection.end())

	out = append(out, enumSection.start())
	for _, e := range db.EnumValues() {
		out = append(out, enumLine.line(e.ExternalName, e.Name, e.Owner.Name))
	}
	out = append(out, enumSection.end())

	out = append(out, namedMethodSection.start())
	for _, m := range db.NamedMethods() {
		out = append(out, namedMethodLine.line(m.ExternalName, m.Name, m.Owner.Name, m.Descriptor))
	}
	out = append(out, namedMethodSection.end())

	out = append(out, numberedMethodSection.start())
	for _, m := range db.NumberedMethods() {
		out = append(out, numberedMethodLine.line(m.ID, m.ExternalName, m.Name, m.Owner.Name, m.Descriptor, m.Static))
	}
	out = append(out, numberedMethodSection.end())

	out = append(out, constructorSection.start())
	for _, c := range db.Constructors() {
		out = append(out, constructorLine.line(c.ID, c.Owner.Name, c.Descriptor))
	}
	out = append(out, constructorSection.end())

	out = append(out, namedParamSection.start())
	for _, m := range sortedParents(db.namedParams, compareNamedMethods) {
		for _, p := range db.namedParams[m] {
			out = append(out, namedParamLine.line(m.Owner.Name, m.Name, m.Descriptor, p.Index))
		}
	}
	out = append(out, namedParamSection.end())

	out = append(out, numberedParamSection.start())
	for _, m := range sortedParents(db.numberedParams, compareNumberedMethods) {
		for _, p := range db.numberedParams[m] {
			out = append(out, numberedParamLine.line(m.ID, m.Owner.Name, p.Index))
		}
	}
	out = append(out, numberedParamSection.end())

	out = append(out, constructorParamSection.start())
	for _, c := range sortedParents(db.constructorParams, func(a, b Constructor) int { return a.ID - b.ID }) {
		for _, p := range db.constructorParams[c] {
			out = append(out, constructorParamLine.line(c.ID, p.Index))
		}
	}
	out = append(out, constructorParamSection.end())

	return out
}

func sortedParents[M comparable](params map[M][]MethodParameter, compare func(a, b M) int) []M {
	out := make([]M, 0, len(params))
	for m := range params {
		out = append(out, m)
	}
	slices.SortFunc(out, compare)
	return out
}

// Deserialize rebuilds a database from the output of Serialize. Sections are
// located by their markers, so their order in lines does not matter; a
// missing section is read as empty. Lines that do not match their
// section's template are skipped and counted. Any reference to a class,
// method or constructor that the file does not define is fatal and returns
// ErrDanglingReference.
func Deserialize(lines []string, opts ...Option) (*Database, *Report, error) {
	o := newOptions(opts)
	diags := &diagnostics{logger: o.logger, verbose: o.verbose}
	r := &codecReader{lines: lines, diags: diags}
	start := time.Now()

	t := &tables{}
	var err error
	if t.classes, err = r.classes(); err != nil {
		return nil, nil, err
	}

	var entities errgroup.Group
	entities.Go(func() (err error) {
		t.fields, err = r.fields(t.classes)
		return err
	})
	entities.Go(func() (err error) {
		t.enumValues, err = r.enumValues(t.classes)
		return err
	})
	entities.Go(func() (err error) {
		t.named, err = r.namedMethods(t.classes)
		return err
	})
	entities.Go(func() (err error) {
		t.numbered, err = r.numberedMethods(t.classes)
		return err
	})
	entities.Go(func() (err error) {
		t.constructors, err = r.constructors(t.classes)
		return err
	})
	if err := entities.Wait(); err != nil {
		return nil, nil, err
	}

	var params errgroup.Group
	params.Go(func() (err error) {
		t.namedParams, err = r.namedParams(t.classes, t.named)
		return err
	})
	params.Go(func() (err error) {
		t.numberedParams, err = r.numberedParams(t.classes, t.numbered)
		return err
	})
	params.Go(func() (err error) {
		t.constructorParams, err = r.constructorParams(t.constructors)
		return err
	})
	if err := params.Wait(); err != nil {
		return nil, nil, err
	}

	db := t.freeze()
	report := &Report{
		Constructors: len(t.constructors),
		Statistics:   db.Statistics(),
		Diagnostics:  diags.sorted(),
	}
	o.logger.Printf("Deserialized database in %s", time.Since(start))
	return db, report, nil
}

// codecReader parses the sections of one serialized database.
type codecReader struct {
	lines []string
	diags *diagnostics
}

// section returns the lines between the markers of s, with their 1-indexed
// line numbers. A missing end marker extends the section to the end of
// input.
func (r *codecReader) section(s section) ([]string, int) {
	start := slices.Index(r.lines, s.start())
	if start < 0 {
		return nil, 0
	}
	body := r.lines[start+1:]
	if end := slices.Index(body, s.end()); end >= 0 {
		body = body[:end]
	}
	return body, start + 2
}

// each calls fn with the named groups of every line of s that matches f.
func (r *codecReader) each(s section, f lineFormat, fn func(groups map[string]string) error) error {
	body, first := r.section(s)
	for i, line := range body {
		groups, ok := submatch(f.pattern, line)
		if !ok {
			r.diags.add(Diagnostic{Pass: PassCodec, Line: first + i, Text: line, Reason: fmt.Sprintf("does not match %s line", s)})
			continue
		}
		if err := fn(groups); err != nil {
			return fmt.Errorf("L%d: %w", first+i, err)
		}
	}
	return nil
}

func (r *codecReader) classes() (map[string]Class, error) {
	classes := make(map[string]Class)
	err := r.each(classSection, classLine, func(g map[string]string) error {
		classes[g["srg"]] = Class{Name: g["srg"], ExternalName: g["reobf"]}
		return nil
	})
	return classes, err
}

func (r *codecReader) fields(classes map[string]Class) (map[int]Field, error) {
	fields := make(map[int]Field)
	err := r.each(fieldSection, fieldLine, func(g map[string]string) error {
		owner, err := ownerOf(classes, g["class"])
		if err != nil {
			return err
		}
		id, err := parseID(g["id"])
		if err != nil {
			return err
		}
		fields[id] = Field{ID: id, Name: g["srg"], ExternalName: g["reobf"], Owner: owner}
		return nil
	})
	return fields, err
}

func (r *codecReader) enumValues(classes map[string]Class) (map[Class][]EnumValue, error) {
	values := make(map[Class][]EnumValue)
	err := r.each(enumSection, enumLine, func(g map[string]string) error {
		owner, err := ownerOf(classes, g["class"])
		if err != nil {
			return err
		}
		values[owner] = append(values[owner], EnumValue{Name: g["value"], ExternalName: g["reobf"], Owner: owner})
		return nil
	})
	return values, err
}

func (r *codecReader) namedMethods(classes map[string]Class) (map[string][]NamedMethod, error) {
	named := make(map[string][]NamedMethod)
	err := r.each(namedMethodSection, namedMethodLine, func(g map[string]string) error {
		owner, err := ownerOf(classes, g["class"])
		if err != nil {
			return err
		}
		name := g["deobf"]
		named[name] = append(named[name], NamedMethod{
			Signature:    Signature{Owner: owner, Descriptor: g["signature"]},
			Name:         name,
			ExternalName: g["reobf"],
		})
		return nil
	})
	return named, err
}

func (r *codecReader) numberedMethods(classes map[string]Class) (*Table[int, Class, NumberedMethod], error) {
	numbered := NewTable[int, Class, NumberedMethod]()
	err := r.each(numberedMethodSection, numberedMethodLine, func(g map[string]string) error {
		owner, err := ownerOf(classes, g["class"])
		if err != nil {
			return err
		}
		id, err := parseID(g["id"])
		if err != nil {
			return err
		}
		numbered.Put(id, owner, NumberedMethod{
			Signature:    Signature{Owner: owner, Descriptor: g["signature"]},
			ID:           id,
			Name:         g["srg"],
			ExternalName: g["reobf"],
			Static:       g["static"] == "true",
		})
		return nil
	})
	return numbered, err
}

func (r *codecReader) constructors(classes map[string]Class) (map[int]Constructor, error) {
	constructors := make(map[int]Constructor)
	err := r.each(constructorSection, constructorLine, func(g map[string]string) error {
		owner, err := ownerOf(classes, g["class"])
		if err != nil {
			return err
		}
		id, err := parseID(g["id"])
		if err != nil {
			return err
		}
		constructors[id] = Constructor{Signature: Signature{Owner: owner, Descriptor: g["signature"]}, ID: id}
		return nil
	})
	return constructors, err
}

// namedParams resolves each line's (class, name, descriptor) key to the one
// named method it describes. Several methods share a name, so both class
// and descriptor must match.
func (r *codecReader) namedParams(classes map[string]Class, named map[string][]NamedMethod) (map[NamedMethod][]MethodParameter, error) {
	params := make(map[NamedMethod][]MethodParameter)
	err := r.each(namedParamSection, namedParamLine, func(g map[string]string) error {
		owner, err := ownerOf(classes, g["class"])
		if err != nil {
			return err
		}
		i := slices.IndexFunc(named[g["name"]], func(m NamedMethod) bool {
			return m.Owner == owner && m.Descriptor == g["signature"]
		})
		if i < 0 {
			return fmt.Errorf("%w: no named method %s%s in class %s", ErrDanglingReference, g["name"], g["signature"], owner.Name)
		}
		index, err := strconv.Atoi(g["index"])
		if err != nil {
			return err
		}
		m := named[g["name"]][i]
		params[m] = append(params[m], MethodParameter{Parent: m, Index: index})
		return nil
	})
	return params, err
}

func (r *codecReader) numberedParams(classes map[string]Class, numbered *Table[int, Class, NumberedMethod]) (map[NumberedMethod][]MethodParameter, error) {
	params := make(map[NumberedMethod][]MethodParameter)
	err := r.each(numberedParamSection, numberedParamLine, func(g map[string]string) error {
		id, err := parseID(g["id"])
		if err != nil {
			return err
		}
		m, err := numberedParent(classes, numbered, id, g["class"])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(g["index"])
		if err != nil {
			return err
		}
		params[m] = append(params[m], MethodParameter{Parent: m, Index: index})
		return nil
	})
	return params, err
}

func numberedParent(classes map[string]Class, numbered *Table[int, Class, NumberedMethod], id int, className string) (NumberedMethod, error) {
	if className == "" {
		var first NumberedMethod
		found := false
		for c, m := range numbered.Row(id) {
			if !found || c.Name < first.Owner.Name {
				first, found = m, true
			}
		}
		if !found {
			return NumberedMethod{}, fmt.Errorf("%w: no numbered method %d", ErrDanglingReference, id)
		}
		return first, nil
	}
	owner, err := ownerOf(classes, className)
	if err != nil {
		return NumberedMethod{}, err
	}
	m, ok := numbered.Get(id, owner)
	if !ok {
		return NumberedMethod{}, fmt.Errorf("%w: no numbered method %d in class %s", ErrDanglingReference, id, className)
	}
	return m, nil
}

func (r *codecReader) constructorParams(constructors map[int]Constructor) (map[Constructor][]MethodParameter, error) {
	params := make(map[Constructor][]MethodParameter)
	err := r.each(constructorParamSection, constructorParamLine, func(g map[string]string) error {
		id, err := parseID(g["id"])
		if err != nil {
			return err
		}
		c, ok := constructors[id]
		if !ok {
			return fmt.Errorf("%w: no constructor %d", ErrDanglingReference, id)
		}
		index, err := strconv.Atoi(g["index"])
		if err != nil {
			return err
		}
		params[c] = append(params[c], MethodParameter{Parent: c, Index: index})
		return nil
	})
	return params, err
}

func ownerOf(classes map[string]Class, name string) (Class, error) {
	c, ok := classes[name]
	if !ok {
		return Class{}, fmt.Errorf("%w: unknown class %s", ErrDanglingReference, name)
	}
	return c, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
