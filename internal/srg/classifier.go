package srg

import (
	"fmt"
	"strconv"
	"strings"
)

type classifierState int

const (
	awaitingFirstClass classifierState = iota
	inClass
)

// classifier is the sequential pass over the primary mapping text. Member
// lines belong to the most recent class header, so lines cannot be
// classified independently.
type classifier struct {
	state   classifierState
	current Class
	statics map[int]struct{}
	diags   *diagnostics

	classes    map[string]Class
	fields     map[int]Field
	enumValues map[Class][]EnumValue
	numbered   *Table[int, Class, NumberedMethod]
	named      map[string][]NamedMethod
}

func newClassifier(statics map[int]struct{}, diags *diagnostics) *classifier {
	return &classifier{
		state:      awaitingFirstClass,
		statics:    statics,
		diags:      diags,
		classes:    make(map[string]Class),
		fields:     make(map[int]Field),
		enumValues: make(map[Class][]EnumValue),
		numbered:   NewTable[int, Class, NumberedMethod](),
		named:      make(map[string][]NamedMethod),
	}
}

// run classifies every line in order. The only error is ErrNoClassHeader.
func (c *classifier) run(lines []string, progress ProgressReporter) error {
	progress.OnPassStart(PassMappings, len(lines))
	for i, line := range lines {
		if err := c.classify(i+1, line); err != nil {
			return err
		}
		progress.OnPassAdvance(PassMappings, 1)
	}
	return nil
}

func (c *classifier) classify(lineNum int, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if groups, ok := submatch(classHeaderPattern, line); ok {
		c.current = Class{Name: groups["srg"], ExternalName: groups["reobf"]}
		c.classes[c.current.Name] = c.current
		c.state = inClass
		return nil
	}

	if c.state == awaitingFirstClass {
		return fmt.Errorf("%w: L%d: %q", ErrNoClassHeader, lineNum, line)
	}

	switch {
	case c.field(lineNum, line):
	case c.enumValue(line):
	case c.numberedMethod(lineNum, line):
	case c.namedMethod(line):
	default:
		c.diags.add(Diagnostic{Pass: PassMappings, Line: lineNum, Text: line, Reason: "is not recognizable"})
	}
	return nil
}

func (c *classifier) field(lineNum int, line string) bool {
	groups, ok := submatch(fieldPattern, line)
	if !ok {
		return false
	}
	id, err := strconv.Atoi(groups["id"])
	if err != nil {
		c.diags.add(Diagnostic{Pass: PassMappings, Line: lineNum, Text: line, Reason: "field id out of range"})
		return true
	}
	c.fields[id] = Field{ID: id, Name: groups["srg"], ExternalName: groups["reobf"], Owner: c.current}
	return true
}

func (c *classifier) enumValue(line string) bool {
	groups, ok := submatch(enumValuePattern, line)
	if !ok {
		return false
	}
	value := EnumValue{Name: groups["value"], ExternalName: groups["reobf"], Owner: c.current}
	c.enumValues[c.current] = append(c.enumValues[c.current], value)
	return true
}

func (c *classifier) numberedMethod(lineNum int, line string) bool {
	groups, ok := submatch(numberedMethodPattern, line)
	if !ok {
		return false
	}
	id, err := strconv.Atoi(groups["id"])
	if err != nil {
		c.diags.add(Diagnostic{Pass: PassMappings, Line: lineNum, Text: line, Reason: "method id out of range"})
		return true
	}
	_, static := c.statics[id]
	c.numbered.Put(id, c.current, NumberedMethod{
		Signature:    Signature{Owner: c.current, Descriptor: groups["signature"]},
		ID:           id,
		Name:         groups["srg"],
		ExternalName: groups["reobf"],
		Static:       static,
	})
	return true
}

func (c *classifier) namedMethod(line string) bool {
	groups, ok := submatch(namedMethodPattern, line)
	if !ok {
		return false
	}
	name := groups["deobf"]
	c.named[name] = append(c.named[name], NamedMethod{
		Signature:    Signature{Owner: c.current, Descriptor: groups["signature"]},
		Name:         name,
		ExternalName: groups["reobf"],
	})
	return true
}
