package srg

import "regexp"

// Line recognizers for the mapping inputs. Names are built from [$\w/]
// (dollar for inner classes, slash for packages).
var (
	// reobf srg
	classHeaderPattern = regexp.MustCompile(`^(?P<reobf>[$\w/]+) (?P<srg>[$\w/]+)$`)

	// <ws>reobf field_<id>_name_
	fieldPattern = regexp.MustCompile(`^\s*(?P<reobf>[$\w/]+) (?P<srg>field_(?P<id>\d+)_[$\w/]+?_?)$`)

	// <ws>reobf VALUE
	enumValuePattern = regexp.MustCompile(`^\s*(?P<reobf>[$\w/]+) (?P<value>[$\w/]+)$`)

	// <ws>reobf descriptor func_<id>_name_
	numberedMethodPattern = regexp.MustCompile(`^\s*(?P<reobf>[$\w/]+?) (?P<signature>.+?) (?P<srg>func_(?P<id>\d+)_[$\w/]+?_?)$`)

	// <ws>reobf descriptor name
	namedMethodPattern = regexp.MustCompile(`^\s*(?P<reobf>[$\w/]+?) (?P<signature>.*?) (?P<deobf>[$\w/]+)$`)

	// func_<id>_name_ or field_<id>_name_
	srgNumberPattern = regexp.MustCompile(`^(?P<type>func|field)_(?P<id>\d+)_[$\w/]*_?$`)

	// <id> <class> <descriptor>
	constructorPattern = regexp.MustCompile(`^(?P<id>\d+) (?P<class>[$\w/]+) (?P<signature>[\[();$/\w]+)$`)

	// L<name>; inside a descriptor
	referenceTypePattern = regexp.MustCompile(`L(?P<class>.+?);`)

	// (<params>)<return>
	descriptorParamsPattern = regexp.MustCompile(`^\((?P<parameters>.*)\).+$`)

	// one parameter token; '[' and 'C' are not recognized
	parameterTokenPattern = regexp.MustCompile(`L.*?;|[SBIJZDF]`)
)

// submatch returns the named groups of re matched against s.
func submatch(re *regexp.Regexp, s string) (map[string]string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	groups := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}
	return groups, true
}
