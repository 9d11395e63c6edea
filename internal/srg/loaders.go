package srg

import "strconv"

// parseStatics returns the ids of every "func_<id>_..." line. Field entries
// and unrecognized lines are skipped and counted. Lines carry no shared
// context, so partitions run in parallel.
func parseStatics(lines []string, workers int, diags *diagnostics, progress ProgressReporter) map[int]struct{} {
	arena := newArenaMap[int, struct{}](len(lines))
	progress.OnPassStart(PassStatics, len(lines))

	_ = forEachPartition(len(lines), workers, func(lo, hi int) error {
		local := make(map[int]located[struct{}], hi-lo)
		for i := lo; i < hi; i++ {
			line := lines[i]
			groups, ok := submatch(srgNumberPattern, line)
			if !ok {
				diags.add(Diagnostic{Pass: PassStatics, Line: i + 1, Text: line, Reason: "does not match naming pattern"})
				continue
			}
			if groups["type"] != "func" {
				diags.add(Diagnostic{Pass: PassStatics, Line: i + 1, Text: line, Reason: "is not a function"})
				continue
			}
			id, err := strconv.Atoi(groups["id"])
			if err != nil {
				diags.add(Diagnostic{Pass: PassStatics, Line: i + 1, Text: line, Reason: "id out of range"})
				continue
			}
			local[id] = located[struct{}]{line: i}
		}
		arena.merge(local)
		progress.OnPassAdvance(PassStatics, hi-lo)
		return nil
	})

	return arena.freeze()
}

// parseConstructors parses "<id> <class> <descriptor>" lines. Constructors
// whose class is not in classes are dropped. Descriptors are kept as
// written.
func parseConstructors(classes map[string]Class, lines []string, workers int, diags *diagnostics, progress ProgressReporter) map[int]Constructor {
	arena := newArenaMap[int, Constructor](len(lines))
	progress.OnPassStart(PassConstructors, len(lines))

	_ = forEachPartition(len(lines), workers, func(lo, hi int) error {
		local := make(map[int]located[Constructor], hi-lo)
		for i := lo; i < hi; i++ {
			line := lines[i]
			groups, ok := submatch(constructorPattern, line)
			if !ok {
				diags.add(Diagnostic{Pass: PassConstructors, Line: i + 1, Text: line, Reason: "does not match constructor pattern"})
				continue
			}
			owner, ok := classes[groups["class"]]
			if !ok {
				diags.add(Diagnostic{Pass: PassConstructors, Line: i + 1, Text: line, Reason: "unknown class"})
				continue
			}
			id, err := strconv.Atoi(groups["id"])
			if err != nil {
				diags.add(Diagnostic{Pass: PassConstructors, Line: i + 1, Text: line, Reason: "id out of range"})
				continue
			}
			if prev, dup := local[id]; dup && prev.line < i {
				continue
			}
			local[id] = located[Constructor]{
				value: Constructor{Signature: Signature{Owner: owner, Descriptor: groups["signature"]}, ID: id},
				line:  i,
			}
		}
		arena.merge(local)
		progress.OnPassAdvance(PassConstructors, hi-lo)
		return nil
	})

	return arena.freeze()
}
