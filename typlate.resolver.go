package typlate

// loopFrame is one active loop during rendering. Besides driving the
// iteration it doubles as the overlay binding for its body: the frame
// stack consulted innermost-first gives deterministic shadowing without
// shared environment objects.
type loopFrame struct {
	binding   string
	list      []Value
	index     int // element currently bound
	bodyStart int // token index span of the loop body
	bodyEnd   int // index of the matching LoopEnd token
}

// current returns the element bound for the running iteration
func (f *loopFrame) current() Value {
	return f.list[f.index]
}

// resolvePath resolves a dotted path against the root value with the
// given loop frames as overlays. If the first segment names a loop
// binding, resolution continues inside the bound element, shadowing any
// root key of the same name; inner bindings shadow outer ones. Every
// non-terminal step must index a Table.
func resolvePath(root Value, frames []loopFrame, path string, segments []string, pos Position) (Value, error) {
	current := root
	rest := segments

	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].binding == segments[0] {
			current = frames[i].current()
			rest = segments[1:]
			break
		}
	}

	for _, seg := range rest {
		entry, ok := current.Get(seg)
		if !ok {
			return Value{}, NewUnknownKeyError(path, pos)
		}
		current = entry
	}
	return current, nil
}
