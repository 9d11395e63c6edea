package srg

import "sync"

// methodKey is a Method usable as a map key.
type methodKey interface {
	comparable
	Method
}

// parametersOf derives the parameter slots of m from its descriptor
// (JVMS 4.3.3). Instance methods reserve slot 0 for the receiver; long
// and double take two slots. Array prefixes and char parameters are not
// recognized by the token scanner.
func parametersOf(m Method) []MethodParameter {
	groups, ok := submatch(descriptorParamsPattern, DescriptorOf(m))
	if !ok || groups["parameters"] == "" {
		return nil
	}

	index := 1
	if m.static() {
		index = 0
	}

	tokens := parameterTokenPattern.FindAllString(groups["parameters"], -1)
	params := make([]MethodParameter, 0, len(tokens))
	for _, token := range tokens {
		params = append(params, MethodParameter{Parent: m, Index: index})
		index += slotWidth(token[0])
	}
	return params
}

func slotWidth(code byte) int {
	switch code {
	case 'J', 'D':
		return 2
	default:
		return 1
	}
}

// buildParameters computes parameters for every method in parallel.
// Methods without parameters have no entry.
func buildParameters[M methodKey](methods []M, workers int) map[M][]MethodParameter {
	var mu sync.Mutex
	out := make(map[M][]MethodParameter, len(methods))
	_ = forEachPartition(len(methods), workers, func(lo, hi int) error {
		local := make(map[M][]MethodParameter, hi-lo)
		for _, m := range methods[lo:hi] {
			if params := parametersOf(m); len(params) > 0 {
				local[m] = params
			}
		}
		mu.Lock()
		defer mu.Unlock()
		for m, params := range local {
			out[m] = params
		}
		return nil
	})
	return out
}
