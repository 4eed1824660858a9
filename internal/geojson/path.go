package geojson

import (
	"fmt"
	"sort"
	"strings"
)

// Resolve walks a dot-separated address through a nested properties bag.
// Each segment descends only when the current value is an object containing
// that key; otherwise resolution reports not-found. Absence is normal data,
// never an error. Array indexing and dot escaping are not supported.
func Resolve(props map[string]any, address string) (any, bool) {
	var current any = props
	for _, key := range strings.Split(address, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// PathInfo is one discovered address with sample values collected across the
// inspected features. Nested objects contribute a key-count placeholder.
type PathInfo struct {
	Address string
	Samples []string
}

// Discover enumerates every address reachable through nested objects in the
// first maxFeatures features, descending at most maxDepth levels. Results
// are advisory output for an operator choosing an extraction address; they
// have no effect on extraction itself.
func Discover(features []Feature, maxFeatures, maxDepth int) []PathInfo {
	if maxFeatures > len(features) {
		maxFeatures = len(features)
	}

	var order []string
	samples := make(map[string][]string)

	for _, f := range features[:maxFeatures] {
		discoverPaths(f.Properties, "", maxDepth, &order, samples)
	}

	out := make([]PathInfo, 0, len(order))
	for _, addr := range order {
		out = append(out, PathInfo{Address: addr, Samples: samples[addr]})
	}
	return out
}

func discoverPaths(obj map[string]any, prefix string, depth int, order *[]string, samples map[string][]string) {
	if depth <= 0 {
		return
	}

	for _, key := range sortedKeys(obj) {
		addr := key
		if prefix != "" {
			addr = prefix + "." + key
		}
		if _, seen := samples[addr]; !seen {
			*order = append(*order, addr)
		}

		switch v := obj[key].(type) {
		case map[string]any:
			samples[addr] = append(samples[addr], fmt.Sprintf("<nested object with %d keys>", len(v)))
			discoverPaths(v, addr, depth-1, order, samples)
		default:
			samples[addr] = append(samples[addr], Stringify(v))
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
