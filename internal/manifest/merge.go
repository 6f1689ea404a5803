package manifest

// mergeObjects returns a right-biased recursive merge of override into
// base. Nested objects merge key by key; everything else, arrays
// included, is replaced by the override value. Neither input is
// mutated.
func mergeObjects(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for key, value := range base {
		merged[key] = cloneValue(value)
	}
	for key, value := range override {
		baseObj, baseIsObj := asObject(merged[key])
		overrideObj, overrideIsObj := asObject(value)
		if baseIsObj && overrideIsObj {
			merged[key] = mergeObjects(baseObj, overrideObj)
			continue
		}
		merged[key] = cloneValue(value)
	}
	return merged
}

func asObject(value any) (map[string]any, bool) {
	switch obj := value.(type) {
	case map[string]any:
		return obj, true
	case Manifest:
		return map[string]any(obj), true
	default:
		return nil, false
	}
}

func cloneObject(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Manifest:
		return cloneObject(v)
	case map[string]any:
		return cloneObject(v)
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return toAnyList(v)
	default:
		// Scalars (string, bool, numbers, nil) are immutable.
		return v
	}
}
