package manifest

// Manifest is the manifest.json object being assembled. Values are
// plain structured data (maps, slices, scalars), so the whole object
// can be cloned, merged and serialized without reflection tricks.
type Manifest map[string]any

// AddPermission inserts a permission into the permissions array,
// lazily initializing it. Already-present values are left alone, so
// insertion order is first-seen and duplicates never occur.
func (m Manifest) AddPermission(permission string) {
	m.appendUnique("permissions", permission)
}

// AddHostPermission inserts a host permission into the
// host_permissions array with the same semantics as AddPermission.
func (m Manifest) AddHostPermission(pattern string) {
	m.appendUnique("host_permissions", pattern)
}

// Clone returns a deep copy of the manifest. Mutating the copy never
// affects the original, which is what lets the user transform hook
// operate on a draft and commit atomically.
func (m Manifest) Clone() Manifest {
	return Manifest(cloneObject(m))
}

func (m Manifest) appendUnique(key string, values ...string) {
	list := toStringList(m[key])
	for _, value := range values {
		if !containsString(list, value) {
			list = append(list, value)
		}
	}
	m[key] = toAnyList(list)
}

// toStringList coerces an arbitrary manifest value into a string slice,
// tolerating both []string and the []any that YAML/JSON decoding
// produces. Non-string elements are dropped.
func toStringList(value any) []string {
	switch list := value.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toAnyList(list []string) []any {
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = item
	}
	return out
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
