// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

// Map is an ordinary map[string]any but implements both the [Source]
// and [Store] interfaces.
type Map map[string]any

// Apply implements the [Source] interface.
func (m Map) Apply(store Store) error {
	for k, v := range m {
		err := store.Set(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}

// Set implements the [Store] interface. Nested map values are merged
// key by key instead of being replaced wholesale, so later sources only
// override the keys they actually provide.
func (m Map) Set(key string, v any) error {
	nm, ok := v.(map[string]any)
	if !ok {
		m[key] = v
		return nil
	}

	om, ok := m[key].(map[string]any)
	if !ok {
		om = make(map[string]any, len(nm))
		m[key] = om
	}
	return Map(nm).Apply(Map(om))
}
