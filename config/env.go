// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "os"

// Env represents a [Source] where its underlying values are extracted
// from environment variables.
type Env struct {
	mapping map[string]string
	lookup  func(string) (string, bool)
}

// FromEnv returns a [Source] which applies the value of each environment
// variable named by a mapping key under the config key it maps to.
// Variables which are unset, or set to the empty string, are skipped so
// they never shadow values from other sources.
func FromEnv(mapping map[string]string) Env {
	return FromEnvLookup(mapping, os.LookupEnv)
}

// FromEnvLookup is [FromEnv] with a custom lookup function.
func FromEnvLookup(mapping map[string]string, lookup func(string) (string, bool)) Env {
	return Env{
		mapping: mapping,
		lookup:  lookup,
	}
}

// Apply implements the [Source] interface.
func (src Env) Apply(store Store) error {
	for envKey, cfgKey := range src.mapping {
		v, ok := src.lookup(envKey)
		if !ok || v == "" {
			continue
		}

		err := store.Set(cfgKey, v)
		if err != nil {
			return err
		}
	}
	return nil
}
