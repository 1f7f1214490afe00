// Package config loads and validates scriptline configuration from TOML.
//
// A missing path means "use the defaults"; keys the Config type does not know
// about are rejected so that typos surface instead of being ignored.
package config
