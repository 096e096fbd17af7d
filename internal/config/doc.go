// Package config defines coldbd's server configuration and loads it from a
// TOML file, repurposing the shape of the teacher's schema-file parser
// (internal/parser/toml: a decoder struct plus a thin ParseFile/Parse pair
// built on github.com/BurntSushi/toml) for server settings instead of
// database schema.
package config
