// Package config loads application settings from environment variables.
//
// Values come from the live environment first, then from an optional
// key=value env file, then from documented defaults. Validation is a
// separate, non-fatal step returning human-readable messages so the
// caller can decide whether to refuse startup.
package config
