// Package config defines the format-agnostic model of a simulation
// specification. Front ends (currently HCL, see internal/hcl) translate
// their native representation into this model; the workflow assembler
// consumes it without knowing which format it came from.
package config
