// Package hcl is the HCL implementation of config.Loader. It discovers
// .hcl specification files, decodes `simulation` and `packed` blocks, and
// translates them into the format-agnostic config model. Run settings may
// additionally be pulled in from YAML side files referenced by a
// `settings_file` attribute.
package hcl
