// Package yamlcfg loads engine configurations written in YAML.
//
// Numeric fields accept either plain SI numbers or quantity strings such as
// "7 MPa" or "-253 C"; quantities are converted to SI before the document is
// decoded into config.Model. Unknown keys are rejected.
package yamlcfg
