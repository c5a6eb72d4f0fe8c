// Package normalisers holds the Normaliser implementations that turn raw
// files into articles. Each subpackage handles one record format.
package normalisers
