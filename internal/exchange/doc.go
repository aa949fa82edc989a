// Package exchange moves stored records in and out of flat files.
//
// Three formats are supported:
//
//   - JSON: an array with one object per row mapping column name to the
//     value as text, or null. Export only.
//   - CSV: one headerless line per row in a fixed positional column order
//     (model.Kind.ExchangeColumns), NULL for absent values. Team rows omit
//     the uid; import allocates a fresh one for every team.
//   - QR: a PNG of a QR code whose payload is arbitrary text, normally a
//     CSV export, so the data can be moved between devices by camera.
package exchange
