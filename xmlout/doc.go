// Package xmlout writes wiki streams as XML.
//
// [Writer] is a facade over a [RawWriter], the primitive streaming XML
// writer. It reports every failure as a wikistream error
// (InitializationFailure, WriteFailure, StructuralViolation), skips
// absent optional values, and checks element nesting locally.
//
// A Writer is obtained in one of three ways:
//
//	w := xmlout.NewWriter(raw)                        // caller owns raw and its sink
//	w, err := xmlout.NewWriterEncoding(out, "utf-8")  // Writer owns its raw writer
//	w, err := xmlout.NewWriterProperties(props)       // from a configuration object
//
// Close never closes a sink supplied by the caller and may be called more
// than once.
//
// [FilterWriter] implements filter.Filter on top of a Writer.
package xmlout
