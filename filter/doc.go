// Package filter defines the structural events of a wiki stream and the
// filter interfaces that produce and consume them.
//
// A wiki stream is a sequence of paired begin/end calls, one pair per
// structural unit (document, object), with leaf calls for object
// properties in between. Each call carries a name and a [Parameters]
// set. Output formats implement [Filter]; drivers call it in properly
// nested order.
//
// # Example
//
//	params := filter.NewWikiObjectParameters().
//		Set(filter.ParameterNumber, 0).
//		Set(filter.ParameterClassReference, "XWiki.TagClass")
//	v := filter.NewValidator(out)
//	v.BeginWikiObject("XWiki.TagClass[0]", params)
//	v.OnWikiObjectProperty("tags", "news", nil)
//	v.EndWikiObject("XWiki.TagClass[0]", params)
//	if err := v.Close(); err != nil {
//		return err
//	}
//
// [Validator] enforces nesting locally and reports
// wikistream.StructuralViolation errors; output filters themselves do
// not check nesting.
package filter
