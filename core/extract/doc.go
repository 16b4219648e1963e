// Package extract recovers a structured JSON document from the raw text a
// generative model returns.
//
// Model output is untrusted: it may wrap the document in prose or markdown
// fences, use curly or full-width quotes, leave raw line breaks inside string
// values, carry trailing commas or bare keys, or stop mid-document because the
// model hit its token limit. The pipeline runs four stages over the text:
//
//   - [Normalize] folds quote, punctuation and line-separator variants and
//     escapes raw control characters inside string literals.
//   - [ExtractCandidate] locates the span that holds the intended value.
//   - [Repair] fixes trailing commas, bare keys and single-quoted strings.
//   - [RecoverTruncated] closes a cut-off document at its longest valid prefix.
//
// Every stage shares one string-aware scanner, so none of the structural fixes
// fire on characters inside a string value. A poem line such as
// "昔人已乘黄鹤去，此地空余黄鹤楼" keeps its full-width comma.
//
// The main entry point is [Extract]:
//
//	res, err := extract.Extract(raw)
//	if errors.Is(err, extract.ErrUnparseableOutput) {
//	    // ask the model again
//	}
//	fmt.Println(res.Stage, res.Text)
//
// The package is pure: it performs no I/O, does not log, and is safe for
// concurrent use.
package extract
