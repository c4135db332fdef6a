// Package writers turns clustered profiles into serialized reports.
//
// Design:
//   • Writers own all presentation knowledge (TSV columns, JSONL fields, labels).
//   • Pipeline stays orchestration-only and picks a writer by format name.
package writers
