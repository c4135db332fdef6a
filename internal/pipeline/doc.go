// Package pipeline runs one batch: parse profiles, annotate them from
// feature files, build the distance matrix, cluster, propagate labels
// and write the report.
//
// Stages are strictly sequential. Collaborators (Scorer, Clusterer) are
// swappable through Config so tests can run without DTW.
package pipeline
