// Package scraper implements the unstructured extraction adapter: it fetches
// a text representation of an artist's tour page and asks a language model
// to extract structured tour dates from it. Each URL either yields events or
// one source failure; a bad URL never aborts the rest of a check.
package scraper
