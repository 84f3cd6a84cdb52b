// Package language provides language code normalization and comparison.
//
// Stream tags and user-supplied selectors spell the same language in
// different ways (ISO 639-1, ISO 639-2 terminology and bibliographic codes,
// English names). Everything that compares or displays languages goes through
// this package so "ru", "rus" and "russian" are treated as one language.
package language
