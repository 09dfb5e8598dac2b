// Package rentsync extracts structured rental listings from arbitrary
// rental-management websites and keeps a persisted snapshot of currently
// available listings in sync with what each site shows, so repeated
// queries are answered from cache instead of re-scraping.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, gemini/); pipeline orchestration lives in pipeline/.
package rentsync
