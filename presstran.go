// Package presstran turns raw article HTML from a single publication into
// clean plain text and a translated rendition of each article. It locates
// article bodies with a single corpus-wide content rule, repairs the rule
// from observed extraction failures, and translates accepted articles one
// at a time under a configuration fixed for the whole run.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package presstran
