// Package dynacfg is a host-facing facade over a small dynamic
// configuration language: a tokenizer, a substitution evaluator and a
// sequence dispatcher that together turn INCLUDE-able source files into
// a set of named, namespaced resources a host program can fetch and
// iterate.
//
// The language itself lives in internal/cfglang; this package wires it
// to structured logging, YAML-backed parameter injection and reload
// bookkeeping so a host only ever deals with Config.
package dynacfg
