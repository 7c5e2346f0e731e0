// Package workbuddy provides a local-filesystem search engine with an
// AI-directed multi-round search protocol. It locates files matching a
// request within bounded latency, across heterogeneous OS directory
// layouts, without building a persistent index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, gemini/).
package workbuddy
