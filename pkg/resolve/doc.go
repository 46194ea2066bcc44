// Package resolve defines the resolver-override data model: alias rules,
// path-pattern replacement rules, disabled browser fallbacks, and the
// standard errors for the threeshim resolution system.
//
// A Config is constructed once per build invocation and is read-only
// afterwards. Alias lookups (exact before prefix) are attempted before the
// host bundler's default resolution; replacement rules run against the path
// default resolution would otherwise have chosen.
package resolve
