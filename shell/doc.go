// Package shell assembles independently-registered feature modules into one
// running application.
//
// A Module names a feature and knows how to resolve its attach function. The
// Registrar applies modules to an App one at a time inside a failure
// boundary: load errors, attach errors, and panics all become Outcome values
// instead of propagating, so one broken module never prevents the others
// from registering. Routes and background tasks are staged on a Binder and
// committed only when the module's attach function succeeds, leaving the App
// untouched by failed attempts.
package shell
