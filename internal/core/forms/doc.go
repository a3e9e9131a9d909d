// Package forms models the lifecycle of a submitting form page.
//
// Each page moves Idle → Submitting → Success or Error. Validation failures
// keep the page Idle with field errors and no network call. A secondary
// "resend code" action runs beside the main submission with its own pending
// flag and never touches the main phase.
package forms
