package tui

import (
	"strings"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
)

// routeViews maps each route to the view that renders it.
var routeViews = map[forms.Route]messages.ViewType{
	forms.RouteLanding:        messages.ViewLanding,
	forms.RouteLogin:          messages.ViewLogin,
	forms.RouteRegister:       messages.ViewRegister,
	forms.RouteVerifyEmail:    messages.ViewVerifyEmail,
	forms.RouteForgotPassword: messages.ViewForgotPassword,
	forms.RouteResetPassword:  messages.ViewResetPassword,
	forms.RouteDashboard:      messages.ViewDashboard,
	forms.RouteDocuments:      messages.ViewDocuments,
	forms.RouteNewDocument:    messages.ViewNewDocument,
	forms.RoutePersonas:       messages.ViewPersonas,
	forms.RouteNewPersona:     messages.ViewNewPersona,
	forms.RouteTemplates:      messages.ViewTemplates,
	forms.RouteAxioms:         messages.ViewAxioms,
	forms.RouteSettings:       messages.ViewSettings,
}

// viewFor returns the view for r. Unknown routes show the landing screen.
func viewFor(r forms.Route) messages.ViewType {
	if v, ok := routeViews[r]; ok {
		return v
	}
	return messages.ViewLanding
}

// isDashboard reports whether r is behind sign-in.
func isDashboard(r forms.Route) bool {
	return r == forms.RouteDashboard || strings.HasPrefix(string(r), string(forms.RouteDashboard)+"/")
}

// guard returns where a navigation to r actually lands.
// Signed-out users are sent to sign in; signed-in users skip the sign-in
// and sign-up forms.
func guard(r forms.Route, authenticated bool) forms.Route {
	switch {
	case isDashboard(r) && !authenticated:
		return forms.RouteLogin
	case authenticated && (r == forms.RouteLogin || r == forms.RouteRegister):
		return forms.RouteDashboard
	default:
		return r
	}
}
