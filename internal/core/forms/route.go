package forms

import (
	"net/url"
	"time"
)

// Route is a screen the client can navigate to.
type Route string

// Routes.
const (
	RouteLanding        Route = "/"
	RouteLogin          Route = "/login"
	RouteRegister       Route = "/register"
	RouteVerifyEmail    Route = "/verify-email"
	RouteForgotPassword Route = "/forgot-password"
	RouteResetPassword  Route = "/reset-password"
	RouteDashboard      Route = "/dashboard"
	RouteDocuments      Route = "/dashboard/documents"
	RouteNewDocument    Route = "/dashboard/documents/new"
	RoutePersonas       Route = "/dashboard/personas"
	RouteNewPersona     Route = "/dashboard/personas/new"
	RouteTemplates      Route = "/dashboard/templates"
	RouteAxioms         Route = "/dashboard/axioms"
	RouteSettings       Route = "/dashboard/settings"
)

// AllRoutes returns every route.
func AllRoutes() []Route {
	return []Route{
		RouteLanding, RouteLogin, RouteRegister, RouteVerifyEmail, RouteForgotPassword,
		RouteResetPassword, RouteDashboard, RouteDocuments, RouteNewDocument,
		RoutePersonas, RouteNewPersona, RouteTemplates, RouteAxioms, RouteSettings,
	}
}

// Valid returns true if the route is recognised.
func (r Route) Valid() bool {
	for _, known := range AllRoutes() {
		if r == known {
			return true
		}
	}
	return false
}

// IsAuth reports whether the route is one of the signed-out auth screens.
func (r Route) IsAuth() bool {
	switch r {
	case RouteLogin, RouteRegister, RouteVerifyEmail, RouteForgotPassword, RouteResetPassword:
		return true
	default:
		return false
	}
}

// Navigation is a pending move to another screen.
type Navigation struct {
	Route Route
	Query url.Values
	// Delay is how long the success state is shown before moving on.
	Delay time.Duration
}

// NavigateTo returns an immediate navigation to r.
func NavigateTo(r Route) *Navigation {
	return &Navigation{Route: r}
}

// With returns a copy of n with key=value added to the query.
func (n Navigation) With(key, value string) *Navigation {
	q := url.Values{}
	for k, v := range n.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(key, value)
	n.Query = q
	return &n
}

// After returns a copy of n delayed by d.
func (n Navigation) After(d time.Duration) *Navigation {
	n.Delay = d
	return &n
}

// Param returns the first value of key in the query.
func (n *Navigation) Param(key string) string {
	if n == nil {
		return ""
	}
	return n.Query.Get(key)
}

// String renders the navigation as a path with an encoded query.
func (n *Navigation) String() string {
	if n == nil {
		return ""
	}
	if len(n.Query) == 0 {
		return string(n.Route)
	}
	return string(n.Route) + "?" + n.Query.Encode()
}
