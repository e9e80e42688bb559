package dms

// Route names a screen.
type Route string

const (
	RouteHome       Route = "/"
	RouteLogin      Route = "/login"
	RouteRegister   Route = "/register"
	RouteDashboard  Route = "/dashboard"
	RouteDocuments  Route = "/documents"
	RouteCategories Route = "/categories"
)

// Navigator performs client-side navigation between screens.
type Navigator interface {
	Navigate(to Route)
}
