package rest

import "github.com/gin-gonic/gin"

type HttpMethod int

const (
	GET HttpMethod = iota
	POST
	PUT
	PATCH
)

type Route struct {
	Method      HttpMethod
	Path        string
	HandlerFunc gin.HandlerFunc
	Group       string
}

func NewRoute(method HttpMethod, group, path string, handler gin.HandlerFunc) Route {
	return Route{
		Method:      method,
		Path:        path,
		Group:       group,
		HandlerFunc: handler,
	}
}

// RegisterRoutes attaches every route to its group on the router. Middleware
// with group "*" applies to the whole router, any other group to that group.
func RegisterRoutes(router *gin.Engine, routes []Route, middlewares []Middleware) {
	groupMiddleware := map[string][]gin.HandlerFunc{}
	for _, m := range middlewares {
		if m.Group == "*" {
			router.Use(m.Handler)
			continue
		}
		groupMiddleware[m.Group] = append(groupMiddleware[m.Group], m.Handler)
	}

	groups := map[string]*gin.RouterGroup{}
	for _, r := range routes {
		if _, exists := groups[r.Group]; !exists {
			groups[r.Group] = router.Group("/"+r.Group, groupMiddleware[r.Group]...)
		}

		group := groups[r.Group]

		switch r.Method {
		case GET:
			group.GET(r.Path, r.HandlerFunc)
		case POST:
			group.POST(r.Path, r.HandlerFunc)
		case PUT:
			group.PUT(r.Path, r.HandlerFunc)
		case PATCH:
			group.PATCH(r.Path, r.HandlerFunc)
		}
	}
}
