package server

import (
	"fmt"
	"strings"
)

// Named endpoints.
const (
	RouteHome   = "news:home"
	RouteDetail = "news:detail"
	RouteEdit   = "news:edit"
	RouteDelete = "news:delete"
	RouteLogin  = "users:login"
	RouteLogout = "users:logout"
	RouteSignup = "users:signup"
)

var routes = map[string]string{
	RouteHome:   "/",
	RouteDetail: "/news/:id/",
	RouteEdit:   "/edit_comment/:id/",
	RouteDelete: "/delete_comment/:id/",
	RouteLogin:  "/auth/login/",
	RouteLogout: "/auth/logout/",
	RouteSignup: "/auth/signup/",
}

func routePath(name string) string {
	p, ok := routes[name]
	if !ok {
		panic("unknown route " + name)
	}
	return p
}

// URLFor reverses a named endpoint, filling its parameters in order.
// It panics on an unknown name or a wrong argument count.
func URLFor(name string, args ...interface{}) string {
	segments := strings.Split(routePath(name), "/")
	i := 0
	for n, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if i >= len(args) {
			panic(fmt.Sprintf("route %s: missing argument for %s", name, seg))
		}
		segments[n] = fmt.Sprint(args[i])
		i++
	}
	if i != len(args) {
		panic(fmt.Sprintf("route %s: %d arguments given, %d used", name, len(args), i))
	}
	return strings.Join(segments, "/")
}
