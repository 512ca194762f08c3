package routes

import "net/http"

// Register adds every route in groups to mux, joining basePath, the group
// prefix chain, and each route pattern.
func Register(mux *http.ServeMux, basePath string, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, basePath, group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

// Walk calls fn for every route in groups with its full path and the tags
// of its nearest tagged group.
func Walk(basePath string, groups []Group, fn func(path string, tags []string, route Route)) {
	for _, group := range groups {
		walkGroup(basePath, nil, group, fn)
	}
}

func walkGroup(parentPrefix string, parentTags []string, group Group, fn func(string, []string, Route)) {
	fullPrefix := parentPrefix + group.Prefix
	tags := group.Tags
	if len(tags) == 0 {
		tags = parentTags
	}
	for _, route := range group.Routes {
		fn(fullPrefix+route.Pattern, tags, route)
	}
	for _, child := range group.Children {
		walkGroup(fullPrefix, tags, child, fn)
	}
}
