package web

import (
	"fmt"
	"html/template"

	"github.com/JaimeStill/web-quickstart/pkg/routes"
)

// URLFuncs returns the url_for and static template functions backed by reg.
//
//	{{ url_for "profile" "username" "John Doe" }}  -> /user/John%20Doe
//	{{ static "style.css" }}                       -> /static/style.css
func URLFuncs(reg *routes.Registry) template.FuncMap {
	return template.FuncMap{
		"url_for": func(endpoint string, pairs ...string) (string, error) {
			if len(pairs)%2 != 0 {
				return "", fmt.Errorf("url_for %s: odd number of parameter arguments", endpoint)
			}
			params := make(map[string]string, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				params[pairs[i]] = pairs[i+1]
			}
			return reg.URLFor(endpoint, params)
		},
		"static": func(filename string) (string, error) {
			return reg.URLFor(routes.StaticEndpoint, map[string]string{"filename": filename})
		},
	}
}
