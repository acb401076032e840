package personas

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the subtree pattern the component answers under.
func MountPath(basePath string) string {
	basePath = strings.Trim(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		return "/"
	}
	return "/" + basePath + "/"
}

// RegisterRoutes builds the handler from fns and mounts it under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions mounts a handler built from opts under basePath.
// The base path is stripped before routing.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("personas: missing mux")
	}
	if opts.View == nil {
		return "", fmt.Errorf("personas: missing view")
	}
	pattern := MountPath(basePath)
	handler := HandlerWithOptions(opts)
	if prefix := strings.TrimSuffix(pattern, "/"); prefix != "" {
		handler = http.StripPrefix(prefix, handler)
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}
