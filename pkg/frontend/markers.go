package frontend

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme tokens holding the visibility class names.
const (
	TokenShow = "plantilla.visibility.show"
	TokenHide = "plantilla.visibility.hide"
)

// DefaultThemeName is the built-in theme resolved when none is configured.
const DefaultThemeName = "plantilla"

// Markers are the two class names that make a control visible or hidden.
// A control carries exactly one of them.
type Markers struct {
	Show string
	Hide string
}

// DefaultMarkers returns the class names used by the built-in templates.
func DefaultMarkers() Markers {
	return Markers{Show: "mostrar", Hide: "ocultar"}
}

// Validate rejects empty, identical or multi-class markers.
func (m Markers) Validate() error {
	show, hide := strings.TrimSpace(m.Show), strings.TrimSpace(m.Hide)
	switch {
	case show == "" || hide == "":
		return errors.New("frontend: show and hide markers are required")
	case show == hide:
		return fmt.Errorf("frontend: show and hide markers must differ, both are %q", show)
	case strings.ContainsAny(show, " \t\n") || strings.ContainsAny(hide, " \t\n"):
		return errors.New("frontend: markers must be single class names")
	}
	return nil
}

// MarkersFromSelection reads the visibility tokens of a theme selection.
// Variant tokens win over manifest tokens; missing tokens keep the default.
func MarkersFromSelection(selection *theme.Selection) Markers {
	markers := DefaultMarkers()
	if selection == nil || selection.Manifest == nil {
		return markers
	}
	apply := func(tokens map[string]string) {
		if v := strings.TrimSpace(tokens[TokenShow]); v != "" {
			markers.Show = v
		}
		if v := strings.TrimSpace(tokens[TokenHide]); v != "" {
			markers.Hide = v
		}
	}
	apply(selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		apply(variant.Tokens)
	}
	return markers
}

// ResolveMarkers selects a theme and returns its validated markers.
func ResolveMarkers(selector theme.ThemeSelector, name, variant string) (Markers, error) {
	if selector == nil {
		return DefaultMarkers(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Markers{}, fmt.Errorf("frontend: select theme %q/%q: %w", name, variant, err)
	}
	markers := MarkersFromSelection(selection)
	if err := markers.Validate(); err != nil {
		return Markers{}, err
	}
	return markers, nil
}

// DefaultManifest describes the built-in theme. Its variants map the
// visibility markers onto common CSS framework utilities.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenShow: "mostrar",
			TokenHide: "ocultar",
		},
		Variants: map[string]theme.Variant{
			"bootstrap": {
				Tokens: map[string]string{
					TokenShow: "d-block",
					TokenHide: "d-none",
				},
			},
			"tailwind": {
				Tokens: map[string]string{
					TokenShow: "block",
					TokenHide: "hidden",
				},
			},
		},
	}
}

// ManifestSelector is a theme.ThemeSelector over a fixed set of manifests.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. The first manifest is used
// when Select receives an empty name.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		if s.fallback == "" {
			s.fallback = m.Name
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select resolves a manifest and variant. An empty variant selects the base
// tokens; an unknown one is an error.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("frontend: unknown theme %q (known: %s)", name, strings.Join(s.names(), ", "))
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("frontend: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

func (s *ManifestSelector) names() []string {
	out := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
