package api

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/phrazzld/webapp/internal/api/shared"
)

// Software describes one component the server is built from.
type Software struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Href    string `json:"href"`
}

// AboutHandler serves information about the running server.
type AboutHandler struct {
	shaper    *shared.Shaper
	buildInfo func() (*debug.BuildInfo, bool)
}

// NewAboutHandler creates a new AboutHandler with the given dependencies.
func NewAboutHandler(shaper *shared.Shaper) *AboutHandler {
	return &AboutHandler{
		shaper:    shaper,
		buildInfo: debug.ReadBuildInfo,
	}
}

// Software handles GET /api/about/software.
func (h *AboutHandler) Software(w http.ResponseWriter, r *http.Request) {
	info, _ := h.buildInfo()
	h.shaper.Respond(w, r, http.StatusOK, map[string]any{
		"software": softwareList(info),
	}, SchemaAboutSoftware)
}

// softwareList returns the Go toolchain followed by the module's direct and
// indirect dependencies, sorted by module path. info may be nil.
func softwareList(info *debug.BuildInfo) []Software {
	goVersion := runtime.Version()
	if info != nil && info.GoVersion != "" {
		goVersion = info.GoVersion
	}
	list := []Software{{
		Name:    "Go",
		Version: strings.TrimPrefix(goVersion, "go"),
		Href:    "https://go.dev/",
	}}
	if info == nil {
		return list
	}

	deps := make([]Software, 0, len(info.Deps))
	for _, dep := range info.Deps {
		mod := dep
		if dep.Replace != nil {
			mod = dep.Replace
		}
		deps = append(deps, Software{
			Name:    dep.Path,
			Version: mod.Version,
			Href:    "https://pkg.go.dev/" + dep.Path,
		})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return append(list, deps...)
}

// buildVersion returns the main module's version, or "devel" for local builds.
func buildVersion(info *debug.BuildInfo) string {
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "devel"
	}
	return info.Main.Version
}

// Version reports the running server's version from its build information.
func Version() string {
	info, _ := debug.ReadBuildInfo()
	return buildVersion(info)
}
