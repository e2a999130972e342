package guard

import (
	"medisync-service/internal/app/services/core/identity"
	"strings"
)

type Requirement string

const (
	RequireNone          Requirement = "none"
	RequireAuthenticated Requirement = "authenticated"
	RequireAdmin         Requirement = "admin"
)

type Outcome string

const (
	Render          Outcome = "render"
	RenderLoading   Outcome = "render_loading"
	RedirectLogin   Outcome = "redirect_login"
	RedirectDefault Outcome = "redirect_default"
)

const (
	LoginPath        = "/login"
	DefaultPath      = "/app"
	AdminLandingPath = "/app/admin/dashboard"
	adminViewPrefix  = "/app/admin"
)

type Input struct {
	HasSession bool
	IsLoading  bool
	IsAdmin    bool
}

// Decision is the navigation outcome for a requested location. Location is
// set for redirects; From carries the originally requested location on a
// login redirect so the client can come back after signing in.
type Decision struct {
	Outcome  Outcome
	Location string
	From     string
}

func InputFrom(snapshot identity.Snapshot) Input {
	return Input{
		HasSession: snapshot.HasSession(),
		IsLoading:  snapshot.IsLoading(),
		IsAdmin:    snapshot.IsAdmin,
	}
}

// Decide never redirects while the identity is still loading.
func Decide(input Input, requirement Requirement, requested string) Decision {
	if input.IsLoading {
		return Decision{Outcome: RenderLoading}
	}

	switch requirement {
	case RequireNone:
		return Decision{Outcome: Render}
	case RequireAdmin:
		if !input.HasSession {
			return Decision{Outcome: RedirectLogin, Location: LoginPath, From: requested}
		}
		if !input.IsAdmin {
			return Decision{Outcome: RedirectDefault, Location: DefaultPath}
		}
		return Decision{Outcome: Render}
	default:
		if !input.HasSession {
			return Decision{Outcome: RedirectLogin, Location: LoginPath, From: requested}
		}
		return Decision{Outcome: Render}
	}
}

var publicViews = map[string]bool{
	"/":            true,
	"/login":       true,
	"/register":    true,
	"/admin/login": true,
}

// RequirementFor maps a client view location to its requirement. Unknown
// locations require an authenticated session.
func RequirementFor(location string) Requirement {
	path := normalize(location)
	if publicViews[path] {
		return RequireNone
	}
	if path == adminViewPrefix || strings.HasPrefix(path, adminViewPrefix+"/") {
		return RequireAdmin
	}
	return RequireAuthenticated
}

// DecideFor resolves the requirement of location and decides against the snapshot.
func DecideFor(snapshot identity.Snapshot, location string) Decision {
	return Decide(InputFrom(snapshot), RequirementFor(location), location)
}

// LandingFor is where a freshly signed-in subject is sent. It is the only
// place that turns the admin flag into a redirect target.
func LandingFor(snapshot identity.Snapshot) string {
	if snapshot.State == identity.StateAuthenticated && snapshot.IsAdmin {
		return AdminLandingPath
	}
	return DefaultPath
}

func normalize(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	if location == "" {
		return "/"
	}
	if len(location) > 1 {
		location = strings.TrimRight(location, "/")
		if location == "" {
			return "/"
		}
	}
	return location
}
