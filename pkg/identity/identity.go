// Package identity models the caller identity passed into domain operations.
// The profile is a capability selection supplied per request, never
// process-wide state.
package identity

import (
	"context"
	"fmt"
)

// Profile distinguishes the capability sets recognized by the service.
type Profile string

const (
	ProfileAuthor    Profile = "author"
	ProfileProcessos Profile = "processos"
	ProfileAdmin     Profile = "admin"
)

// ParseProfile validates a profile string.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileAuthor, ProfileProcessos, ProfileAdmin:
		return Profile(s), nil
	default:
		return "", fmt.Errorf("unknown profile: %q", s)
	}
}

// Actor identifies who is performing an operation. It is carried on the
// request context by the auth middleware and recorded in the activity trail.
type Actor struct {
	Name    string  `json:"name"`
	Profile Profile `json:"profile"`
}

type contextKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// ActorFrom extracts the actor from the context.
// The second return is false when no auth middleware ran.
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	return actor, ok
}
