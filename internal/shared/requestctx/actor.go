package requestctx

import "context"

// Actor identité et provenance de la requête en cours
type Actor struct {
	UserID    string
	Email     string
	Role      string
	IP        string
	UserAgent string
	RequestID string
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom retourne un Actor vide hors requête (tâches planifiées)
func ActorFrom(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}

func UserID(ctx context.Context) string {
	return ActorFrom(ctx).UserID
}
