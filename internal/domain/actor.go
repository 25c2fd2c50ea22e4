package domain

// ActorKind discriminates who performed an action: an admin, a manager or a
// client. Transitions, score entries and notifications all record actors as
// a (kind, id) pair instead of a bare id.
type ActorKind string

const (
	ActorKindAdmin   ActorKind = "ADMIN"
	ActorKindManager ActorKind = "MANAGER"
	ActorKindClient  ActorKind = "CLIENT"
)

type Actor struct {
	Kind ActorKind `json:"kind"`
	ID   int32     `json:"id"`
}

// IsOperator reports whether the actor may drive reservation transitions.
func (a Actor) IsOperator() bool {
	return a.Kind == ActorKindAdmin || a.Kind == ActorKindManager
}
