package gamification

import "errors"

// ErrUnknownUser marks an operation against a user that was never
// initialized. Activity recording treats this as a logged no-op instead of
// surfacing it, because point awarding must never block the triggering
// action.
var ErrUnknownUser = errors.New("unknown user")
