// Package authz decides whether an actor may act on a post. It is a pure,
// stateless predicate so the same rule serves single-item and bulk contexts.
package authz

import (
	"quill/internal/models"
)

// Action enumerates the operations the guard rules on.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AnonymousID is the actor ID carried by unauthenticated requests.
const AnonymousID uint = 0

// Allowed reports whether the actor may perform action on post.
//
// Reads on published posts are open to everyone, anonymous included.
// Unpublished posts are invisible here regardless of actor; the owner-only
// "mine" listing is routed around the guard deliberately. Mutation requires
// an authenticated actor who is the post's author.
func Allowed(actorID uint, post *models.Post, action Action) bool {
	if post == nil {
		return false
	}

	switch action {
	case ActionRead:
		return post.Published
	case ActionUpdate, ActionDelete:
		return actorID != AnonymousID && actorID == post.AuthorID
	default:
		return false
	}
}

// FilterReadable returns only the posts the actor may read. The predicate is
// the same one used for single-item decisions.
func FilterReadable(actorID uint, posts []*models.Post) []*models.Post {
	readable := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if Allowed(actorID, p, ActionRead) {
			readable = append(readable, p)
		}
	}
	return readable
}
