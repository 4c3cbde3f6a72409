// Package policy holds the ownership rules deciding whether an acting user
// may perform an operation on a task, comment or user. Every function is pure:
// it returns nil to allow and a typed failure to deny.
package policy

import (
	"github.com/yukikurage/task-tracker-api/internal/auth"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// TaskCreate allows creation only for the acting user as declared author,
// and only when the assignee is someone else.
func TaskCreate(actor auth.ActingUser, authorID, assigneeID uint64) error {
	if assigneeID == authorID {
		return apierrors.InvalidArgumentf("assignee and author cannot be the same")
	}
	if authorID != actor.ID {
		return apierrors.Forbiddenf("you are not authorized to create a task for another user")
	}
	return nil
}

// TaskUpdate allows only the task author.
func TaskUpdate(actor auth.ActingUser, authorID uint64) error {
	if authorID != actor.ID {
		return apierrors.Forbiddenf("you are not authorized to update this task")
	}
	return nil
}

// TaskDelete allows only the task author.
func TaskDelete(actor auth.ActingUser, authorID uint64) error {
	if authorID != actor.ID {
		return apierrors.Forbiddenf("you are not authorized to delete this task")
	}
	return nil
}

// TaskRead allows the author and the assignee.
func TaskRead(actor auth.ActingUser, authorID, assigneeID uint64) error {
	if actor.ID != authorID && actor.ID != assigneeID {
		return apierrors.Forbiddenf("you are not authorized to view this task")
	}
	return nil
}

// TaskListByAssignee allows a user to list only their own assigned tasks.
func TaskListByAssignee(actor auth.ActingUser, assigneeID uint64) error {
	if actor.ID != assigneeID {
		return apierrors.Forbiddenf("you are not authorized to view tasks for another user")
	}
	return nil
}

// TaskListByAuthor allows a user to list only their own authored tasks.
func TaskListByAuthor(actor auth.ActingUser, authorID uint64) error {
	if actor.ID != authorID {
		return apierrors.Forbiddenf("you are not authorized to view tasks for another user")
	}
	return nil
}

// TaskListAll covers list-all, by-priority and by-status. Any authenticated
// caller is allowed; narrowing to participants is a service-level setting.
func TaskListAll(auth.ActingUser) error {
	return nil
}

// CommentCreate allows posting only as oneself.
func CommentCreate(actor auth.ActingUser, authorID uint64) error {
	if authorID != actor.ID {
		return apierrors.Forbiddenf("you are not allowed to comment on behalf of another user")
	}
	return nil
}

// CommentUpdate allows only the comment author.
func CommentUpdate(actor auth.ActingUser, authorID uint64) error {
	if authorID != actor.ID {
		return apierrors.Forbiddenf("you are not allowed to update this comment")
	}
	return nil
}

// CommentDelete allows only the comment author.
func CommentDelete(actor auth.ActingUser, authorID uint64) error {
	if authorID != actor.ID {
		return apierrors.Forbiddenf("you are not allowed to delete this comment")
	}
	return nil
}

// CommentRead is unrestricted for authenticated callers.
func CommentRead(auth.ActingUser) error {
	return nil
}

// UserRead allows the user themself or an administrator.
func UserRead(actor auth.ActingUser, targetID uint64) error {
	if !selfOrAdmin(actor, targetID) {
		return apierrors.Forbiddenf("you are not authorized to retrieve this user")
	}
	return nil
}

// UserUpdate allows the user themself or an administrator.
func UserUpdate(actor auth.ActingUser, targetID uint64) error {
	if !selfOrAdmin(actor, targetID) {
		return apierrors.Forbiddenf("you are not authorized to update this user")
	}
	return nil
}

// UserDelete allows the user themself or an administrator.
func UserDelete(actor auth.ActingUser, targetID uint64) error {
	if !selfOrAdmin(actor, targetID) {
		return apierrors.Forbiddenf("you are not authorized to delete this user")
	}
	return nil
}

// UserListAll allows administrators only.
func UserListAll(actor auth.ActingUser) error {
	if !actor.IsAdmin() {
		return apierrors.Forbiddenf("only administrators can list users")
	}
	return nil
}

// PasswordUpdate allows only the user themself; administrators get no override.
// Re-authentication with the old password is checked separately by the caller.
func PasswordUpdate(actor auth.ActingUser, targetID uint64) error {
	if actor.ID != targetID {
		return apierrors.Forbiddenf("you are not authorized to update this user's password")
	}
	return nil
}

func selfOrAdmin(actor auth.ActingUser, targetID uint64) bool {
	return actor.ID == targetID || actor.IsAdmin()
}
