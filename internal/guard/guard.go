// internal/guard/guard.go

// Package guard holds the authorization predicates evaluated before any
// handler reads or writes the records named by a request. Predicates are
// pure functions of the caller (and a target captured at construction), so
// the per-route policy can be tested without an HTTP harness.
package guard

import (
	"fmt"
	"strings"

	"lifesure-service/internal/domain/user"
	xerrors "lifesure-service/internal/pkg/errors"
)

// Predicate decides whether the caller may proceed. A nil return allows;
// a denial wraps xerrors.ErrForbidden with the reason.
type Predicate func(caller user.User) error

// Deny builds a denial with the given reason.
func Deny(reason string) error {
	return fmt.Errorf("%s: %w", reason, xerrors.ErrForbidden)
}

// HasRole allows iff the caller holds the given role.
func HasRole(role user.Role) Predicate {
	return func(caller user.User) error {
		if caller.Role == role {
			return nil
		}
		return Deny(fmt.Sprintf("requires role %s", role))
	}
}

// IsSelf allows iff the caller's email matches the target email.
// Comparison is case-insensitive; emails are stored lowercased.
func IsSelf(targetEmail string) Predicate {
	return func(caller user.User) error {
		if strings.EqualFold(caller.Email, targetEmail) {
			return nil
		}
		return Deny("resource belongs to another account")
	}
}

// IsOwnerOrRole allows iff the caller owns the target or holds the given
// role. Used for admin-overrides-self lookups.
func IsOwnerOrRole(targetEmail string, role user.Role) Predicate {
	return Any(IsSelf(targetEmail), HasRole(role))
}

// All composes predicates with AND: every predicate must allow.
func All(preds ...Predicate) Predicate {
	return func(caller user.User) error {
		for _, p := range preds {
			if err := p(caller); err != nil {
				return err
			}
		}
		return nil
	}
}

// Any composes predicates with OR: the first allow wins; if none allow,
// the last denial is returned.
func Any(preds ...Predicate) Predicate {
	return func(caller user.User) error {
		if len(preds) == 0 {
			return nil
		}
		var last error
		for _, p := range preds {
			last = p(caller)
			if last == nil {
				return nil
			}
		}
		return last
	}
}
