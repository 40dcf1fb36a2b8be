// Package members implements a member-management backend: self-service
// registration, credential authentication with JWT access/refresh tokens,
// role based authorization, rank assignment, and the staff approval
// workflow that gates member-only listings.
package members
