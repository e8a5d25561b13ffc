package services

import (
	"errors"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/authz"
	"signage-command-center/be/models"

	"gorm.io/gorm"
)

// authorize resolves the policy table for the actor. Deny comes back as
// ErrForbidden; AllowOwn is returned so the caller can apply its ownership
// check.
func authorize(actor *models.User, resource authz.Resource, action authz.Action) (authz.Decision, error) {
	decision := authz.Decide(actor.Role, resource, action)
	if decision == authz.Deny {
		return decision, apperrors.ErrForbidden
	}
	return decision, nil
}

// translateNotFound maps gorm's record-not-found onto the API error
// taxonomy.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
