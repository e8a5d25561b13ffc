// Package authz holds the role-based access policy as an explicit table.
// Services consult it before every mutation; an unknown role denies
// everything.
package authz

import (
	"signage-command-center/be/models"
)

type Resource string

const (
	ResourceLocation Resource = "location"
	ResourceCampaign Resource = "campaign"
	ResourceDevice   Resource = "device"
	ResourceUser     Resource = "user"
	ResourceActivity Resource = "activity"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Decision is the outcome of a policy lookup. AllowOwn grants the action
// only on entities the actor owns; the service enforces the ownership check.
type Decision int

const (
	Deny Decision = iota
	Allow
	AllowOwn
)

type key struct {
	role     models.Role
	resource Resource
	action   Action
}

var policy = map[key]Decision{}

func grant(role models.Role, resource Resource, d Decision, actions ...Action) {
	for _, a := range actions {
		policy[key{role, resource, a}] = d
	}
}

func init() {
	all := []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

	for _, r := range []Resource{ResourceLocation, ResourceCampaign, ResourceDevice, ResourceUser, ResourceActivity} {
		grant(models.RoleAdmin, r, Allow, all...)
	}

	grant(models.RoleClient, ResourceLocation, Allow, ActionRead)
	grant(models.RoleClient, ResourceDevice, Allow, ActionRead)
	grant(models.RoleClient, ResourceCampaign, Allow, ActionRead)
	grant(models.RoleClient, ResourceCampaign, AllowOwn, ActionCreate, ActionUpdate, ActionDelete)

	grant(models.RoleViewer, ResourceLocation, Allow, ActionRead)
	grant(models.RoleViewer, ResourceDevice, Allow, ActionRead)
	grant(models.RoleViewer, ResourceCampaign, Allow, ActionRead)
}

// Decide returns the policy decision for a role performing an action on a
// resource type. Missing table entries deny.
func Decide(role models.Role, resource Resource, action Action) Decision {
	return policy[key{role, resource, action}]
}

// Can reports whether the action is allowed at all, ignoring ownership
// scoping. Callers that mutate must use Decide and check ownership on
// AllowOwn.
func Can(role models.Role, resource Resource, action Action) bool {
	return Decide(role, resource, action) != Deny
}
