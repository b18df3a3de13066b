package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"repairdesk/internal/shared/authorization"
	"repairdesk/internal/shared/logger"
)

const (
	ResourceRepair  = "repair"
	ResourceSetting = "setting"

	ActionRead         = "read"
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionUpdateStatus = "update_status"
	ActionDelete       = "delete"
)

// InitRepairPermissions loads the role hierarchy, the repair policies and the
// admin-only settings policies.
// Technicians inherit user rights and admins inherit technician rights.
func InitRepairPermissions(enforcer *casbin.Enforcer, log logger.Interface) error {
	user := authorization.RoleUser.String()
	technician := authorization.RoleTechnician.String()
	admin := authorization.RoleAdmin.String()

	policies := [][]string{
		// Everyone may file, read and edit; ownership is checked per request
		{user, ResourceRepair, ActionRead},
		{user, ResourceRepair, ActionCreate},
		{user, ResourceRepair, ActionUpdate},

		{technician, ResourceRepair, ActionUpdateStatus},

		{admin, ResourceRepair, ActionDelete},
		{admin, ResourceSetting, ActionRead},
		{admin, ResourceSetting, ActionUpdate},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			log.Errorw("failed to add repair permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	groupings := [][]string{
		{technician, user},
		{admin, technician},
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g); err != nil {
			return fmt.Errorf("failed to add role inheritance %s -> %s: %w", g[0], g[1], err)
		}
	}

	log.Infow("repair permissions initialized", "policies", len(policies))
	return nil
}
