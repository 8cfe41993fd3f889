// utils/permissions.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// Action names every role-restricted workflow operation. All permission
// decisions go through Can so the role rules live in exactly one place.
type Action string

const (
	ActionCreateList      Action = "queue:create_list"
	ActionRegisterWalkIn  Action = "queue:register_walkin"
	ActionViewQueue       Action = "queue:view"
	ActionOpenExamination Action = "examination:open"
	ActionPrescribe       Action = "examination:prescribe"
	ActionRecordDiagnosis Action = "examination:diagnose"
	ActionViewHistory     Action = "history:view"
	ActionBill            Action = "billing:bill"
	ActionViewInvoices    Action = "billing:view"
	ActionManageCatalog   Action = "catalog:manage"
	ActionUpdateRules     Action = "rules:update"
	ActionViewReports     Action = "reports:view"
)

var rolePermissions = map[string]map[Action]bool{
	"nurse": {
		ActionCreateList:      true,
		ActionRegisterWalkIn:  true,
		ActionViewQueue:       true,
		ActionOpenExamination: true,
	},
	"doctor": {
		ActionViewQueue:       true,
		ActionPrescribe:       true,
		ActionRecordDiagnosis: true,
		ActionViewHistory:     true,
	},
	"cashier": {
		ActionBill:         true,
		ActionViewInvoices: true,
	},
}

// Can reports whether a role may perform an action. Admin may do everything.
func Can(role string, action Action) bool {
	if role == "admin" {
		return true
	}
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[action]
}

// RequireAction gates a route group on Can. It runs after AuthMiddleware,
// which puts the role claim in the context.
func RequireAction(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(401, gin.H{"error": "Role not found in context"})
			return
		}
		role, ok := raw.(string)
		if !ok || !Can(role, action) {
			c.AbortWithStatusJSON(403, gin.H{"error": "Not allowed for this role"})
			return
		}
		c.Next()
	}
}
