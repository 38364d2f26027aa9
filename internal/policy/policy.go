// Package policy centralizes role-based authorization. Every entry point
// (route middleware and service) consults Allowed so route-level and
// service-level checks cannot drift apart.
package policy

import "stackshack/internal/model"

// Action is something a principal may attempt.
type Action string

const (
	ActionCreateMenuItem Action = "menu.create"
	ActionUpdateMenuItem Action = "menu.update"
	ActionDeleteMenuItem Action = "menu.delete"
	ActionToggleMenuItem Action = "menu.toggle"
	ActionManageUsers    Action = "users.manage"
	ActionPlaceOrder     Action = "orders.place"
	ActionViewOwnOrders  Action = "orders.view_own"
)

var rules = map[Action][]string{
	ActionCreateMenuItem: {model.RoleAdmin, model.RoleStaff},
	ActionUpdateMenuItem: {model.RoleAdmin, model.RoleStaff},
	ActionDeleteMenuItem: {model.RoleAdmin},
	ActionToggleMenuItem: {model.RoleAdmin, model.RoleStaff},
	ActionManageUsers:    {model.RoleAdmin},
	ActionPlaceOrder:     {model.RoleAdmin, model.RoleStaff, model.RoleCustomer},
	ActionViewOwnOrders:  {model.RoleAdmin, model.RoleStaff, model.RoleCustomer},
}

// Allowed reports whether a principal with the given role may perform action.
// Unknown roles and unknown actions are always denied.
func Allowed(role string, action Action) bool {
	for _, allowed := range rules[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// Roles returns the roles permitted to perform action, for route middleware.
func Roles(action Action) []string {
	return rules[action]
}
