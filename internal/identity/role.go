// README: Staff roles and the claim-bag role resolver.
package identity

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleDelivery Role = "delivery"
	RoleChef     Role = "chef"
	// RoleGuest means authenticated but without a usable role claim.
	// It is a terminal state for the caller, not a permission level.
	RoleGuest Role = "guest"
)

// canonical maps the identity provider's role names to internal roles.
var canonical = map[string]Role{
	"administrador": RoleAdmin,
	"gerente":       RoleManager,
	"empleado":      RoleEmployee,
	"repartidor":    RoleDelivery,
}

// Resolve derives the caller's role from a decoded claim bag. The provider
// namespaces its roles claim (e.g. "https://buensabor/roles"), so the first
// key containing "roles" is used. Unrecognized role names pass through
// lower-cased; anything malformed degrades to RoleGuest, never an error.
//
// Every role check in the repo goes through this function. Do not duplicate
// the mapping table elsewhere.
func Resolve(claims map[string]interface{}) Role {
	if claims == nil {
		return RoleGuest
	}
	var list []interface{}
	for key, val := range claims {
		if !strings.Contains(key, "roles") {
			continue
		}
		if l, ok := val.([]interface{}); ok {
			list = l
		}
		break
	}
	if len(list) == 0 {
		return RoleGuest
	}
	raw, ok := list[0].(string)
	if !ok {
		return RoleGuest
	}
	lowered := strings.ToLower(raw)
	if role, ok := canonical[lowered]; ok {
		return role
	}
	return Role(lowered)
}
