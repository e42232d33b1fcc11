package model

// Role is the permission level stored on a user record and copied into the session.
// Values other than the constants below pass through unchanged from cpanel_users.role.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleOperator   Role = "operator"
)

// EntityKind identifies one of the configuration entity families counted on the dashboard.
type EntityKind string

const (
	EntityModules      EntityKind = "modules"
	EntityProtocols    EntityKind = "protocols"
	EntityAPIEndpoints EntityKind = "api_endpoints"
	EntityChannels     EntityKind = "channels"
)

// EntityKinds lists every counted kind in dashboard display order.
var EntityKinds = []EntityKind{
	EntityModules,
	EntityProtocols,
	EntityAPIEndpoints,
	EntityChannels,
}

// StatusTone classifies a status panel entry for display.
type StatusTone string

const (
	ToneOK    StatusTone = "ok"
	ToneWarn  StatusTone = "warn"
	ToneError StatusTone = "error"
)

// Valid reports whether t is one of the known tones.
func (t StatusTone) Valid() bool {
	switch t {
	case ToneOK, ToneWarn, ToneError:
		return true
	}
	return false
}
