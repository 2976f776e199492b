package cnst

// Action represents an operation gated by the authorization predicate
type Action string

const (
	// ActionView represents any read operation
	ActionView Action = "view"
	// ActionCreate represents creating agents and leads
	ActionCreate Action = "create"
	// ActionClaim represents claiming a lead
	ActionClaim Action = "claim"
	// ActionReverseClaim represents releasing a claimed lead
	ActionReverseClaim Action = "reverse_claim"
	// ActionDelete represents deleting agents and leads
	ActionDelete Action = "delete"
	// ActionManageUsers represents system user administration
	ActionManageUsers Action = "manage_users"
	// ActionManageSettings represents company settings administration
	ActionManageSettings Action = "manage_settings"
)
