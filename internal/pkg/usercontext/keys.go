package usercontext

// Shared Locals keys used across controllers and middlewares
const (
	KeyStaffContext = "STAFF_CONTEXT"
	KeyStaffID      = "staff_id"
	KeyIsAdmin      = "is_admin"
)
