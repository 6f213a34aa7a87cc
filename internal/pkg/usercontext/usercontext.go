package usercontext

import "github.com/gofiber/fiber/v2"

// StaffContext represents the authenticated staff identity for a request
type StaffContext struct {
	StaffID  uint   `json:"staff_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsAuthed bool   `json:"is_authed"`
	IsAdmin  bool   `json:"is_admin"`
}

// GetStaffContext retrieves the staff context from fiber context
// Returns a default anonymous context if none is set
func GetStaffContext(c *fiber.Ctx) StaffContext {
	if ctx := c.Locals(KeyStaffContext); ctx != nil {
		return ctx.(StaffContext)
	}
	return StaffContext{IsAuthed: false, IsAdmin: false}
}

// SetStaffContext stores the staff identity on the request
func SetStaffContext(c *fiber.Ctx, staff StaffContext) {
	c.Locals(KeyStaffContext, staff)
	c.Locals(KeyStaffID, staff.StaffID)
	c.Locals(KeyIsAdmin, staff.IsAdmin)
}

// IsAuthed checks if the current request carries an authenticated staff user
func IsAuthed(c *fiber.Ctx) bool {
	return GetStaffContext(c).IsAuthed
}

// IsAdmin checks if the current staff user has the admin role
func IsAdmin(c *fiber.Ctx) bool {
	return GetStaffContext(c).IsAdmin
}

// GetStaffID returns the current staff user's ID, or 0 if not authenticated
func GetStaffID(c *fiber.Ctx) uint {
	return GetStaffContext(c).StaffID
}
