package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/usercontext"
)

// StaffBasicAuth guards the admin surface with HTTP Basic credentials checked
// against active admin staff accounts (email + bcrypt password hash). The
// password never appears in logs.
func StaffBasicAuth() fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm: "PropNest Admin",
		Authorizer: func(email, password string) bool {
			repo := repository.GetGlobalFactory().GetStaffUserRepository()
			staff, err := repo.GetByEmail(email)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					log.Errorf("admin auth lookup failed: %v", err)
				}
				return false
			}
			if !staff.IsActive() || !staff.IsAdmin() {
				return false
			}
			return staff.CheckPassword(password)
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="PropNest Admin"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Admin credentials required"})
		},
	})
}

// LoadStaffFromBasicAuth resolves the basicauth username into a full staff
// context for handlers behind StaffBasicAuth.
func LoadStaffFromBasicAuth(c *fiber.Ctx) error {
	email, ok := c.Locals("username").(string)
	if !ok || email == "" {
		return c.Next()
	}

	repo := repository.GetGlobalFactory().GetStaffUserRepository()
	staff, err := repo.GetByEmail(email)
	if err != nil {
		return c.Next()
	}

	usercontext.SetStaffContext(c, usercontext.StaffContext{
		StaffID:  staff.ID,
		Name:     staff.Name,
		Email:    staff.Email,
		IsAuthed: true,
		IsAdmin:  staff.IsAdmin(),
	})
	return c.Next()
}
