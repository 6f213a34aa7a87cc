package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/PropNest/app/controllers"
	"github.com/propnest/PropNest/internal/pkg/constants"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Component health for load balancers and uptime probes
	app.Get("/healthz", controllers.HandleHealthz)

	// Meta lead ads webhook (signature-verified in controller, no auth
	// middleware: GET is the subscription handshake, POST the delivery)
	app.Get(constants.LeadWebhookRoute, controllers.HandleWebhookVerify)
	app.Post(constants.LeadWebhookRoute, controllers.HandleWebhookDeliver)
}
