package controllers

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/leadgen"
	"github.com/propnest/PropNest/internal/pkg/mail"
	"github.com/propnest/PropNest/internal/pkg/metrics/counter"
)

const (
	hubModeSubscribe = "subscribe"

	webhookAckBody          = "EVENT_RECEIVED"
	webhookForbiddenBody    = "Forbidden"
	webhookBadSignatureBody = "Forbidden - Invalid signature"

	webhookSignatureHeader = "X-Hub-Signature-256"
)

// leadPipeline is what the webhook endpoints work against: the handshake and
// signing config plus the dispatcher feeding the workers.
type leadPipeline struct {
	cfg        leadgen.Config
	dispatcher *leadgen.Dispatcher
}

var (
	leadPipelineMu sync.RWMutex
	leadIngest     *leadPipeline
)

// InitLeadPipeline builds the ingestion service against the global
// repositories, starts the dispatcher workers and installs the pipeline for
// the webhook handlers.
func InitLeadPipeline() {
	cfg := leadgen.ConfigFromEnv()
	if !cfg.Complete() {
		log.Warn("[Webhook] pipeline secrets incomplete; deliveries will be rejected")
	}

	svc := leadgen.NewService(
		repository.GetGlobalRepositories().Lead,
		leadgen.NewGraphClient(cfg),
		mail.NewLeadNotifierFromEnv(),
	)
	dispatcher := leadgen.NewDispatcher(svc, cfg)
	dispatcher.Start()

	SetLeadPipeline(cfg, dispatcher)
}

// SetLeadPipeline swaps the pipeline used by the webhook handlers and stops
// the previous dispatcher, if any.
func SetLeadPipeline(cfg leadgen.Config, dispatcher *leadgen.Dispatcher) {
	leadPipelineMu.Lock()
	old := leadIngest
	leadIngest = &leadPipeline{cfg: cfg, dispatcher: dispatcher}
	leadPipelineMu.Unlock()

	if old != nil && old.dispatcher != nil {
		old.dispatcher.Stop()
	}
}

// ShutdownLeadPipeline stops the dispatcher and unregisters the pipeline.
func ShutdownLeadPipeline() {
	leadPipelineMu.Lock()
	old := leadIngest
	leadIngest = nil
	leadPipelineMu.Unlock()

	if old != nil && old.dispatcher != nil {
		old.dispatcher.Stop()
	}
}

func getLeadPipeline() *leadPipeline {
	leadPipelineMu.RLock()
	defer leadPipelineMu.RUnlock()
	return leadIngest
}

// HandleWebhookVerify answers the provider's one-time subscription
// handshake: echo the challenge when mode and verify token match, otherwise
// 403. The tokens themselves are never logged.
func HandleWebhookVerify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	p := getLeadPipeline()
	if p == nil {
		log.Error("[Webhook] verification requested before pipeline init")
		return c.Status(fiber.StatusForbidden).SendString(webhookForbiddenBody)
	}

	if mode == hubModeSubscribe && p.cfg.VerifyToken != "" && token == p.cfg.VerifyToken {
		log.Info("[Webhook] subscription verified")
		return c.Status(fiber.StatusOK).SendString(challenge)
	}

	log.Warnf("[Webhook] verification rejected (mode=%q)", mode)
	return c.Status(fiber.StatusForbidden).SendString(webhookForbiddenBody)
}

// HandleWebhookDeliver accepts one signed delivery. The exact raw body bytes
// are captured before any parsing and the signature is verified on those
// bytes; a re-serialized body would false-reject. Once the signature passes
// the provider always gets its 200 acknowledgment, whatever happens to the
// delivery afterwards.
func HandleWebhookDeliver(c *fiber.Ctx) error {
	counter.Bump(counter.FieldReceived)

	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get(webhookSignatureHeader))

	p := getLeadPipeline()
	if p == nil {
		log.Error("[Webhook] delivery received before pipeline init")
		return c.Status(fiber.StatusForbidden).SendString(webhookBadSignatureBody)
	}

	if err := leadgen.VerifyWebhookSignature(rawBody, signature, p.cfg.AppSecret); err != nil {
		// Log carries the failure category only, never digest material.
		log.Warnf("[Webhook] delivery rejected: %v", err)
		counter.Bump(counter.FieldSignatureRejects)
		return c.Status(fiber.StatusForbidden).SendString(webhookBadSignatureBody)
	}

	envelope := new(leadgen.WebhookEnvelope)
	if err := json.Unmarshal(rawBody, envelope); err != nil {
		log.Errorf("[Webhook] signed delivery with unparseable body: %v", err)
		counter.Bump(counter.FieldParseFailures)
		envelope = nil
	}

	if envelope != nil {
		p.dispatcher.Enqueue(envelope)
	}

	counter.Bump(counter.FieldAcknowledged)
	return c.Status(fiber.StatusOK).SendString(webhookAckBody)
}
