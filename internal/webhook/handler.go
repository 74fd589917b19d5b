// Package webhook receives inbound events from the WhatsApp gateway,
// authenticates them against the shared secret, and hands recognized
// messages to the command dispatcher.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/wa-bridge/internal/identity"
)

// Dispatcher consumes one normalized inbound message. Implementations must
// not return errors; command failures are their business to report.
type Dispatcher interface {
	HandleMessage(ctx context.Context, sender, text string, isSelf bool)
}

// inboundEvent is the slice of the gateway payload the bridge consumes.
// Everything else passes through to the event log untouched.
type inboundEvent struct {
	From    string `json:"from"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
	IsSelf bool `json:"is_self"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Handler serves the webhook and log endpoints.
type Handler struct {
	secret     string
	eventLog   *EventLog
	dispatcher Dispatcher
}

// NewHandler creates a Handler verifying against secret.
func NewHandler(secret string, eventLog *EventLog, dispatcher Dispatcher) *Handler {
	return &Handler{
		secret:     secret,
		eventLog:   eventLog,
		dispatcher: dispatcher,
	}
}

// RegisterRoutes mounts the webhook endpoints on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/webhook", h.HandleWebhook)
	r.Get("/logs", h.HandleLogs)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// HandleWebhook authenticates and processes one inbound event. Only auth
// and decode failures produce non-200 responses; once the payload is
// verified and parsed, the gateway always gets an acknowledgment no matter
// what command handling does.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "failed to read body"})
		return
	}
	defer r.Body.Close()

	if err := VerifySignature(body, r.Header.Get(SignatureHeader), h.secret); err != nil {
		if errors.Is(err, ErrMissingSignature) {
			log.Warn().Msg("webhook: no signature provided")
			writeJSON(w, http.StatusForbidden, statusResponse{Status: "error", Message: "No signature provided"})
			return
		}
		log.Warn().Msg("webhook: invalid signature")
		writeJSON(w, http.StatusForbidden, statusResponse{Status: "error", Message: "Invalid signature"})
		return
	}

	var event inboundEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Warn().Err(err).Msg("webhook: invalid JSON payload")
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "Invalid JSON payload"})
		return
	}

	h.eventLog.Append(json.RawMessage(body))

	if err := h.process(r.Context(), event); err != nil {
		log.Error().Err(err).Msg("webhook: processing fault")
		writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "Webhook received"})
}

// process normalizes the sender and dispatches. A panic out of command
// handling is converted into an error so the HTTP response still goes out.
func (h *Handler) process(ctx context.Context, event inboundEvent) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic during dispatch: %v", rec)
		}
	}()

	sender, ok := identity.Normalize(event.From)
	if !ok || event.Message.Text == "" {
		log.Debug().Str("from", event.From).Msg("webhook: non-message event or incomplete message data")
		return nil
	}

	log.Info().
		Str("sender", sender).
		Bool("is_self", event.IsSelf).
		Msg("webhook: new message")
	h.dispatcher.HandleMessage(ctx, sender, event.Message.Text, event.IsSelf)
	return nil
}

// HandleLogs returns every recorded payload as a JSON array in insertion
// order.
func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	events := h.eventLog.Events()
	if events == nil {
		events = []json.RawMessage{}
	}
	writeJSON(w, http.StatusOK, events)
}
