package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"community-wins-system/models"
	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recognized platform event identifiers.
const (
	EventUserCreated      = "user.created"
	EventUserUpdated      = "user.updated"
	EventUserDeleted      = "user.deleted"
	EventPaymentSucceeded = "payment.succeeded"
)

// Dollars-to-points conversion for successful payments.
const pointsPerDollar = 10

// webhookUser is the platform's user object inside event data.
type webhookUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// webhookPayment is the platform's payment object inside event data.
type webhookPayment struct {
	UserID      string  `json:"user_id"`
	FinalAmount float64 `json:"final_amount"`
	Currency    string  `json:"currency"`
}

// WebhookEvent is the single classified form every inbound payload is reduced
// to at the boundary. Exactly one of User/Payment is set for recognized kinds.
type WebhookEvent struct {
	Kind    string
	User    *webhookUser
	Payment *webhookPayment
}

var errUnrecognizedShape = errors.New("payload matches no known webhook shape")

// WebhookService validates and dispatches inbound platform events into user
// directory mutations.
type WebhookService struct {
	DB     *gorm.DB
	Users  *UserService
	Secret string
}

func NewWebhookService(db *gorm.DB, users *UserService, secret string) *WebhookService {
	return &WebhookService{DB: db, Users: users, Secret: secret}
}

// ValidateSignature checks the HMAC-SHA256 hex signature over the raw body.
// Fails closed on a missing secret or header.
func (s *WebhookService) ValidateSignature(body []byte, signature string) bool {
	if s.Secret == "" || signature == "" {
		return false
	}
	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(s.Secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ClassifyPayload reduces a validated payload to one tagged event. Shapes are
// tried in order: {event, data}, {type, data}, then direct-data heuristics
// (a user object implies a user update, a user_id implies a payment). A
// payload matching none of them is rejected rather than silently ignored.
func ClassifyPayload(body []byte) (*WebhookEvent, error) {
	var envelope struct {
		Event string          `json:"event"`
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("webhook payload is not JSON: %w", err)
	}

	kind := envelope.Event
	if kind == "" {
		kind = envelope.Type
	}
	data := envelope.Data

	if kind == "" {
		// Direct-data heuristics on the raw body.
		var direct struct {
			User   *webhookUser `json:"user"`
			UserID string       `json:"user_id"`
		}
		if err := json.Unmarshal(body, &direct); err == nil {
			switch {
			case direct.User != nil && direct.User.ID != "":
				kind = EventUserUpdated
				data = body
			case direct.UserID != "":
				kind = EventPaymentSucceeded
				data = body
			}
		}
	}
	if kind == "" {
		return nil, errUnrecognizedShape
	}

	event := &WebhookEvent{Kind: kind}
	switch kind {
	case EventUserCreated, EventUserUpdated, EventUserDeleted:
		var payload struct {
			User *webhookUser `json:"user"`
		}
		if err := json.Unmarshal(data, &payload); err != nil || payload.User == nil || payload.User.ID == "" {
			return nil, fmt.Errorf("%s event carries no user object", kind)
		}
		event.User = payload.User
	case EventPaymentSucceeded:
		var payment webhookPayment
		if err := json.Unmarshal(data, &payment); err != nil || payment.UserID == "" {
			return nil, fmt.Errorf("%s event carries no user_id", kind)
		}
		event.Payment = &payment
	}
	return event, nil
}

// Dispatch routes a classified event to its handler. Handler errors are
// logged and swallowed so the platform never re-delivers; unrecognized
// identifiers are logged and ignored.
func (s *WebhookService) Dispatch(event *WebhookEvent) {
	var err error
	switch event.Kind {
	case EventUserCreated:
		err = s.handleUserCreated(event.User)
	case EventUserUpdated:
		err = s.handleUserUpdated(event.User)
	case EventUserDeleted:
		err = s.handleUserDeleted(event.User)
	case EventPaymentSucceeded:
		err = s.handlePaymentSucceeded(event.Payment)
	default:
		logger.Infof("unhandled webhook event: %s", event.Kind)
		return
	}
	if err != nil {
		logger.WithFields(logrus.Fields{"event": event.Kind, "error": err}).
			Error("webhook handler failed")
	}
}

func (s *WebhookService) handleUserCreated(user *webhookUser) error {
	username := user.Username
	if username == "" {
		username = DefaultUsername(user.ID)
	}
	record := models.User{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: username,
		Role:     models.RoleMember,
		Points:   0,
		Badge:    BadgeInitiate,
	}
	// First-auth may already have created the record; converge on it.
	return s.DB.Where("user_id = ?", user.ID).FirstOrCreate(&record).Error
}

func (s *WebhookService) handleUserUpdated(user *webhookUser) error {
	return s.Users.RefreshUsername(user.ID, user.Username)
}

func (s *WebhookService) handleUserDeleted(user *webhookUser) error {
	return s.Users.MarkDeleted(user.ID)
}

// handlePaymentSucceeded awards floor(final_amount * 10) points via an
// additive increment so concurrent payments cannot lose updates.
func (s *WebhookService) handlePaymentSucceeded(payment *webhookPayment) error {
	points := int64(math.Floor(payment.FinalAmount * pointsPerDollar))
	if points <= 0 {
		return nil
	}

	err := s.Users.AddPointsAdditive(payment.UserID, points)
	if appErr := apperrors.As(err); appErr != nil && appErr.Kind == apperrors.KindNotFound {
		// Payment for a user we have never seen: create the record, then award.
		if _, err := s.Users.UpsertFromIdentity(payment.UserID, ""); err != nil {
			return err
		}
		err = s.Users.AddPointsAdditive(payment.UserID, points)
	}
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"user_id": payment.UserID,
		"points":  points,
		"amount":  payment.FinalAmount,
	}).Info("payment points awarded")
	return nil
}
