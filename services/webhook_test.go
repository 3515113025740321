package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"community-wins-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "whsec_test"

func newWebhookFixture(t *testing.T) (*WebhookService, *gorm.DB) {
	db := openTestDB(t)
	return NewWebhookService(db, NewUserService(db), testSecret), db
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func seedUser(t *testing.T, db *gorm.DB, userID string, points int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: "seed",
		Role:     models.RoleMember,
		Points:   points,
		Badge:    BadgeTierFor(points),
	}).Error)
}

func TestValidateSignature(t *testing.T) {
	svc, _ := newWebhookFixture(t)
	body := []byte(`{"event":"user.created","data":{"user":{"id":"u1"}}}`)

	assert.True(t, svc.ValidateSignature(body, sign(testSecret, body)))
	assert.True(t, svc.ValidateSignature(body, "sha256="+sign(testSecret, body)))
	assert.False(t, svc.ValidateSignature(body, sign("wrong-secret", body)))
	assert.False(t, svc.ValidateSignature(body, ""))
	assert.False(t, svc.ValidateSignature([]byte("tampered"), sign(testSecret, body)))
}

func TestValidateSignature_FailsClosedWithoutSecret(t *testing.T) {
	db := openTestDB(t)
	svc := NewWebhookService(db, NewUserService(db), "")
	body := []byte(`{}`)
	assert.False(t, svc.ValidateSignature(body, sign("", body)))
}

func TestClassifyPayload_Shapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind string
	}{
		{"event envelope", `{"event":"user.created","data":{"user":{"id":"u1","username":"a"}}}`, EventUserCreated},
		{"type envelope", `{"type":"user.updated","data":{"user":{"id":"u1","username":"b"}}}`, EventUserUpdated},
		{"direct user object", `{"user":{"id":"u1","username":"c"}}`, EventUserUpdated},
		{"direct payment fields", `{"user_id":"u1","final_amount":12.5}`, EventPaymentSucceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := ClassifyPayload([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, event.Kind)
		})
	}
}

func TestClassifyPayload_UnrecognizedShapeRejected(t *testing.T) {
	_, err := ClassifyPayload([]byte(`{"something":"else"}`))
	require.Error(t, err)

	_, err = ClassifyPayload([]byte(`not json`))
	require.Error(t, err)
}

func TestClassifyPayload_UnknownIdentifierPassesThrough(t *testing.T) {
	event, err := ClassifyPayload([]byte(`{"event":"membership.went_valid","data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "membership.went_valid", event.Kind)
}

func TestDispatch_UserCreated(t *testing.T) {
	svc, db := newWebhookFixture(t)

	event, err := ClassifyPayload([]byte(`{"event":"user.created","data":{"user":{"id":"user_1","username":"abby"}}}`))
	require.NoError(t, err)
	svc.Dispatch(event)

	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "user_1").Error)
	assert.Equal(t, "abby", user.Username)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.EqualValues(t, 0, user.Points)
	assert.Equal(t, BadgeInitiate, user.Badge)
}

func TestDispatch_UserCreatedConvergesWithExistingRecord(t *testing.T) {
	svc, db := newWebhookFixture(t)
	seedUser(t, db, "user_1", 150)

	event, err := ClassifyPayload([]byte(`{"event":"user.created","data":{"user":{"id":"user_1","username":"abby"}}}`))
	require.NoError(t, err)
	svc.Dispatch(event)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", "user_1").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The existing record keeps its points.
	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "user_1").Error)
	assert.EqualValues(t, 150, user.Points)
}

func TestDispatch_UserDeletedFlagsWithoutRemoving(t *testing.T) {
	svc, db := newWebhookFixture(t)
	seedUser(t, db, "user_1", 50)

	event, err := ClassifyPayload([]byte(`{"event":"user.deleted","data":{"user":{"id":"user_1"}}}`))
	require.NoError(t, err)
	svc.Dispatch(event)

	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "user_1").Error)
	assert.Equal(t, models.UserStatusDeleted, user.Status)
}

func TestDispatch_PaymentAwardsFlooredPointsAdditively(t *testing.T) {
	svc, db := newWebhookFixture(t)
	seedUser(t, db, "user_1", 40)

	event, err := ClassifyPayload([]byte(`{"event":"payment.succeeded","data":{"user_id":"user_1","final_amount":25.50,"currency":"usd"}}`))
	require.NoError(t, err)
	svc.Dispatch(event)

	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "user_1").Error)
	// floor(25.50 * 10) = 255, added to the pre-event total of 40.
	assert.EqualValues(t, 295, user.Points)
	assert.Equal(t, BadgeOperator, user.Badge)
}

func TestDispatch_PaymentForUnknownUserCreatesRecord(t *testing.T) {
	svc, db := newWebhookFixture(t)

	event, err := ClassifyPayload([]byte(`{"event":"payment.succeeded","data":{"user_id":"user_new","final_amount":3.2}}`))
	require.NoError(t, err)
	svc.Dispatch(event)

	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "user_new").Error)
	assert.EqualValues(t, 32, user.Points)
}

func TestDispatch_UnrecognizedEventIgnored(t *testing.T) {
	svc, db := newWebhookFixture(t)
	seedUser(t, db, "user_1", 10)

	svc.Dispatch(&WebhookEvent{Kind: "membership.went_valid"})

	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "user_1").Error)
	assert.EqualValues(t, 10, user.Points)
}
