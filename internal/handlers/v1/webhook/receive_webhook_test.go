package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/payment-webhook-service/internal/service"
)

// mockWebhookService is a mock for webhookIngestor.
type mockWebhookService struct {
	mock.Mock
}

func (m *mockWebhookService) Ingest(ctx context.Context, hook service.Webhook) (service.IngestOutcome, error) {
	args := m.Called(ctx, hook)
	return args.Get(0).(service.IngestOutcome), args.Error(1)
}

// newTestAPI registers the handler against a humatest API and returns it.
func newTestAPI(t *testing.T, svc webhookIngestor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewReceiveWebhookHandler(svc).Register(api)
	return api
}

func validBody() ReceiveWebhookBody {
	return ReceiveWebhookBody{
		TransactionID:      "txn_abc123def456",
		SourceAccount:      "acc_user_789",
		DestinationAccount: "acc_merchant_456",
		Amount:             "1500",
		Currency:           "INR",
	}
}

func TestHTTP_ReceiveWebhook_Accepted(t *testing.T) {
	mockSvc := new(mockWebhookService)
	mockSvc.On("Ingest", mock.Anything, mock.MatchedBy(func(hook service.Webhook) bool {
		return hook.TransactionID == "txn_abc123def456" &&
			hook.SourceAccount == "acc_user_789" &&
			hook.DestinationAccount == "acc_merchant_456" &&
			hook.Amount.Equal(decimal.RequireFromString("1500")) &&
			hook.Currency == "INR"
	})).Return(service.IngestAccepted, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/webhooks/transactions", validBody())

	assert.Equal(t, http.StatusAccepted, resp.Code)
	var body WebhookResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Transaction accepted for processing", body.Message)
	assert.Equal(t, "txn_abc123def456", body.TransactionID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ReceiveWebhook_DuplicateIsSuccess(t *testing.T) {
	mockSvc := new(mockWebhookService)
	mockSvc.On("Ingest", mock.Anything, mock.Anything).
		Return(service.IngestAlreadyKnown, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/webhooks/transactions", validBody())

	assert.Equal(t, http.StatusAccepted, resp.Code)
	var body WebhookResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Transaction already received", body.Message)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ReceiveWebhook_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockWebhookService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newTestAPI(t, mockSvc).Post("/v1/webhooks/transactions", ReceiveWebhookBody{
		TransactionID: "txn_1",
		// SourceAccount, DestinationAccount, Amount, Currency omitted
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Ingest")
}

func TestHTTP_ReceiveWebhook_InvalidAmount(t *testing.T) {
	mockSvc := new(mockWebhookService)

	// Amount is a plain string with no Huma format tag, so the handler
	// parses it and returns 400.
	body := validBody()
	body.Amount = "not-a-decimal"
	resp := newTestAPI(t, mockSvc).Post("/v1/webhooks/transactions", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Ingest")
}

func TestHTTP_ReceiveWebhook_NegativeAmount(t *testing.T) {
	mockSvc := new(mockWebhookService)
	mockSvc.On("Ingest", mock.Anything, mock.Anything).
		Return(service.IngestOutcome(0), &service.ValidationError{Field: "amount", Reason: "must be greater than zero"})

	body := validBody()
	body.Amount = "-5"
	resp := newTestAPI(t, mockSvc).Post("/v1/webhooks/transactions", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ReceiveWebhook_ServiceUnavailable(t *testing.T) {
	mockSvc := new(mockWebhookService)
	mockSvc.On("Ingest", mock.Anything, mock.Anything).
		Return(service.IngestOutcome(0), &service.UnavailableError{Op: "transactions.insert"})

	resp := newTestAPI(t, mockSvc).Post("/v1/webhooks/transactions", validBody())

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
