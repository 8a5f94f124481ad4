package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

func TestValidateRequestReportsJSONFields(t *testing.T) {
	err := validateRequest(domain.TrackOrderRequest{SessionID: "s1"}, "orderId and sessionId are required")
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"orderId"}, verr.Fields)
	assert.Equal(t, "orderId and sessionId are required", verr.Error())

	assert.NoError(t, validateRequest(domain.ChatRequest{Message: "hi", SessionID: "s1"}, "unused"))
}
