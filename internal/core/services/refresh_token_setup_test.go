package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

func TestRefreshTokenSetup_Start(t *testing.T) {
	exchanger := &mockExchanger{}
	setup := NewRefreshTokenSetup(testSettings(), exchanger)

	authURL, state, err := setup.Start()

	require.NoError(t, err)
	assert.NotEmpty(t, state)
	assert.Equal(t, state, setup.State())
	assert.Equal(t, state, exchanger.authState)
	assert.Contains(t, authURL, state)
	assert.NotEmpty(t, exchanger.authChallenge)
}

func TestRefreshTokenSetup_Start_MissingCredentials(t *testing.T) {
	exchanger := &mockExchanger{}
	setup := NewRefreshTokenSetup(domain.YouTubeSettings{ClientID: "only-id"}, exchanger)

	_, _, err := setup.Start()

	assert.ErrorIs(t, err, domain.ErrMissingClientCredentials)
	assert.Empty(t, exchanger.authState)
}

func TestRefreshTokenSetup_Complete(t *testing.T) {
	exchanger := &mockExchanger{exchangeResult: "1//refresh"}
	setup := NewRefreshTokenSetup(testSettings(), exchanger)
	_, _, err := setup.Start()
	require.NoError(t, err)

	token, err := setup.Complete(context.Background(), "  4/0Acode \n")

	require.NoError(t, err)
	assert.Equal(t, "1//refresh", token)
	assert.Equal(t, "4/0Acode", exchanger.exchangeCode)
	assert.Equal(t, exchanger.authChallenge, generateCodeChallenge(exchanger.exchangeVerif),
		"verifier sent on exchange must match the challenge sent on start")
}

func TestRefreshTokenSetup_Complete_NoRefreshTokenIssued(t *testing.T) {
	setup := NewRefreshTokenSetup(testSettings(), &mockExchanger{})

	_, err := setup.Complete(context.Background(), "code")

	assert.ErrorIs(t, err, domain.ErrNoRefreshTokenIssued)
}

func TestRefreshTokenSetup_Complete_EmptyCode(t *testing.T) {
	exchanger := &mockExchanger{}
	setup := NewRefreshTokenSetup(testSettings(), exchanger)

	_, err := setup.Complete(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyAuthorizationCode)
	assert.Empty(t, exchanger.exchangeCode)
}

func TestRefreshTokenSetup_Complete_ExchangeError(t *testing.T) {
	exchanger := &mockExchanger{exchangeErr: errors.New("invalid_grant")}
	setup := NewRefreshTokenSetup(testSettings(), exchanger)

	_, err := setup.Complete(context.Background(), "code")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}
