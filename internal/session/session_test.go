package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasAPIKey(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.HasAPIKey())
	assert.False(t, (&Session{UserID: "u"}).HasAPIKey())
	assert.True(t, (&Session{UserID: "u", APIKey: "k"}).HasAPIKey())
}

func TestState(t *testing.T) {
	assert.Equal(t, StateConfigurationRequired, (&Session{}).State())
	assert.Equal(t, StateReady, (&Session{APIKey: "k"}).State())
}

func TestStaticProvider(t *testing.T) {
	sess := &Session{UserID: "user-1", APIKey: "k"}
	p := NewStaticProvider(sess)

	got, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	got, err = p.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, p.SignOut(context.Background()))
}
