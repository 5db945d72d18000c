package kafka

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnwcoord/repeater-qa/internal/delta"
	"github.com/pnwcoord/repeater-qa/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	ch, err := domain.NewChannel("K7LED", "Tiger Mtn", "146.82", "146.22")
	require.NoError(t, err)

	observed := time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)
	msg, err := serializeToMessage(delta.Change{
		Action:   delta.ActionAdded,
		Channel:  ch,
		Comments: []string{"WRONG OFFSET K7LED out 146.8200 in +0.6000"},
	}, observed)
	require.NoError(t, err)

	assert.Equal(t, []byte("146.82000/146.22000"), msg.Key)
	assert.Contains(t, string(msg.Value), `"action":"added"`)
	assert.Contains(t, string(msg.Value), `"call":"K7LED"`)
	assert.Contains(t, string(msg.Value), `"output_freq":"146.82"`)
	assert.Contains(t, string(msg.Value), `"observed_at":"2026-08-24T09:30:00Z"`)
	assert.Contains(t, string(msg.Value), "WRONG OFFSET")

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "action", msg.Headers[0].Key)
	assert.Equal(t, []byte(delta.ActionAdded), msg.Headers[0].Value)
	assert.Equal(t, "call", msg.Headers[1].Key)
	assert.Equal(t, []byte("K7LED"), msg.Headers[1].Value)
}

func TestSerializeToMessage_FMProgrammingDefaults(t *testing.T) {
	ch, err := domain.NewChannel("K7LED", "Tiger Mtn", "146.82", "146.22")
	require.NoError(t, err)
	ch.Modes = []string{domain.ModeFM}

	// A toneless FM record publishes the conventional placeholders.
	msg, err := serializeToMessage(delta.Change{Action: delta.ActionAdded, Channel: ch}, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(msg.Value), `"tone":"88.5"`)
	assert.Contains(t, string(msg.Value), `"code":"D023NN"`)

	ch.InputTone = decimal.RequireFromString("103.5")
	ch.InputCode = "047"
	msg, err = serializeToMessage(delta.Change{Action: delta.ActionAdded, Channel: ch}, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(msg.Value), `"tone":"103.5"`)
	assert.Contains(t, string(msg.Value), `"code":"D047NN"`)
}

func TestSerializeToMessage_NonFMCarriesNoProgrammingFields(t *testing.T) {
	ch, err := domain.NewChannel("WW7ATS", "Seattle", "1252", "434")
	require.NoError(t, err)

	msg, err := serializeToMessage(delta.Change{Action: delta.ActionAdded, Channel: ch}, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), `"tone"`)
	assert.NotContains(t, string(msg.Value), `"code"`)
}

func TestSerializeToMessage_RemovalHasNoComments(t *testing.T) {
	ch, err := domain.NewChannel("WW7PSR", "Seattle", "146.96", "146.36")
	require.NoError(t, err)

	msg, err := serializeToMessage(delta.Change{Action: delta.ActionRemoved, Channel: ch}, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), "comments")
}
