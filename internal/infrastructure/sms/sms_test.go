package sms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSend(t *testing.T) {
	off := NewService(&Config{Enabled: false}, zap.NewNop())
	assert.False(t, off.Send(context.Background(), "+2250700000000", "test"))

	on := NewService(&Config{Enabled: true, Sender: "QUALITE"}, zap.NewNop())
	assert.True(t, on.Send(context.Background(), "+2250700000000", "test"))
	assert.False(t, on.Send(context.Background(), " ", "test"))
}
