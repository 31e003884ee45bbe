package bgp

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionNextMessageNeedsMoreData(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := &Connection{conn: server}

	_, err := c.NextMessage()
	assert.Equal(t, ErrNeedMoreData, err)
}

func TestConnectionSendThenNextMessage(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sender := &Connection{conn: client}
	receiver := &Connection{conn: server}

	done := make(chan error, 1)
	go func() { done <- sender.Send(Keepalive{}) }()

	var msg Message
	var err error
	for i := 0; i < 50; i++ {
		msg, err = receiver.NextMessage()
		if err != ErrNeedMoreData {
			break
		}
	}
	require.NoError(t, err)
	assert.Equal(t, Keepalive{}, msg)
	require.NoError(t, <-done)
}

func TestConnectionCloseCausesReceiveFailed(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	receiver := &Connection{conn: server}
	client.Close()

	_, err := receiver.NextMessage()
	require.Error(t, err)
	_, isReceiveFailed := err.(*ReceiveFailedError)
	assert.True(t, isReceiveFailed)
}
