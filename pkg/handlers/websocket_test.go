package handlers_test

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func dialWebSocket(t *testing.T, f *fixture) *websocket.Conn {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			f.game.HandleWebSocket(ctx)
		},
	}
	go server.Serve(ln)
	t.Cleanup(func() { ln.Close() })

	dialer := websocket.Dialer{
		NetDial: func(network, addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}

	conn, _, err := dialer.Dial("ws://board/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) (string, map[string]interface{}) {
	t.Helper()

	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg.Type, msg.Data
}

func TestWebSocketClientGetsSnapshotFirst(t *testing.T) {
	f := newFixture(t)
	f.game.OpenQuestion(postCtx(`{"categoryIndex": 0, "questionIndex": 0}`))

	conn := dialWebSocket(t, f)

	msgType, data := readMessage(t, conn)
	assert.Equal(t, "state", msgType)
	assert.Len(t, data["answeredQuestions"].([]interface{}), 1)
}

func TestWebSocketBroadcastsFollowSnapshot(t *testing.T) {
	f := newFixture(t)

	conn := dialWebSocket(t, f)

	msgType, _ := readMessage(t, conn)
	require.Equal(t, "state", msgType)

	// a buzz pushes the sound event and then the refreshed state, all
	// written by the hub loop onto the same connection
	f.game.TriggerBuzzer(postCtx(""))

	msgType, data := readMessage(t, conn)
	assert.Equal(t, "buzzer", msgType)
	assert.Equal(t, "/sounds/buzzer.mp3", data["sound"])
	assert.NotEmpty(t, data["eventId"])

	msgType, data = readMessage(t, conn)
	assert.Equal(t, "state", msgType)
	assert.Equal(t, true, data["buzzerActive"])
}
