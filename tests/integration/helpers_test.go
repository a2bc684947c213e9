//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	wsmsg "github.com/gokatarajesh/mindquest/pkg/http/ws"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func dialQuizWS(t *testing.T) *websocket.Conn {
	t.Helper()

	baseWS := envOrDefault("INTEGRATION_WS_URL", "ws://localhost:8080/ws/quiz")
	conn, _, err := websocket.DefaultDialer.Dial(baseWS, nil)
	if err != nil {
		t.Fatalf("dial quiz websocket failed: %v", err)
	}
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()

	msg, err := wsmsg.NewMessage(msgType, payload)
	if err != nil {
		t.Fatalf("build %s message: %v", msgType, err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("send %s message: %v", msgType, err)
	}
}

// readMessage waits for the next message of the given type, skipping others.
func readMessage(t *testing.T, conn *websocket.Conn, msgType string, timeout time.Duration) wsmsg.Message {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			t.Fatalf("set read deadline: %v", err)
		}
		var msg wsmsg.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s message: %v", msgType, err)
		}
		if msg.Type == msgType {
			return msg
		}
	}
}

// readState waits for a state message that satisfies match.
func readState(t *testing.T, conn *websocket.Conn, timeout time.Duration, match func(wsmsg.StatePayload) bool) wsmsg.StatePayload {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		msg := readMessage(t, conn, wsmsg.TypeState, time.Until(deadline))
		var state wsmsg.StatePayload
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			t.Fatalf("decode state payload: %v", err)
		}
		if match(state) {
			return state
		}
	}
	t.Fatal("timed out waiting for matching state")
	return wsmsg.StatePayload{}
}
