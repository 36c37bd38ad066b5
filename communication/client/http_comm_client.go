package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lighthouses/communication"
	"lighthouses/game"
)

// ClientCommunicator talks to the coordinator on behalf of the player.
type ClientCommunicator struct {
	serverURL string
	http      *http.Client
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
// A bare host:port is treated as an http URL.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	if !strings.Contains(serverURL, "://") {
		serverURL = "http://" + serverURL
	}
	return &ClientCommunicator{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{},
	}
}

func (cc *ClientCommunicator) Join(ctx context.Context, name, callbackAddress string) (game.PlayerID, error) {
	data, err := json.Marshal(communication.JoinRequest{Name: name, ServerAddress: callbackAddress})
	if err != nil {
		return 0, fmt.Errorf("failed to encode join request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.serverURL+"/join", bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to build join request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cc.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to join: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("coordinator returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var joined communication.JoinResponse
	if err := json.NewDecoder(resp.Body).Decode(&joined); err != nil {
		return 0, fmt.Errorf("failed to decode join response: %w", err)
	}
	return game.PlayerID(joined.PlayerID), nil
}
