package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lighthouses/communication"
	"lighthouses/communication/mocks"
	"lighthouses/game"
	"lighthouses/meta"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleInitialState(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := mocks.NewMockTurnHandler(ctrl)
	sc := NewServerCommunicator(handler)

	handler.EXPECT().ReceiveInitialState(game.InitialState{
		Player:      2,
		PlayerCount: 3,
		Position:    game.Position{X: 0, Y: 14},
		Map:         [][]bool{{true, true}, {true, false}},
		Lighthouses: []game.Position{{X: 1, Y: 0}},
	}).Return(true, nil)

	rec := post(t, sc.Handler(), "/initial-state",
		`{"playerId":2,"playerCount":3,"position":{"x":0,"y":14},"map":[[true,true],[true,false]],"lighthouses":[{"x":1,"y":0}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ready":true}`, rec.Body.String())
}

func TestHandleTurn(t *testing.T) {
	t.Run("answers with the chosen action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := mocks.NewMockTurnHandler(ctrl)
		sc := NewServerCommunicator(handler)

		owner := 1
		body, err := json.Marshal(communication.Turn{
			Position: &communication.Position{X: 0, Y: 0},
			Energy:   10,
			Lighthouses: []communication.Lighthouse{
				{Position: communication.Position{X: 0, Y: 0}, Energy: 3},
				{Position: communication.Position{X: 4, Y: 4}, Owner: &owner, HaveKey: true, Connections: []communication.Position{{X: 0, Y: 0}}},
			},
		})
		require.NoError(t, err)

		handler.EXPECT().ReceiveTurn(game.Turn{
			Position: game.Position{X: 0, Y: 0},
			Energy:   10,
			Lighthouses: []game.Lighthouse{
				{Position: game.Position{X: 0, Y: 0}, Owner: game.Unowned, Energy: 3, Connections: []game.Position{}},
				{Position: game.Position{X: 4, Y: 4}, Owner: 1, HaveKey: true, Connections: []game.Position{{X: 0, Y: 0}}},
			},
		}).Return(game.Attack(game.Position{X: 0, Y: 0}, 4), nil)

		rec := post(t, sc.Handler(), "/turn", string(body))

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"action":"attack","destination":{"x":0,"y":0},"energy":4}`, rec.Body.String())
	})

	t.Run("omits energy from moves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := mocks.NewMockTurnHandler(ctrl)
		sc := NewServerCommunicator(handler)
		handler.EXPECT().ReceiveTurn(gomock.Any()).Return(game.Move(game.Position{X: 1, Y: 0}), nil)

		rec := post(t, sc.Handler(), "/turn", `{"position":{"x":0,"y":0},"energy":1,"lighthouses":[]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"action":"move","destination":{"x":1,"y":0}}`, rec.Body.String())
	})

	t.Run("rejects a turn without a position", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sc := NewServerCommunicator(mocks.NewMockTurnHandler(ctrl))

		rec := post(t, sc.Handler(), "/turn", `{"energy":10,"lighthouses":[]}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), communication.ErrMissingPosition.Error())
	})

	t.Run("rejects undecodable bodies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sc := NewServerCommunicator(mocks.NewMockTurnHandler(ctrl))

		rec := post(t, sc.Handler(), "/turn", `{"position":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("surfaces decision errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := mocks.NewMockTurnHandler(ctrl)
		sc := NewServerCommunicator(handler)
		handler.EXPECT().ReceiveTurn(gomock.Any()).Return(game.Action{}, errors.New("malformed turn: off the board"))

		rec := post(t, sc.Handler(), "/turn", `{"position":{"x":99,"y":0}}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "off the board")
	})

	t.Run("reports calls before the session exists as conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := mocks.NewMockTurnHandler(ctrl)
		sc := NewServerCommunicator(handler)
		handler.EXPECT().ReceiveTurn(gomock.Any()).Return(game.Action{}, communication.ErrNotReady)

		rec := post(t, sc.Handler(), "/turn", `{"position":{"x":0,"y":0}}`)

		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("only accepts POST", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sc := NewServerCommunicator(mocks.NewMockTurnHandler(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/turn", nil)
		rec := httptest.NewRecorder()
		sc.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

// blockingHandler counts concurrent turns and holds each one until released.
type blockingHandler struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	release  chan struct{}
}

func (h *blockingHandler) ReceiveInitialState(game.InitialState) (bool, error) { return true, nil }

func (h *blockingHandler) ReceiveTurn(turn game.Turn) (game.Action, error) {
	n := h.inFlight.Add(1)
	defer h.inFlight.Add(-1)
	for {
		peak := h.peak.Load()
		if n <= peak || h.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	<-h.release
	return game.Move(turn.Position), nil
}

func TestWorkerLimit(t *testing.T) {
	h := &blockingHandler{release: make(chan struct{})}
	sc := NewServerCommunicator(h)

	calls := 3 * meta.MAX_WORKERS
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			post(t, sc.Handler(), "/turn", `{"position":{"x":0,"y":0}}`)
		}()
	}

	require.Eventually(t, func() bool {
		return h.inFlight.Load() == meta.MAX_WORKERS
	}, time.Second, time.Millisecond)
	close(h.release)
	wg.Wait()

	require.Equal(t, int32(meta.MAX_WORKERS), h.peak.Load())
}

func TestServe(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := mocks.NewMockTurnHandler(ctrl)
	handler.EXPECT().ReceiveTurn(game.Turn{Position: game.Position{X: 1, Y: 2}, Lighthouses: []game.Lighthouse{}}).
		Return(game.Move(game.Position{X: 2, Y: 2}), nil)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServerCommunicator(handler).Serve(ctx, l) }()

	resp, err := http.Post("http://"+l.Addr().String()+"/turn", "application/json",
		bytes.NewReader([]byte(`{"position":{"x":1,"y":2}}`)))
	require.NoError(t, err)
	var action communication.Action
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&action))
	resp.Body.Close()
	require.Equal(t, game.Move(game.Position{X: 2, Y: 2}), action.Game())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
