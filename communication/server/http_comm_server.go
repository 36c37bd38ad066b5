package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"lighthouses/communication"
	"lighthouses/game"
	"lighthouses/meta"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

//go:generate mockgen -destination=../mocks/mock_turn_handler.go -package=mocks lighthouses/communication/server TurnHandler

// TurnHandler answers the coordinator's calls for one player session.
type TurnHandler interface {
	ReceiveInitialState(state game.InitialState) (bool, error)
	ReceiveTurn(turn game.Turn) (game.Action, error)
}

type ServerCommunicator struct {
	handler TurnHandler
	workers *semaphore.Weighted
	router  *mux.Router
}

// NewServerCommunicator initializes and returns a new ServerCommunicator.
func NewServerCommunicator(handler TurnHandler) *ServerCommunicator {
	sc := &ServerCommunicator{
		handler: handler,
		workers: semaphore.NewWeighted(meta.MAX_WORKERS),
		router:  mux.NewRouter(),
	}
	sc.router.Use(logCalls, sc.limitWorkers)
	sc.router.HandleFunc("/initial-state", sc.handleInitialState).Methods(http.MethodPost)
	sc.router.HandleFunc("/turn", sc.handleTurn).Methods(http.MethodPost)
	return sc
}

func (sc *ServerCommunicator) Handler() http.Handler {
	return sc.router
}

// Serve answers calls on l until ctx is cancelled, then drains in-flight calls.
func (sc *ServerCommunicator) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           sc.router,
		ReadHeaderTimeout: meta.TURN_DEADLINE,
		WriteTimeout:      2 * meta.TURN_DEADLINE,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("starting to listen on %s", l.Addr())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (sc *ServerCommunicator) handleInitialState(w http.ResponseWriter, r *http.Request) {
	var state communication.InitialState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	log.Info().Msg("receiving initial state")
	log.Debug().Interface("state", state).Msg("initial state")

	ready, err := sc.handler.ReceiveInitialState(state.Game())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, communication.PlayerReady{Ready: ready})
}

func (sc *ServerCommunicator) handleTurn(w http.ResponseWriter, r *http.Request) {
	var payload communication.Turn
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	log.Debug().Interface("turn", payload).Msg("turn")

	turn, err := payload.Game()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	action, err := sc.handler.ReceiveTurn(turn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, communication.FromAction(action))
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	if errors.Is(err, communication.ErrNotReady) {
		status = http.StatusConflict
	}
	log.Warn().Err(err).Int("status", status).Msg("call failed")
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response: "+err.Error(), http.StatusInternalServerError)
	}
}

func (sc *ServerCommunicator) limitWorkers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sc.workers.Acquire(r.Context(), 1); err != nil {
			http.Error(w, "call cancelled while queued", http.StatusServiceUnavailable)
			return
		}
		defer sc.workers.Release(1)
		next.ServeHTTP(w, r)
	})
}
