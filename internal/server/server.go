// Package server exposes generated terrain over a websocket endpoint:
// clients request chunks and biome lookups as JSON messages and receive
// zstd-compressed block arrays.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/internal/server/config"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/internal/server/protocol"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/internal/server/world"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain/gen"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

// Server is the terrain streaming server.
type Server struct {
	cfg   *config.Config
	log   *slog.Logger
	store *world.Store

	upgrader websocket.Upgrader
}

// New creates a Server with the given config and logger.
func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	g := gen.NewGenerator(cfg.Seed)
	store, err := world.NewStore(g, filepath.Join(cfg.DataDir, "chunks.db"), log)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:   cfg,
		log:   log,
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// Start pregenerates the configured radius, then serves websocket clients
// until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	defer s.store.Close()

	if s.cfg.PregenRadius > 0 {
		s.log.Info("pregenerating spawn region",
			"radius", s.cfg.PregenRadius,
			"workers", s.cfg.PregenWorkers,
		)
		if err := s.store.Pregenerate(ctx, s.cfg.PregenRadius, s.cfg.PregenWorkers); err != nil {
			return err
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: s.cfg.ListenAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("server started",
		"addr", s.cfg.ListenAddr,
		"seed", s.cfg.Seed,
		"dataDir", s.cfg.DataDir,
	)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		s.log.Info("server shutting down")
		return nil
	}
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.log.Info("client connected", "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := make(chan []byte, 16)

	// Writer goroutine: the reader loop below never writes to the
	// connection directly.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case b, ok := <-out:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			cancel()
			return
		}
		s.dispatch(ctx, msg, out)
	}
}

// dispatch routes one client message and queues the reply. Sends give up
// when ctx ends: once the writer goroutine is gone nothing drains out, and
// an unconditional send would wedge the reader loop forever.
func (s *Server) dispatch(ctx context.Context, msg []byte, out chan<- []byte) {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		send(ctx, out, encodeError(protocol.CodeBadMessage, "unparseable payload"))
		return
	}

	switch base.Type {
	case protocol.TypeChunkRequest:
		var req protocol.ChunkRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			send(ctx, out, encodeError(protocol.CodeBadMessage, "malformed chunk request"))
			return
		}
		frame, err := s.store.Compressed(req.CX, req.CZ)
		if err != nil {
			s.log.Error("serve chunk", "cx", req.CX, "cz", req.CZ, "error", err)
			send(ctx, out, encodeError(protocol.CodeInternal, "chunk unavailable"))
			return
		}
		send(ctx, out, encode(protocol.ChunkData{
			Type:            protocol.TypeChunkData,
			ProtocolVersion: protocol.Version,
			CX:              req.CX,
			CZ:              req.CZ,
			Size:            [3]int{terrain.SizeX, terrain.SizeY, terrain.SizeZ},
			Seed:            s.store.Generator().Seed(),
			Blocks:          base64.StdEncoding.EncodeToString(frame),
		}))

	case protocol.TypeBiomeRequest:
		var req protocol.BiomeRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			send(ctx, out, encodeError(protocol.CodeBadMessage, "malformed biome request"))
			return
		}
		g := s.store.Generator()
		send(ctx, out, encode(protocol.BiomeData{
			Type:            protocol.TypeBiomeData,
			ProtocolVersion: protocol.Version,
			X:               req.X,
			Z:               req.Z,
			Biome:           g.BiomeAt(req.X, req.Z).String(),
			Height:          g.HeightAt(req.X, req.Z),
		}))

	default:
		send(ctx, out, encodeError(protocol.CodeUnknownType, "unknown message type "+base.Type))
	}
}

// send queues one reply frame, dropping it if the connection is shutting down.
func send(ctx context.Context, out chan<- []byte, b []byte) {
	select {
	case <-ctx.Done():
	case out <- b:
	}
}

func encode(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

func encodeError(code, message string) []byte {
	return encode(protocol.ErrorMessage{Type: protocol.TypeError, Code: code, Message: message})
}
