// Package devserver serves the quiz over plain websockets for local development,
// standing in for API Gateway.
package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jbarratt/rpsquiz/game"
	"github.com/jbarratt/rpsquiz/notify"
	"github.com/jbarratt/rpsquiz/service"
)

const connIDLength = 12

// Server upgrades /ws requests and feeds every text frame to the quiz service
type Server struct {
	quiz     *service.QuizSvc
	hub      *notify.Hub
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// New returns a dev server. Any origin is accepted.
func New(quiz *service.QuizSvc, hub *notify.Hub, log *slog.Logger) *Server {
	return &Server{
		quiz: quiz,
		hub:  hub,
		log:  log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler routes /ws to the websocket endpoint and /healthz to a liveness check
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/ws", s.serveWS)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "err", err)
		return
	}
	connID, err := game.GenerateRandomString(connIDLength)
	if err != nil {
		s.log.Error("unable to generate connection id", "err", err)
		conn.Close()
		return
	}

	log := s.log.With("connection", connID)
	s.hub.Register(connID, conn)
	log.Info("connected", "remote", c.ClientIP())

	// quizzes started or played on this connection are dropped when it closes
	quizzes := map[string]struct{}{}
	defer func() {
		s.hub.Unregister(connID)
		conn.Close()
		ids := make([]string, 0, len(quizzes))
		for id := range quizzes {
			ids = append(ids, id)
		}
		s.quiz.Forget(context.Background(), ids...)
		log.Info("disconnected", "quizzes", len(ids))
	}()

	for {
		kind, body, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read failed", "err", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		state, _ := s.quiz.Dispatch(c.Request.Context(), s.hub, connID, body)
		if state != nil && ownsQuiz(body) {
			quizzes[state.QuizID] = struct{}{}
		}
	}
}

// ownsQuiz reports whether the frame started or changed a quiz. Looking a
// quiz up with "state" does not tie it to the connection.
func ownsQuiz(body []byte) bool {
	message := service.PlayerMessage{}
	if err := json.Unmarshal(body, &message); err != nil {
		return false
	}
	return message.Mutates()
}
