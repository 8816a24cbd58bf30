package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xpanvictor/quickpost/internal/domains/conversation"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

// WebSocketHandler serves the interactive voice assistant
type WebSocketHandler struct {
	logger            *Logger.Logger
	gaz               *gazetteer.Gazetteer
	tts               Synthesizer
	sessions          conversation.SessionRepository
	config            conversation.Config
	connectionManager *ConnectionManager
	upgrader          websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocket handler. sessions may be nil,
// in which case conversations cannot be resumed after a disconnect.
func NewWebSocketHandler(
	logger *Logger.Logger,
	gaz *gazetteer.Gazetteer,
	tts Synthesizer,
	sessions conversation.SessionRepository,
	config conversation.Config,
	sessionTimeout time.Duration,
) *WebSocketHandler {
	return &WebSocketHandler{
		logger:            logger,
		gaz:               gaz,
		tts:               tts,
		sessions:          sessions,
		config:            config,
		connectionManager: NewConnectionManager(logger, sessionTimeout),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers WebSocket routes
func (h *WebSocketHandler) RegisterRoutes(router gin.IRouter) {
	ws := router.Group("/ws")
	{
		ws.GET("/conversation", h.HandleConversation)
		ws.GET("/stats", h.HandleStats)
	}
}

// HandleConversation runs one voice conversation over the connection
// @Summary Voice assistant conversation
// @Description Upgrades to a WebSocket and asks for service, state, district and description
// @Tags Conversation
// @Param session query string false "Session id to resume"
// @Param lang query string false "Prompt language" default(en)
// @Success 101 "Switching protocols"
// @Router /ws/conversation [get]
func (h *WebSocketHandler) HandleConversation(c *gin.Context) {
	lang := c.DefaultQuery("lang", string(voice.LangEnglish))
	state, resumed := h.restore(c.Query("session"))
	if state.Language == "" {
		state.Language = voice.LanguageCode(lang)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	sessionID := ""
	if resumed {
		sessionID = c.Query("session")
	}
	session := NewSession(sessionID, conn, h.tts, string(state.Language), h.logger)

	deps := conversation.Deps{
		Gazetteer:  h.gaz,
		Speaker:    session,
		Listener:   session,
		Selections: session,
		Notifier:   session,
		Logger:     h.logger,
	}
	if h.sessions != nil {
		deps.Store = h.sessions
	}
	driver := conversation.NewDriver(session.SessionID, deps, h.config)

	h.connectionManager.RegisterConnection(session, driver)
	defer h.connectionManager.UnregisterConnection(session)

	if err := session.SendWebSocketMessage(MessageTypeInit, InitMessage{
		SessionID: session.SessionID,
		Resumed:   resumed,
		State:     state,
	}); err != nil {
		h.logger.Errorf("failed to send init: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.runConversation(ctx, session, driver, state)

	h.handleConnection(session, driver)
}

// restore loads an unfinished conversation.
func (h *WebSocketHandler) restore(sessionID string) (conversation.State, bool) {
	if sessionID == "" || h.sessions == nil {
		return conversation.State{}, false
	}
	st, ok, err := h.sessions.Load(sessionID)
	if err != nil {
		h.logger.Warnf("failed to load session %s: %v", sessionID, err)
		return conversation.State{}, false
	}
	if !ok || st.Complete() || st.Status == conversation.StatusFailed {
		return conversation.State{}, false
	}
	st.Status = conversation.StatusIdle
	return st, true
}

func (h *WebSocketHandler) runConversation(ctx context.Context, session *Session, driver *conversation.Driver, state conversation.State) {
	final, err := driver.Run(ctx, state)
	switch {
	case err == nil:
		job := final.Job()
		session.SendWebSocketMessage(MessageTypeDone, DoneMessage{State: final, Job: &job})
		if h.sessions != nil {
			if err := h.sessions.Delete(session.SessionID); err != nil {
				h.logger.Warnf("failed to delete finished session: %v", err)
			}
		}
	case errors.Is(err, conversation.ErrRetriesExhausted):
		session.SendWebSocketMessage(MessageTypeDone, DoneMessage{State: final})
	case errors.Is(err, conversation.ErrClosed), errors.Is(err, context.Canceled):
		h.logger.Debugf("conversation %s closed at step %d", session.SessionID, final.Index)
	default:
		h.logger.Errorf("conversation %s failed: %v", session.SessionID, err)
		session.SendError("CONVERSATION_ERROR", err.Error())
	}
}

// HandleStats provides connection statistics
func (h *WebSocketHandler) HandleStats(c *gin.Context) {
	stats := h.connectionManager.GetStats()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   stats,
	})
}

// handleConnection reads client messages until the connection ends or the
// client asks to close.
func (h *WebSocketHandler) handleConnection(session *Session, driver *conversation.Driver) {
	for {
		messageType, data, err := session.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Errorf("WebSocket read error: %v", err)
			} else {
				h.logger.Infof("WebSocket connection closed for session %s", session.SessionID)
			}
			return
		}

		session.UpdateLastActive()

		if messageType != websocket.TextMessage {
			session.SendError("UNSUPPORTED_MESSAGE", "Only JSON text messages are accepted")
			continue
		}
		if done := h.handleTextMessage(session, driver, data); done {
			return
		}
	}
}

// handleTextMessage dispatches one client message and reports whether the
// client closed the conversation.
func (h *WebSocketHandler) handleTextMessage(session *Session, driver *conversation.Driver, data []byte) bool {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.logger.Errorf("Failed to unmarshal WebSocket message: %v", err)
		session.SendError("INVALID_MESSAGE", "Invalid message format")
		return false
	}

	switch msg.Type {
	case MessageTypeSpeechEnd:
		var r SpeechReport
		if h.decode(session, msg, &r) {
			session.SpeechEnded(r.UtteranceID)
		}

	case MessageTypeSpeechError:
		var r SpeechReport
		if h.decode(session, msg, &r) {
			session.SpeechFailed(r.UtteranceID, r.Message)
		}

	case MessageTypeRecognitionResult:
		var r RecognitionResult
		if h.decode(session, msg, &r) {
			session.Recognized(r.Transcript, nil)
		}

	case MessageTypeRecognitionError:
		var r RecognitionErrorReport
		if h.decode(session, msg, &r) {
			session.Recognized("", &conversation.RecognitionError{Kind: r.Error, Message: r.Message})
		}

	case MessageTypeResume:
		driver.Resume()

	case MessageTypeClose:
		driver.Close()
		return true

	default:
		h.logger.Warnf("Unknown message type: %s", msg.Type)
		session.SendError("UNKNOWN_MESSAGE_TYPE", fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
	return false
}

func (h *WebSocketHandler) decode(session *Session, msg InboundMessage, v any) bool {
	if len(msg.Data) == 0 {
		session.SendError("INVALID_MESSAGE", fmt.Sprintf("%s requires data", msg.Type))
		return false
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		session.SendError("INVALID_MESSAGE", fmt.Sprintf("Invalid %s payload", msg.Type))
		return false
	}
	return true
}

// Close shuts down the WebSocket handler
func (h *WebSocketHandler) Close() error {
	return h.connectionManager.Close()
}
