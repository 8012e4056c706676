package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ai-gateway/chat-relay/internal/logging"
	"github.com/ai-gateway/chat-relay/internal/provider"
)

const (
	errMethodNotAllowed = "Method not allowed"
	errMessagesRequired = "Messages array is required"
	errInternal         = "Internal server error"
)

func (s *Server) chat(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.AbortWithStatus(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": errMethodNotAllowed})
		return
	}

	messages, service, ok := parseChatBody(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessagesRequired})
		return
	}

	reply, err := s.router.ProviderFor(service).Reply(c.Request.Context(), messages)
	if err != nil {
		logging.FromContext(c.Request.Context(), s.logger).Error("chat request failed",
			"service", service, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// parseChatBody extracts messages and service from a JSON object body.
// It reports false unless messages is present and a JSON array. A service
// that is missing or not a string yields "", which selects the default.
func parseChatBody(c *gin.Context) (provider.Conversation, string, bool) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, "", false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, "", false
	}
	raw, ok := fields["messages"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, "", false
	}
	var messages provider.Conversation
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, "", false
	}
	var service string
	if rawService, ok := fields["service"]; ok {
		_ = json.Unmarshal(rawService, &service)
	}
	return messages, service, true
}
