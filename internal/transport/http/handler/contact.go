package handler

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/Abaaza/wallmastersbackend/internal/email"
	"github.com/gin-gonic/gin"
)

// ContactHandler forwards contact-form submissions to the shop inbox.
type ContactHandler struct {
	sender email.Sender
	inbox  string
	logger *slog.Logger
}

func NewContactHandler(sender email.Sender, inbox string, logger *slog.Logger) (*ContactHandler, error) {
	if inbox == "" {
		return nil, errors.New("contact inbox not configured")
	}
	return &ContactHandler{
		sender: sender,
		inbox:  inbox,
		logger: logger.With("component", "contact_handler"),
	}, nil
}

type contactRequest struct {
	Name    string `json:"name"    binding:"required,max=256"`
	Email   string `json:"email"   binding:"required,email"`
	Comment string `json:"comment" binding:"required,max=4096"`
}

// POST /send-email
func (h *ContactHandler) Send(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	body := fmt.Sprintf(
		"<p>You have a new message from your contact form:</p><p>Name: %s<br>Email: %s<br>Comment: %s</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(req.Comment),
	)
	subject := "New Contact Form Submission from " + req.Name

	if err := h.sender.Send(c.Request.Context(), h.inbox, subject, body); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "send contact email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Email sending failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully!"})
}
