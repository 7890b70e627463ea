package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/agent"
	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

// ContentStudio is the part of the studio the agent talks to.
type ContentStudio interface {
	Products() []models.Product
	Generate(ctx context.Context, in studio.GenerateInput) (generator.Result, error)
}

type A2AHandler struct {
	studio ContentStudio
	logger *zap.Logger
}

func NewA2AHandler(s ContentStudio, log *zap.Logger) *A2AHandler {
	return &A2AHandler{
		studio: s,
		logger: log.Named("A2A"),
	}
}

// HandleContent processes A2A messages
func (h *A2AHandler) HandleContent(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.logger.Debug("Raw request body", zap.ByteString("body", bodyBytes))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil {
		h.logger.Warn("Failed to decode request as JSON-RPC", zap.Error(err))
		h.sendErrorResponse(c, nil, "Parse error", CodeParseError)
		return
	}

	// Some callers post the message params without the JSON-RPC envelope.
	if rpcReq.JSONRPC == "" && rpcReq.Method == "" {
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("Invalid JSON-RPC version", zap.String("jsonrpc", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("Unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a message without the JSON-RPC wrapper
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.sendErrorResponse(c, nil, "Invalid request format", CodeInvalidRequest)
		return
	}

	result := h.process(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, result.ID, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if len(rpcReq.Params) == 0 {
		h.sendErrorResponse(c, rpcReq.ID, "Missing parameters", CodeInvalidParams)
		return
	}
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.logger.Warn("Failed to unmarshal params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.process(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// process turns one user message into a task result.
func (h *A2AHandler) process(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}

	req := extractRequest(msg)
	if req.listProducts {
		return h.createSuccessTaskResult(taskID, msg.ContextID, "Catalog Products", h.formatProducts(), nil)
	}

	if req.input.ProductID == "" {
		h.logger.Info("No product in message, asking for input", zap.String("task_id", taskID))
		return h.createTaskResult(taskID, msg.ContextID, StateInputRequired,
			"Please tell me which product to write about, for example \"product: aura_helena, platform: instagram, type: promocional, tone: elegante, length: medio\".\n\n"+h.formatProducts())
	}

	h.logger.Info("Generating content",
		zap.String("task_id", taskID),
		zap.String("product_id", req.input.ProductID),
		zap.String("content_type", req.input.ContentType),
		zap.String("tone", req.input.Tone),
		zap.String("length", req.input.Length),
	)

	res, err := h.studio.Generate(ctx, req.input)
	if err != nil {
		h.logger.Warn("Content generation failed", zap.String("task_id", taskID), zap.Error(err))
		if errors.Is(err, studio.ErrProductNotFound) {
			return h.createTaskResult(taskID, msg.ContextID, StateFailed,
				fmt.Sprintf("Unknown product %q.\n\n%s", req.input.ProductID, h.formatProducts()))
		}
		return h.createTaskResult(taskID, msg.ContextID, StateFailed,
			fmt.Sprintf("Failed to generate content: %v", err))
	}

	data := map[string]any{
		"product_id": req.input.ProductID,
		"words":      res.Words,
		"characters": res.Chars,
		"band":       res.Band,
		"shortfall":  res.Shortfall,
	}
	return h.createSuccessTaskResult(taskID, msg.ContextID, "Generated Content", res.Content, data)
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.Error("Error loading agent card", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID, name, text string, data map[string]any) TaskResult {
	parts := []MessagePart{TextPart(text)}
	if data != nil {
		parts = append(parts, DataPart(data))
	}

	result := h.createTaskResult(taskID, contextID, StateCompleted, text)
	result.Artifacts = []Artifact{
		{
			ArtifactID: uuid.NewString(),
			Name:       name,
			Parts:      parts,
		},
	}
	return result
}

func (h *A2AHandler) createTaskResult(taskID, contextID, state, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func (h *A2AHandler) formatProducts() string {
	var builder strings.Builder
	builder.WriteString("**Available products:**\n")
	for _, p := range h.studio.Products() {
		builder.WriteString(fmt.Sprintf("- %s: %s (%s)\n", p.ID, p.Name, p.Category))
	}
	return builder.String()
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id any, result TaskResult) {
	h.logger.Info("Sending task result",
		zap.String("task_id", result.ID),
		zap.String("state", result.Status.State),
	)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK.
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id any, message string, code int) {
	h.logger.Warn("Sending RPC error", zap.Int("code", code), zap.String("message", message))
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
	})
}
