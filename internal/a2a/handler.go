// Package a2a serves the avatar generator as an A2A agent over JSON-RPC.
package a2a

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed agent.json
var agentCard []byte

const (
	generationFailedMessage = "Avatar generation failed"
	missingInfoMessage      = "Please provide business info with industry, niche and businessType (b2b, b2c or both) to generate a customer avatar."
)

type Researcher interface {
	Aggregate(ctx context.Context, info models.BusinessInfo, mode models.GenerationMode) models.ResearchData
}

type Generator interface {
	Assemble(ctx context.Context, info models.BusinessInfo, research models.ResearchData, mode models.GenerationMode) (*models.Avatar, error)
}

type A2AHandler struct {
	research  Researcher
	generator Generator
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewA2AHandler(research Researcher, generator Generator, logger *zap.Logger) *A2AHandler {
	return &A2AHandler{
		research:  research,
		generator: generator,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Register mounts the agent card and the JSON-RPC endpoint.
func (h *A2AHandler) Register(r gin.IRouter) {
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	r.POST("/a2a/avatar", h.HandleAvatar)
}

func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", agentCard)
}

// HandleAvatar processes A2A messages
func (h *A2AHandler) HandleAvatar(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil || rpcReq.Method == "" {
		h.logger.Debug("not a JSON-RPC request, trying direct message", zap.Error(err))
		h.handleDirectMessage(c, body)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", zap.String("jsonrpc", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage accepts a bare MessageParams body without the
// JSON-RPC envelope.
func (h *A2AHandler) handleDirectMessage(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}
	h.sendSuccessResponse(c, "direct-message", h.run(c.Request.Context(), "direct-message", params.Message))
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var params MessageParams
	if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
		h.logger.Warn("invalid params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}
	h.sendSuccessResponse(c, rpcReq.ID, h.run(c.Request.Context(), rpcReq.ID, params.Message))
}

// run researches the business described in msg and assembles its avatar.
func (h *A2AHandler) run(ctx context.Context, taskID string, msg A2AMessage) TaskResult {
	info, mode, ok := extractBusinessInfo(msg)
	if !ok {
		h.logger.Info("no usable business info in message", zap.String("taskId", taskID))
		return h.statusOnlyResult(taskID, StateInputRequired, missingInfoMessage)
	}

	h.logger.Info("generating avatar",
		zap.String("taskId", taskID),
		zap.String("industry", info.Industry),
		zap.String("niche", info.Niche),
		zap.String("mode", string(mode)))

	research := h.research.Aggregate(ctx, info, mode)
	avatar, err := h.generator.Assemble(ctx, info, research, mode)
	if err != nil {
		h.logger.Error("avatar generation failed", zap.String("taskId", taskID), zap.Error(err))
		return h.statusOnlyResult(taskID, StateFailed, generationFailedMessage)
	}

	result, err := h.createSuccessTaskResult(taskID, avatar)
	if err != nil {
		h.logger.Error("failed to encode avatar artifact", zap.Error(err))
		return h.statusOnlyResult(taskID, StateFailed, generationFailedMessage)
	}
	return result
}

type businessRequest struct {
	BusinessInfo *models.BusinessInfo  `json:"businessInfo"`
	Mode         models.GenerationMode `json:"mode"`
}

// extractBusinessInfo reads the first part that decodes to usable business
// info. Data parts are tried before text parts.
func extractBusinessInfo(msg A2AMessage) (models.BusinessInfo, models.GenerationMode, bool) {
	var candidates [][]byte
	for _, part := range msg.Parts {
		if part.Kind == "data" && len(part.Data) > 0 {
			candidates = append(candidates, part.Data)
		}
	}
	for _, part := range msg.Parts {
		if part.Kind == "text" {
			text := strings.TrimSpace(part.Text)
			text = strings.TrimSuffix(strings.TrimPrefix(text, "<p>"), "</p>")
			if strings.HasPrefix(text, "{") {
				candidates = append(candidates, []byte(text))
			}
		}
	}

	for _, raw := range candidates {
		var req businessRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}
		info := req.BusinessInfo
		if info == nil {
			info = &models.BusinessInfo{}
			if err := json.Unmarshal(raw, info); err != nil {
				continue
			}
		}
		if !usable(*info) {
			continue
		}
		mode := req.Mode
		if !mode.Valid() {
			mode = models.ModeQuick
		}
		return *info, mode, true
	}
	return models.BusinessInfo{}, "", false
}

func usable(info models.BusinessInfo) bool {
	switch info.BusinessType {
	case models.BusinessTypeB2B, models.BusinessTypeB2C, models.BusinessTypeBoth:
	default:
		return false
	}
	return info.Industry != "" && info.Niche != ""
}

func (h *A2AHandler) createSuccessTaskResult(taskID string, avatar *models.Avatar) (TaskResult, error) {
	summary := formatAvatarSummary(avatar)
	data, err := DataPart(avatar)
	if err != nil {
		return TaskResult{}, err
	}

	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: models.Timestamp(h.now()),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: h.newID(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(summary)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: h.newID(),
				Name:       "Customer Avatar",
				Parts:      []MessagePart{data},
			},
			{
				ArtifactID: h.newID(),
				Name:       "Customer Avatar Summary",
				Parts:      []MessagePart{TextPart(summary)},
			},
		},
	}, nil
}

func (h *A2AHandler) statusOnlyResult(taskID, state, text string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: models.Timestamp(h.now()),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: h.newID(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func formatAvatarSummary(a *models.Avatar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Name)
	if a.Narrative != "" {
		fmt.Fprintf(&b, "%s\n\n", a.Narrative)
	}

	d := a.Demographics
	b.WriteString("**Demographics:**\n")
	fmt.Fprintf(&b, "- Age: %d-%d\n", d.AgeRange.Min, d.AgeRange.Max)
	fmt.Fprintf(&b, "- Gender: %s\n", d.Gender)
	if len(d.Locations) > 0 {
		fmt.Fprintf(&b, "- Locations: %s\n", strings.Join(d.Locations, ", "))
	}
	fmt.Fprintf(&b, "- Income: %d-%d %s\n", d.IncomeRange.Min, d.IncomeRange.Max, d.IncomeRange.Currency)
	if len(d.Occupations) > 0 {
		fmt.Fprintf(&b, "- Occupations: %s\n", strings.Join(d.Occupations, ", "))
	}

	if len(a.PainPoints) > 0 {
		b.WriteString("\n**Pain Points:**\n")
		for _, p := range a.PainPoints {
			fmt.Fprintf(&b, "- %s (%s)\n", strings.TrimSpace(p.Description), p.Severity)
		}
	}
	if len(a.Goals) > 0 {
		b.WriteString("\n**Goals:**\n")
		for _, g := range a.Goals {
			fmt.Fprintf(&b, "- %s (%s)\n", strings.TrimSpace(g.Description), g.Timeframe)
		}
	}
	if len(a.Objections) > 0 {
		b.WriteString("\n**Objections:**\n")
		for _, o := range a.Objections {
			fmt.Fprintf(&b, "- %s: %s\n", strings.TrimSpace(o.Description), o.CounterArgument)
		}
	}

	fmt.Fprintf(&b, "\nOverall confidence: %.0f%%\n", a.OverallConfidence*100)
	return b.String()
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  &result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
