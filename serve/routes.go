package serve

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/promptserve/chain"
	apperrors "github.com/kbukum/promptserve/errors"
	"github.com/kbukum/promptserve/logger"
	"github.com/kbukum/promptserve/server"
	"github.com/kbukum/promptserve/sse"
	"github.com/kbukum/promptserve/validation"
)

// HeaderRunID echoes the run id of invoke and stream responses.
const HeaderRunID = "X-Run-Id"

// keepAliveInterval stays below common proxy idle timeouts.
const keepAliveInterval = 15 * time.Second

type handler struct {
	runnable chain.Runnable
	log      *logger.Logger
}

// AddRoutes registers the pipeline route family for r under path
// (for example "/essay").
func AddRoutes(router gin.IRouter, path string, r chain.Runnable, log *logger.Logger) {
	h := &handler{runnable: r, log: log.WithComponent("serve")}
	g := router.Group("/" + strings.Trim(path, "/"))
	g.POST("/invoke", h.invoke)
	g.POST("/batch", h.batch)
	g.POST("/stream", h.stream)
	g.GET("/input_schema", h.inputSchema)
	g.GET("/output_schema", h.outputSchema)

	h.log.Debug("pipeline routes registered", logger.Fields("pipeline", r.Name(), "path", g.BasePath()))
}

// bind decodes the JSON body into dst and validates it.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.InvalidInput("body", "request body must be a JSON object: "+err.Error()).WithCause(err)
	}
	return validation.Validate(dst)
}

func (h *handler) invoke(c *gin.Context) {
	var req InvokeRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	runID := uuid.NewString()
	ctx := logger.ContextWithRunID(c.Request.Context(), runID)
	c.Header(HeaderRunID, runID)

	out, err := h.runnable.Invoke(ctx, req.Input)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, InvokeResponse{Output: out, Metadata: Metadata{RunID: runID}})
}

func (h *handler) batch(c *gin.Context) {
	var req BatchRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	runIDs := make([]string, len(req.Inputs))
	for i := range runIDs {
		runIDs[i] = uuid.NewString()
	}

	out, err := chain.Batch(c.Request.Context(), h.runnable, req.Inputs, chain.WithRunIDs(runIDs))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, BatchResponse{Output: out, Metadata: BatchMetadata{RunIDs: runIDs}})
}

func (h *handler) stream(c *gin.Context) {
	var req InvokeRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	runID := uuid.NewString()
	ctx := logger.ContextWithRunID(c.Request.Context(), runID)
	log := h.log.WithContext(ctx)

	chunks, err := h.runnable.Stream(ctx, req.Input)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	c.Header(HeaderRunID, runID)
	w, err := sse.NewWriter(c.Writer)
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	if err := w.Event(sse.EventMetadata, Metadata{RunID: runID}); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("stream client disconnected", logger.Fields("pipeline", h.runnable.Name()))
			return
		case <-keepAlive.C:
			if err := w.KeepAlive(); err != nil {
				return
			}
		case chunk, ok := <-chunks:
			if !ok {
				_ = w.Event(sse.EventEnd, nil)
				return
			}
			if chunk.Err != nil {
				_ = w.Event(sse.EventError, apperrors.Wrap(chunk.Err).ToResponse())
				return
			}
			data, err := json.Marshal(chunk.Output)
			if err != nil {
				_ = w.Event(sse.EventError, apperrors.Internal(err).ToResponse())
				return
			}
			if err := w.Event(sse.EventData, data); err != nil {
				log.Debug("stream write failed", logger.ErrorFields("stream", err))
				return
			}
		}
	}
}

func (h *handler) inputSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.runnable.InputSchema())
}

func (h *handler) outputSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.runnable.OutputSchema())
}
