package mazeapi

import (
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beka-birhanu/mazeshare/api/identity"
	"github.com/beka-birhanu/mazeshare/editor"
	"github.com/beka-birhanu/mazeshare/encoder"
	"github.com/beka-birhanu/mazeshare/maze"
	"github.com/beka-birhanu/mazeshare/play"
	"github.com/beka-birhanu/mazeshare/render"
	"github.com/beka-birhanu/mazeshare/service"
	"github.com/beka-birhanu/mazeshare/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	exportFileName = "maze.txt"
	maxImportSize  = 1 << 20
)

var (
	errInvalidInput   = errors.New("invalid input")
	errMissingPointer = errors.New("missing pointer event")
)

// MazeController serves editing sessions over HTTP.
type MazeController struct {
	sessions  i.SessionManager
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
	logger    general_i.Logger
	upgrader  websocket.Upgrader
}

// Config holds the dependencies of a MazeController.
type Config struct {
	Sessions  i.SessionManager
	Tokenizer i.Tokenizer
	TokenTTL  time.Duration // Lifetime of issued session tokens
	Logger    general_i.Logger
}

// NewMazeController initializes a MazeController.
func NewMazeController(c Config) (*MazeController, error) {
	if c.Sessions == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, errors.New("maze controller needs sessions, tokenizer and logger")
	}
	return &MazeController{
		sessions:  c.Sessions,
		tokenizer: c.Tokenizer,
		tokenTTL:  c.TokenTTL,
		logger:    c.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", mc.createSession)
}

// RegisterProtected registers routes that need the session token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	session := route.Group("/sessions/:ID")
	{
		session.GET("", mc.status)
		session.DELETE("", mc.deleteSession)
		session.POST("/token", mc.refreshToken)
		session.GET("/render.png", mc.renderPNG)
		session.POST("/pointer", mc.pointer)
		session.POST("/key", mc.key)
		session.POST("/mode", mc.mode)
		session.POST("/reset", mc.reset)
		session.GET("/export", mc.export)
		session.POST("/import", mc.importMaze)
		session.GET("/ws", mc.stream)
	}
}

// createSession starts a session and hands out its token.
func (mc *MazeController) createSession(ctx *gin.Context) {
	var request CreateSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	id, ws, err := mc.sessions.NewSession(request.Width, request.Height)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	token, err := identity.IssueSessionToken(mc.tokenizer, id, mc.tokenTTL)
	if err != nil {
		mc.logger.Error(fmt.Sprintf("Signing token for session %s: %v", id, err))
		_ = mc.sessions.Remove(id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating session"})
		return
	}

	ctx.JSON(http.StatusCreated, &SessionResponse{
		ID:        id.String(),
		Token:     token,
		ExpiresIn: int64(mc.tokenTTL / time.Second),
		Status:    ws.Status(),
	})
}

func (mc *MazeController) status(ctx *gin.Context) {
	_, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, ws.Status())
}

func (mc *MazeController) deleteSession(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := mc.sessions.Remove(id); err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// refreshToken issues a fresh token for a session the caller already holds.
func (mc *MazeController) refreshToken(ctx *gin.Context) {
	id, _, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	token, err := identity.IssueSessionToken(mc.tokenizer, id, mc.tokenTTL)
	if err != nil {
		mc.logger.Error(fmt.Sprintf("Refreshing token for session %s: %v", id, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while signing token"})
		return
	}
	ctx.JSON(http.StatusOK, &TokenPayload{Token: token, ExpiresIn: int64(mc.tokenTTL / time.Second)})
}

func (mc *MazeController) renderPNG(ctx *gin.Context) {
	_, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	data, err := ws.RenderPNG()
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "image/png", data)
}

func (mc *MazeController) pointer(ctx *gin.Context) {
	_, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	var request PointerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := applyPointer(ws, &request)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &PointerResponse{Changed: changed, Status: ws.Status()})
}

func (mc *MazeController) key(ctx *gin.Context) {
	_, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	var request KeyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := ws.KeyPress(request.Key)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &KeyResponse{Outcome: outcome.String(), Status: ws.Status()})
}

func (mc *MazeController) mode(ctx *gin.Context) {
	_, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	var request ModeRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := applyMode(ws, request.Mode); err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ws.Status())
}

func (mc *MazeController) reset(ctx *gin.Context) {
	_, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	var request ResetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ws.Reset(request.Width, request.Height); err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ws.Status())
}

func (mc *MazeController) export(ctx *gin.Context) {
	_, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}
	token, err := ws.Export()
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	if ctx.Query("download") == "true" {
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName))
		ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(token))
		return
	}
	ctx.JSON(http.StatusOK, &TokenPayload{Token: token})
}

// importMaze accepts a JSON body or a multipart upload in the "file" field.
func (mc *MazeController) importMaze(ctx *gin.Context) {
	id, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}

	token, err := importedToken(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ws.Import(token); err != nil {
		mc.logger.Warning(fmt.Sprintf("Rejected import for session %s: %v", id, err))
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ws.Status())
}

func importedToken(ctx *gin.Context) (string, error) {
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		header, err := ctx.FormFile("file")
		if err != nil {
			return "", err
		}
		file, err := header.Open()
		if err != nil {
			return "", err
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var request TokenPayload
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return "", err
	}
	return request.Token, nil
}

// workspace resolves the :ID parameter, replying with an error when it cannot.
func (mc *MazeController) workspace(ctx *gin.Context) (uuid.UUID, i.Workspace, bool) {
	id, ok := sessionID(ctx)
	if !ok {
		return uuid.Nil, nil, false
	}
	ws, err := mc.sessions.Session(id)
	if err != nil {
		mc.fail(ctx, err)
		return uuid.Nil, nil, false
	}
	return id, ws, true
}

func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

func (mc *MazeController) fail(ctx *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		mc.logger.Error(fmt.Sprintf("%s %s: %v", ctx.Request.Method, ctx.FullPath(), err))
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrClosed):
		return http.StatusNotFound
	case errors.Is(err, service.ErrWrongMode):
		return http.StatusConflict
	case errors.Is(err, service.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, encoder.ErrMalformedToken),
		errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, play.ErrUnknownKey),
		errors.Is(err, errInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func applyPointer(ws i.Workspace, request *PointerRequest) (bool, error) {
	if request == nil {
		return false, fmt.Errorf("%w: %w", errInvalidInput, errMissingPointer)
	}
	p := image.Pt(request.X, request.Y)

	switch request.Kind {
	case "down":
		button, err := editor.ParseButton(request.Button)
		if err != nil {
			return false, fmt.Errorf("%w: %w", errInvalidInput, err)
		}
		return ws.PointerDown(p, button)
	case "move":
		return ws.PointerMove(p)
	case "up":
		ws.PointerUp()
		return false, nil
	case "leave":
		ws.PointerLeave()
		return false, nil
	default:
		return false, fmt.Errorf("%w: unknown pointer event %q", errInvalidInput, request.Kind)
	}
}

func applyMode(ws i.Workspace, name string) error {
	if name == "" {
		ws.ToggleMode()
		return nil
	}
	mode, err := render.ParseMode(name)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidInput, err)
	}
	ws.SetMode(mode)
	return nil
}
