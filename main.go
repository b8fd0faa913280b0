package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/mazeshare/api"
	api_i "github.com/beka-birhanu/mazeshare/api/i"
	"github.com/beka-birhanu/mazeshare/api/identity"
	mazeapi "github.com/beka-birhanu/mazeshare/api/maze"
	"github.com/beka-birhanu/mazeshare/config"
	"github.com/beka-birhanu/mazeshare/infrastruture/token"
	"github.com/beka-birhanu/mazeshare/render"
	"github.com/beka-birhanu/mazeshare/service"
	"github.com/beka-birhanu/mazeshare/service/i"
	"github.com/beka-birhanu/mazeshare/web"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/gin-gonic/gin"
)

// Global variables for dependencies
var (
	sessionManager *service.SessionManager
	jwtTokenizer   i.Tokenizer
	mazeController api_i.Controller
	router         *api.Router
	appLogger      general_i.Logger
)

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewSessionManager(&service.Config{
		MaxSessions: config.Envs.MaxSessions,
		TTL:         config.Envs.SessionTTL,
		Workspace: service.WorkspaceConfig{
			Width:      config.Envs.MazeWidth,
			Height:     config.Envs.MazeHeight,
			Layout:     render.DefaultLayout(),
			EdgeMargin: config.Envs.EdgeMargin,
		},
		Logger: sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initMazeController() {
	controllerLogger, err := logger.New("MAZE-API", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller logger: %v", err))
		os.Exit(1)
	}

	mazeController, err = mazeapi.NewMazeController(mazeapi.Config{
		Sessions:  sessionManager,
		Tokenizer: jwtTokenizer,
		TokenTTL:  config.Envs.SessionTTL,
		Logger:    controllerLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Page:                    web.Index,
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	gin.SetMode(config.Envs.GinMode)

	initJWTTokenizer()
	initSessionManager()
	initMazeController()
	initRouter(jwtTokenizer)

	go sessionManager.Maintain(ctx, time.Minute)

	server := router.Server()
	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info(fmt.Sprintf("Listening on %s", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(fmt.Sprintf("Starting server: %v", err))
			sessionManager.StopAll()
			os.Exit(1)
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(fmt.Sprintf("Shutting down server: %v", err))
	}
	sessionManager.StopAll()
}
