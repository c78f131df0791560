package server

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tkbvnedu/internal/config"
	"tkbvnedu/internal/server/handlers"
	"tkbvnedu/internal/service/excel"
	"tkbvnedu/internal/store"
	"tkbvnedu/internal/subject"
)

const readHeaderTimeout = 10 * time.Second

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
	logger   *zap.Logger
}

// New 创建服务器；history 为空时不记录转换历史与设置
// 存储的生命周期由调用方管理
func New(cfg *config.AppConfig, mappings subject.Store, history *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.L()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.NewHandlers(handlers.Options{
		Mappings: mappings,
		History:  history,
		Writer: excel.NewWriter(excel.WriterOptions{
			SheetName: cfg.Export.SheetName,
			FontName:  cfg.Export.FontName,
		}),
		FilePrefix: cfg.Export.FilePrefix,
		Logger:     logger,
	})

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger.Named("http")))

	s := &Server{
		router:   router,
		handlers: h,
		logger:   logger,
	}
	s.setupRoutes(cfg.Server.DevMode)
	return s
}

// requestLogger 以 zap 记录请求
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	sub, _ := fs.Sub(staticFiles, "dist")
	s.router.GET("/", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Handler 返回路由的 http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return srv.ListenAndServe()
}
