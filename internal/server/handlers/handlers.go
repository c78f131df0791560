package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/service/excel"
	"tkbvnedu/internal/store"
	"tkbvnedu/internal/subject"
	"tkbvnedu/internal/transform"
)

// 错误码
const (
	CodeBadRequest      = 1001
	CodeBadFile         = 1002
	CodeFileTooLarge    = 1003
	CodeFileExpired     = 2001
	CodeSheetNotFound   = 2002
	CodeProcessFailed   = 3001
	CodeMappingFailed   = 4001
	CodeMappingNotFound = 4002
	CodeHistoryFailed   = 5001
)

const (
	maxUploadSize       = 10 * 1024 * 1024
	defaultUploadTTL    = 2 * time.Hour
	defaultDownloadTTL  = time.Hour
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Handlers API 处理器
type Handlers struct {
	mappings subject.Store
	history  *store.Store
	service  *transform.Service
	writer   *excel.Writer
	logger   *zap.Logger

	filePrefix string

	uploads   map[string]*uploadedFile
	uploadsMu sync.RWMutex

	downloads *downloadStore
}

type uploadedFile struct {
	FileName    string
	Workbook    *excel.Workbook
	Recognition map[string]model.SheetRecognition
	UploadedAt  time.Time
}

// Options 处理器依赖
type Options struct {
	Mappings   subject.Store
	History    *store.Store // 可为空：不记录转换历史
	Writer     *excel.Writer
	FilePrefix string
	Logger     *zap.Logger
}

// NewHandlers 创建处理器
func NewHandlers(opts Options) *Handlers {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}
	writer := opts.Writer
	if writer == nil {
		writer = excel.NewWriter(excel.WriterOptions{})
	}
	prefix := opts.FilePrefix
	if prefix == "" {
		prefix = "TKB_VNEDU"
	}
	return &Handlers{
		mappings:   opts.Mappings,
		history:    opts.History,
		service:    transform.NewService(opts.Mappings, logger),
		writer:     writer,
		logger:     logger.Named("api"),
		filePrefix: prefix,
		uploads:    make(map[string]*uploadedFile),
		downloads:  newDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	// 文件上传与识别
	router.POST("/files", h.UploadFile)
	router.GET("/files/:token/sheets/:sheet", h.InspectSheet)

	// 科目映射
	router.GET("/vocabulary", h.GetVocabulary)
	router.GET("/mappings", h.GetMappings)
	router.GET("/mappings/:raw", h.FindMapping)
	router.PUT("/mappings", h.UpdateMappings)
	router.POST("/resolve", h.Resolve)

	// 转换与下载
	router.POST("/process", h.Process)
	router.GET("/download/:token", h.Download)

	// 历史与设置
	router.GET("/history", h.ListHistory)
	router.GET("/settings", h.GetSettings)
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}
