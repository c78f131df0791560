package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/store"
	"tkbvnedu/internal/transform"
)

// 转换模式
const (
	ModeSingle = "single"
	ModeDual   = "dual"
)

type fileRef struct {
	Token string `json:"token"`
	Sheet string `json:"sheet"`
}

type processRequest struct {
	Mode      string   `json:"mode"`
	File      *fileRef `json:"file"`
	Morning   *fileRef `json:"morning"`
	Afternoon *fileRef `json:"afternoon"`
}

// Process 执行转换，生成 TKB_VNEDU 工作簿并返回下载 token
func (h *Handlers) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, CodeBadRequest, "参数错误")
		return
	}

	var (
		result  *transform.Result
		sources []string
		err     error
	)
	switch req.Mode {
	case ModeSingle, "":
		req.Mode = ModeSingle
		result, sources, err = h.processSingle(req)
	case ModeDual:
		result, sources, err = h.processDual(req)
	default:
		errorResponse(c, CodeBadRequest, "未知的转换模式: "+req.Mode)
		return
	}
	if err != nil {
		code := CodeProcessFailed
		if errors.Is(err, errUploadExpired) {
			code = CodeFileExpired
		}
		errorResponse(c, code, err.Error())
		return
	}

	logID := h.startLog(req.Mode, sources)

	data, err := h.writer.WriteToBytes(result.Rows)
	if err != nil {
		h.finishLog(logID, result, err)
		errorResponse(c, CodeProcessFailed, "生成工作簿失败: "+err.Error())
		return
	}
	h.finishLog(logID, result, nil)

	fileName := fmt.Sprintf("%s_%s.xlsx", h.filePrefix, time.Now().Format("20060102_150405"))
	token := h.downloads.put(fileName, data, defaultDownloadTTL)

	success(c, gin.H{
		"downloadToken": token,
		"downloadUrl":   "/api/download/" + token,
		"fileName":      fileName,
		"layouts":       result.Layouts,
		"rowCount":      len(result.Rows),
		"rows":          result.Rows,
		"unmapped":      result.Unmapped,
		"expiresAt":     time.Now().Add(defaultDownloadTTL).Format(time.RFC3339),
	})
}

func (h *Handlers) processSingle(req processRequest) (*transform.Result, []string, error) {
	if req.File == nil {
		return nil, nil, errors.New("缺少文件")
	}
	grid, name, err := h.gridFor(*req.File)
	if err != nil {
		return nil, nil, err
	}
	result, err := h.service.Single(grid)
	return result, []string{name}, err
}

func (h *Handlers) processDual(req processRequest) (*transform.Result, []string, error) {
	if req.Morning == nil && req.Afternoon == nil {
		return nil, nil, errors.New("至少需要上午或下午文件")
	}

	var (
		morning, afternoon model.Grid
		sources            []string
	)
	if req.Morning != nil {
		grid, name, err := h.gridFor(*req.Morning)
		if err != nil {
			return nil, nil, fmt.Errorf("上午文件: %w", err)
		}
		morning = grid
		sources = append(sources, name)
	}
	if req.Afternoon != nil {
		grid, name, err := h.gridFor(*req.Afternoon)
		if err != nil {
			return nil, nil, fmt.Errorf("下午文件: %w", err)
		}
		afternoon = grid
		sources = append(sources, name)
	}

	result, err := h.service.Dual(morning, afternoon)
	return result, sources, err
}

func (h *Handlers) startLog(mode string, sources []string) int64 {
	if h.history == nil {
		return 0
	}
	id, err := h.history.CreateConversionLog(mode, sources)
	if err != nil {
		h.logger.Warn("create conversion log failed", zap.Error(err))
		return 0
	}
	if err := h.history.SetConfig(store.ConfigLastMode, mode); err != nil {
		h.logger.Warn("save last mode failed", zap.Error(err))
	}
	return id
}

func (h *Handlers) finishLog(id int64, result *transform.Result, runErr error) {
	if h.history == nil || id == 0 {
		return
	}

	status, message := store.ConversionSuccess, ""
	if runErr != nil {
		status, message = store.ConversionFailed, runErr.Error()
	}
	if err := h.history.CompleteConversionLog(id, layoutSummary(result.Layouts), len(result.Rows), len(result.Unmapped), status, message); err != nil {
		h.logger.Warn("complete conversion log failed", zap.Int64("id", id), zap.Error(err))
	}
}

func layoutSummary(layouts map[string]model.LayoutFamily) string {
	keys := make([]string, 0, len(layouts))
	for k := range layouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+string(layouts[k]))
	}
	return strings.Join(parts, ",")
}

// Download 下载生成的工作簿
func (h *Handlers) Download(c *gin.Context) {
	d, ok := h.downloads.get(c.Param("token"))
	if !ok {
		c.String(http.StatusNotFound, "文件不存在或已过期")
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(d.fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", d.data)
}

// ListHistory 最近的转换记录，limit 默认 50，最大 500
func (h *Handlers) ListHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit < 1 {
		errorResponse(c, CodeBadRequest, "limit 必须是正整数")
		return
	}
	limit = min(limit, maxHistoryLimit)

	if h.history == nil {
		success(c, []store.ConversionLog{})
		return
	}
	logs, err := h.history.ListConversionLogs(limit)
	if err != nil {
		errorResponse(c, CodeHistoryFailed, err.Error())
		return
	}
	success(c, logs)
}

// GetSettings 应用设置
func (h *Handlers) GetSettings(c *gin.Context) {
	if h.history == nil {
		success(c, map[string]string{})
		return
	}
	settings, err := h.history.GetAllConfig()
	if err != nil {
		errorResponse(c, CodeHistoryFailed, err.Error())
		return
	}
	success(c, settings)
}
