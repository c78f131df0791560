package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/service/excel"
	"tkbvnedu/internal/subject"
)

// SheetInspection 单个 sheet 的识别结果与其中的科目
type SheetInspection struct {
	model.SheetRecognition
	Subjects []model.MappingEntry `json:"subjects"`
}

// UploadFile 上传课表文件，识别全部 sheet 并检查默认 sheet
func (h *Handlers) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, CodeBadRequest, "请上传文件")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		errorResponse(c, CodeFileTooLarge, "文件过大，最大支持10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		errorResponse(c, CodeBadFile, "仅支持 .xlsx 和 .xls 格式")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, CodeBadFile, "读取文件失败")
		return
	}

	wb, err := excel.Open(content, header.Filename)
	if err != nil {
		h.logger.Warn("decode upload failed", zap.String("file", header.Filename), zap.Error(err))
		errorResponse(c, CodeBadFile, "文件解析失败: "+err.Error())
		return
	}

	recognition := excel.NewRecognizer().RecognizeWorkbook(wb)
	token := h.putUpload(&uploadedFile{
		FileName:    header.Filename,
		Workbook:    wb,
		Recognition: recognition,
		UploadedAt:  time.Now(),
	})

	sheet := excel.PickSheet(wb, recognition, c.PostForm("sheet"))
	inspection, err := h.inspect(wb, recognition, sheet)
	if err != nil {
		inspectError(c, err)
		return
	}

	sheets := make([]model.SheetRecognition, 0, len(recognition))
	for _, name := range wb.SheetNames() {
		sheets = append(sheets, recognition[name])
	}

	h.logger.Info("file uploaded",
		zap.String("file", header.Filename),
		zap.Int("sheets", len(sheets)),
		zap.String("sheet", sheet),
		zap.String("layout", string(inspection.Layout)),
	)

	success(c, gin.H{
		"token":      token,
		"fileName":   header.Filename,
		"sheets":     sheets,
		"sheet":      inspection.SheetName,
		"layout":     inspection.Layout,
		"headerRow":  inspection.HeaderRow,
		"classes":    inspection.Classes,
		"subjects":   inspection.Subjects,
		"uploadedAt": time.Now().Format(time.RFC3339),
	})
}

// InspectSheet 检查已上传文件中的另一个 sheet
func (h *Handlers) InspectSheet(c *gin.Context) {
	up, ok := h.getUpload(c.Param("token"))
	if !ok {
		errorResponse(c, CodeFileExpired, "文件不存在或已过期")
		return
	}

	inspection, err := h.inspect(up.Workbook, up.Recognition, c.Param("sheet"))
	if err != nil {
		inspectError(c, err)
		return
	}
	success(c, inspection)
}

// errLoadMappings 检查 sheet 时读取映射表失败
var errLoadMappings = errors.New("读取映射失败")

func inspectError(c *gin.Context, err error) {
	if errors.Is(err, errLoadMappings) {
		errorResponse(c, CodeMappingFailed, err.Error())
		return
	}
	errorResponse(c, CodeSheetNotFound, err.Error())
}

func (h *Handlers) inspect(wb *excel.Workbook, recognition map[string]model.SheetRecognition, sheet string) (*SheetInspection, error) {
	grid, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}
	r, ok := recognition[sheet]
	if !ok {
		return nil, excel.ErrSheetNotFound
	}

	saved, err := h.mappings.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errLoadMappings, err)
	}
	extracted := subject.Extract(grid, subject.Vocabulary())
	return &SheetInspection{
		SheetRecognition: r,
		Subjects:         subject.Annotate(extracted, saved),
	}, nil
}

// gridFor 读取已上传文件的 sheet；sheet 为空时使用识别出的最佳 sheet
func (h *Handlers) gridFor(ref fileRef) (model.Grid, string, error) {
	up, ok := h.getUpload(ref.Token)
	if !ok {
		return nil, "", errUploadExpired
	}
	sheet := ref.Sheet
	if sheet == "" {
		sheet = excel.PickSheet(up.Workbook, up.Recognition, "")
	}
	grid, err := up.Workbook.Grid(sheet)
	if err != nil {
		return nil, "", err
	}
	return grid, up.FileName, nil
}

var errUploadExpired = errors.New("文件不存在或已过期")

func (h *Handlers) putUpload(up *uploadedFile) string {
	h.uploadsMu.Lock()
	defer h.uploadsMu.Unlock()

	now := time.Now()
	for k, v := range h.uploads {
		if now.Sub(v.UploadedAt) > defaultUploadTTL {
			delete(h.uploads, k)
		}
	}

	token := uuid.New().String()
	h.uploads[token] = up
	return token
}

// getUpload 取回上传的文件，超过 defaultUploadTTL 的视为不存在并移除
func (h *Handlers) getUpload(token string) (*uploadedFile, bool) {
	h.uploadsMu.Lock()
	defer h.uploadsMu.Unlock()

	up, ok := h.uploads[token]
	if !ok {
		return nil, false
	}
	if time.Since(up.UploadedAt) > defaultUploadTTL {
		delete(h.uploads, token)
		return nil, false
	}
	return up, true
}
