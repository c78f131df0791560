package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/subject"
)

// GetVocabulary 标准科目列表
func (h *Handlers) GetVocabulary(c *gin.Context) {
	success(c, subject.Vocabulary())
}

// GetMappings 已保存的科目映射
func (h *Handlers) GetMappings(c *gin.Context) {
	entries, err := h.mappings.Load()
	if err != nil {
		errorResponse(c, CodeMappingFailed, "读取映射失败: "+err.Error())
		return
	}
	success(c, entries)
}

// FindMapping 按原始科目名（忽略大小写与音调）查找已保存的映射
func (h *Handlers) FindMapping(c *gin.Context) {
	raw := c.Param("raw")
	entry, ok, err := subject.Find(h.mappings, raw)
	if err != nil {
		errorResponse(c, CodeMappingFailed, "读取映射失败: "+err.Error())
		return
	}
	if !ok {
		errorResponse(c, CodeMappingNotFound, "映射不存在: "+raw)
		return
	}
	success(c, entry)
}

// UpdateMappings 保存用户编辑的映射
// replace=true 时以请求内容整体替换，否则按原始名合并到现有映射
func (h *Handlers) UpdateMappings(c *gin.Context) {
	var req struct {
		Entries []model.MappingEntry `json:"entries"`
		Replace bool                 `json:"replace"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, CodeBadRequest, "参数错误")
		return
	}

	next := req.Entries
	if !req.Replace {
		current, err := h.mappings.Load()
		if err != nil {
			errorResponse(c, CodeMappingFailed, "读取映射失败: "+err.Error())
			return
		}
		next = subject.Apply(current, req.Entries)
	}

	if err := h.mappings.Save(next); err != nil {
		errorResponse(c, CodeMappingFailed, "保存映射失败: "+err.Error())
		return
	}

	saved, err := h.mappings.Load()
	if err != nil {
		errorResponse(c, CodeMappingFailed, "读取映射失败: "+err.Error())
		return
	}

	h.logger.Info("mappings saved", zap.Int("entries", len(saved)), zap.Bool("replace", req.Replace))
	success(c, saved)
}

// Resolve 用当前映射解析一个原始科目名
func (h *Handlers) Resolve(c *gin.Context) {
	var req struct {
		Raw string `json:"raw"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, CodeBadRequest, "参数错误")
		return
	}

	resolver, _, err := subject.Snapshot(h.mappings)
	if err != nil {
		errorResponse(c, CodeMappingFailed, "读取映射失败: "+err.Error())
		return
	}

	raw := strings.TrimSpace(req.Raw)
	success(c, gin.H{
		"raw":       raw,
		"canonical": resolver.Resolve(raw),
		"autoMap":   subject.AutoMap(raw, subject.Vocabulary()),
	})
}
