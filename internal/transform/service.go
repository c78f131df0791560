package transform

import (
	"fmt"

	"go.uber.org/zap"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/parser"
	"tkbvnedu/internal/subject"
)

// Result 一次转换的结果
type Result struct {
	Rows     []model.CanonicalRow          `json:"rows"`
	Layouts  map[string]model.LayoutFamily `json:"layouts"`
	Unmapped []string                      `json:"unmapped"`
}

// Service 转换编排：读取映射表快照、识别版式、转换并统计未映射科目
type Service struct {
	store  subject.Store
	logger *zap.Logger
}

// NewService 创建转换服务
func NewService(store subject.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.L()
	}
	return &Service{store: store, logger: logger.Named("transform")}
}

// Single 单文件转换
func (s *Service) Single(grid model.Grid) (*Result, error) {
	resolver, table, err := subject.Snapshot(s.store)
	if err != nil {
		return nil, fmt.Errorf("load mapping table: %w", err)
	}

	layout := parser.Classify(grid)
	rows := NewTransformer(resolver).Single(grid)
	result := &Result{
		Rows:     rows,
		Layouts:  map[string]model.LayoutFamily{"file": layout},
		Unmapped: unmapped(table, grid),
	}

	s.logger.Info("single-file transform",
		zap.String("layout", string(layout)),
		zap.Int("rows", len(rows)),
		zap.Int("unmapped", len(result.Unmapped)),
	)
	return result, nil
}

// Dual 双文件转换，上午文件强制为 S，下午文件强制为 C
func (s *Service) Dual(morning, afternoon model.Grid) (*Result, error) {
	resolver, table, err := subject.Snapshot(s.store)
	if err != nil {
		return nil, fmt.Errorf("load mapping table: %w", err)
	}

	rows := NewTransformer(resolver).Dual(morning, afternoon)
	result := &Result{
		Rows: rows,
		Layouts: map[string]model.LayoutFamily{
			"morning":   parser.Classify(morning),
			"afternoon": parser.Classify(afternoon),
		},
		Unmapped: unmapped(table, morning, afternoon),
	}

	s.logger.Info("dual-file transform",
		zap.String("morningLayout", string(result.Layouts["morning"])),
		zap.String("afternoonLayout", string(result.Layouts["afternoon"])),
		zap.Int("rows", len(rows)),
		zap.Int("unmapped", len(result.Unmapped)),
	)
	return result, nil
}

// unmapped 合并已保存映射与表格中提取的科目后，仍没有标准名的原始科目
func unmapped(table []model.MappingEntry, grids ...model.Grid) []string {
	vocab := subject.Vocabulary()
	extracted := make([][]model.MappingEntry, 0, len(grids))
	for _, g := range grids {
		extracted = append(extracted, subject.Extract(g, vocab))
	}
	merged := subject.Merge(table, extracted...)

	seen := make(map[string]struct{})
	for _, list := range extracted {
		for _, e := range list {
			seen[subject.Key(e.Raw)] = struct{}{}
		}
	}

	out := make([]string, 0)
	for _, raw := range subject.Unmapped(merged) {
		if _, ok := seen[subject.Key(raw)]; ok {
			out = append(out, raw)
		}
	}
	return out
}
