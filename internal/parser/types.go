package parser

// 版式识别与定位时的扫描范围
const (
	gridHeaderScanRows   = 12 // Grid 表头行搜索范围
	classHeaderScanRows  = 3  // 班级表头识别的行数
	classHeaderScanCols  = 12 // 班级表头识别的列数
	classHeaderMinCodes  = 3  // 一行内至少出现的班级代码个数
	dayColumnScanRows    = 10 // DayColumn 首列星期标签搜索范围
	dayColumnMinLabels   = 3
	rowWiseScanRows      = 12 // RowWise 首列班级代码搜索范围（从第 1 行起）
	rowWiseMinCodes      = 2
	classLocateScanRows  = 5 // 按班级名定位列 / 抽取班级名的行数
	gridFirstClassColumn = 2 // Grid 版式班级列起始下标
)

// MaxPeriod 一个上下午内可接受的最大节次，超出的行视为非法
const MaxPeriod = 20
