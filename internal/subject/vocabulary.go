package subject

// vocabulary 教育系统认可的标准科目名称（有序，只读）
var vocabulary = []string{
	"TOÁN",
	"TOÁN HỌC",
	"VẬT LÍ",
	"SINH HỌC",
	"NGỮ VĂN",
	"ĐỊA LÍ",
	"TIẾNG ANH",
	"GDCD",
	"THỂ DỤC",
	"HÓA HỌC",
	"GDQP",
	"HỌC NGHỀ",
	"NGHỀ PT",
	"LỊCH SỬ VÀ ĐỊA LÍ",
	"KHOA HỌC TỰ NHIÊN",
	"TIN HỌC",
	"GIÁO DỤC THỂ CHẤT",
	"KTCN",
	"NGHỆ THUẬT",
	"HOẠT ĐỘNG TRẢI NGHIỆM, HƯỚNG NGHIỆP",
	"NỘI DUNG GIÁO DỤC CỦA ĐỊA PHƯƠNG",
	"TIẾNG VIỆT",
	"TN-XH",
	"ĐẠO ĐỨC",
	"THỦ CÔNG",
	"KHOA HỌC",
	"KĨ THUẬT",
	"KĨ NĂNG SỐNG",
	"HOẠT ĐỘNG TRẢI NGHIỆM",
	"TIN HỌC VÀ CÔNG NGHỆ (CÔNG NGHỆ)",
	"TIN HỌC VÀ CÔNG NGHỆ (TIN HỌC)",
	"NGOẠI NGỮ 1",
	"TC nhận xét 1",
	"TC nhận xét 2",
	"TC nhận xét 3",
	"TIẾT ĐỌC THƯ VIỆN",
	"TC NHẬN XÉT 2",
	"HĐ TẬP THỂ",
	"CÔNG NGHỆ",
	"ÂM NHẠC",
	"MĨ THUẬT",
	"TỰ CHỌN 2",
	"TỰ CHỌN 3",
	"TC NHẬN XÉT 3",
	"TỰ CHỌN 1",
	"TỰ CHỌN 5",
}

// Vocabulary 返回标准科目列表的副本
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}
