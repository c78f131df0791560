package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"tkbvnedu/internal/model"
)

// 环境变量
const (
	EnvDataDir  = "TKB_DATA_DIR"
	EnvLogLevel = "TKB_LOG_LEVEL"
)

// FileName 配置文件名
const FileName = "config.toml"

const exportsDir = "exports"

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBFile  string `toml:"db_file"`
}

// ExportConfig 输出工作簿配置
type ExportConfig struct {
	SheetName  string `toml:"sheet_name"`
	FontName   string `toml:"font_name"`
	FilePrefix string `toml:"file_prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	Found         bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			DBFile:  "tkbvnedu.db",
		},
		Export: ExportConfig{
			SheetName:  model.OutputSheetName,
			FontName:   "Arial",
			FilePrefix: "TKB_VNEDU",
		},
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrCwd() string {
	exeDir, err := GetExeDir()
	if err != nil {
		return "."
	}
	return exeDir
}

// DefaultPath 可执行文件同目录下的 config.toml
func DefaultPath() string {
	return filepath.Join(exeDirOrCwd(), FileName)
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadFile(DefaultPath())
}

// LoadFile 从指定路径加载配置；文件不存在时使用默认配置
// 环境变量优先于文件
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Found = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
	default:
		return nil, info, err
	}

	applyEnv(config)
	return config, info, nil
}

func applyEnv(config *AppConfig) {
	if v := os.Getenv(EnvDataDir); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
}

// Encode 将配置编码为 TOML
func Encode(config *AppConfig) ([]byte, error) {
	return toml.Marshal(config)
}

// SaveFile 保存配置到指定路径
func SaveFile(path string, config *AppConfig) error {
	data, err := Encode(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DataDir 数据目录的绝对路径；相对路径以可执行文件目录为基准
func DataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	return filepath.Join(exeDirOrCwd(), config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := DataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{exportsDir} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// DBPath SQLite 数据库文件路径
func DBPath(config *AppConfig) string {
	return filepath.Join(DataDir(config), config.Data.DBFile)
}

// ExportPath 数据目录 exports 子目录下的输出文件路径
func ExportPath(config *AppConfig, filename string) string {
	return filepath.Join(DataDir(config), exportsDir, filename)
}
