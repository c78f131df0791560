package util

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
)

// browserCommands 按优先级列出当前系统可用于打开 url 的命令
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		cmds := [][]string{{"xdg-open", url}}
		for _, b := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			cmds = append(cmds, []string{b, url})
		}
		return cmds
	}
}

// OpenBrowser 依次尝试当前系统的候选命令打开浏览器，全部失败时返回第一个命令的错误
func OpenBrowser(url string) error {
	var first error
	for _, args := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(args[0], args[1:]...).Start()
		if err == nil {
			return nil
		}
		if first == nil {
			first = err
		}
	}
	return first
}

// FindAvailablePort 从 startPort 起查找可监听的端口，最多尝试 maxTries 个
func FindAvailablePort(startPort, maxTries int) (int, error) {
	for port := startPort; port < startPort+maxTries; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port, nil
	}
	return 0, fmt.Errorf("no available port in [%d, %d)", startPort, startPort+maxTries)
}
