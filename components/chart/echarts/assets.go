package echarts

import (
	"os"
	"strings"
)

const (
	// DefaultAssetsHost serves the ECharts runtime published by go-echarts.
	DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// EnvAssetsHost overrides the assets host (self-hosted bucket, local path).
	EnvAssetsHost = "GO_CHARTKIT_ECHARTS_CDN"

	runtimeScript = "echarts.min.js"

	// ThemeLight and ThemeDark are built into the ECharts runtime.
	ThemeLight = "white"
	ThemeDark  = "dark"
)

// ResolveAssetsHost returns the assets host, respecting GO_CHARTKIT_ECHARTS_CDN.
func ResolveAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(EnvAssetsHost)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultAssetsHost
}

// ScriptURLs lists the scripts a page needs for the given engine theme.
func ScriptURLs(host, theme string) []string {
	host = ensureTrailingSlash(host)
	if host == "" {
		host = DefaultAssetsHost
	}
	urls := []string{host + runtimeScript}
	if theme != "" && theme != ThemeLight && theme != ThemeDark {
		urls = append(urls, host+"themes/"+theme+".js")
	}
	return urls
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
