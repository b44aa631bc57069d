// Package report 为分析报告添加元数据并保存为 Markdown 文件。
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/logger"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/sector"
)

const (
	DefaultOutputDir = "reports"
	DefaultGenerator = "Trade Opportunities API"
)

// ErrSaveFailed 报告写盘失败
var ErrSaveFailed = errors.New("failed to save report")

// Generator 报告生成器
type Generator struct {
	outputDir string
	generator string
	now       func() time.Time
}

// NewGenerator 创建报告生成器，目录在首次保存时创建
func NewGenerator(outputDir, generatorName string) *Generator {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if generatorName == "" {
		generatorName = DefaultGenerator
	}
	return &Generator{outputDir: outputDir, generator: generatorName, now: time.Now}
}

// OutputDir 返回报告保存目录
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// AddMetadata 在报告正文前添加 front matter
func (g *Generator) AddMetadata(body, sectorName string, sourceCount int) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: Trade Opportunities Analysis - %s\n", sector.Title(sectorName))
	fmt.Fprintf(&sb, "date: %s\n", g.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "sector: %s\n", sectorName)
	fmt.Fprintf(&sb, "sources_analyzed: %d\n", sourceCount)
	fmt.Fprintf(&sb, "generated_by: %s\n", g.generator)
	sb.WriteString("---\n\n")
	sb.WriteString(body)
	return sb.String()
}

// FileName 文件名由行业名与时间戳决定
func FileName(sectorName string, t time.Time) string {
	return fmt.Sprintf("%s_%s.md", sector.Slug(sectorName), t.Format("20060102_150405"))
}

// Save 以当前时间命名保存报告
func (g *Generator) Save(sectorName, content string) (string, error) {
	return g.SaveAt(sectorName, content, g.now())
}

// SaveAt 以指定时间命名保存报告，返回文件路径
func (g *Generator) SaveAt(sectorName, content string, t time.Time) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		logger.Log.Errorf("创建报告目录失败: %v", err)
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	path := filepath.Join(g.outputDir, FileName(sectorName, t))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		logger.Log.Errorf("保存报告失败: %v", err)
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	logger.Log.Infof("报告已保存: %s", path)
	return path, nil
}
