// Package sector 处理行业名称的校验与格式化。
package sector

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MinLength = 3
	MaxLength = 100
)

var (
	ErrEmpty    = errors.New("Sector name cannot be empty")
	ErrTooShort = errors.New("Sector name must be at least 3 characters long")
	ErrTooLong  = errors.New("Sector name too long (max 100 characters)")
)

// Validate 校验并清洗行业名称，只保留字母、数字、空格和连字符
func Validate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmpty
	}

	cleaned := strings.TrimSpace(strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, trimmed))

	switch {
	case len(cleaned) < MinLength:
		return "", ErrTooShort
	case len(cleaned) > MaxLength:
		return "", ErrTooLong
	}
	return cleaned, nil
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '-':
		return true
	}
	return false
}

// Title 返回英文标题格式，如 "renewable energy" -> "Renewable Energy"
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Slug 生成报告文件名前缀：小写，空格替换为下划线
func Slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}
