// Package node 提供处理模型输出的通用节点
package node

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

var codeFencePattern = regexp.MustCompile("(?i)```(?:json)?")

// StripCodeFence 去除模型输出中的 markdown 代码块标记
func StripCodeFence(s string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(s, ""))
}

// CleanJSONReply 去除代码块后截取第一个 JSON 值
func CleanJSONReply(s string) string {
	return ExtractJSONObject(StripCodeFence(s))
}

// ExtractJSONObject 尝试从模型输出中截取"第一个完整 JSON 对象/数组"。
// 模型可能会在 JSON 前后夹杂多余文本。
func ExtractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start := -1
	end := -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err == nil {
		if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
			return raw
		}
	}

	// 兜底：读取到 EOF 为止，失败时原样返回
	dec = json.NewDecoder(strings.NewReader(raw))
	for {
		_, e := dec.Token()
		if e != nil {
			if errors.Is(e, io.EOF) {
				break
			}
			return strings.TrimSpace(s)
		}
	}
	return raw
}
