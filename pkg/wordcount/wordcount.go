// Package wordcount 提供写作统计使用的字数口径
package wordcount

import "unicode"

// Count 返回文本中非空白字符的数量
// 中文按字计数，英文等以字母计数，空白（含全角空格与换行）不计入。
func Count(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Sum 对多段文本的字数求和
func Sum(texts ...string) int {
	total := 0
	for _, t := range texts {
		total += Count(t)
	}
	return total
}
