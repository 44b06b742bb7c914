package service

import (
	md "github.com/JohannesKaufmann/html-to-markdown"
	"strings"
	"unicode/utf8"
)

const excerptLenMax = 80

// excerpt renders the HTML status content as a single line of plain markdown, truncated to excerptLenMax runes.
func excerpt(conv *md.Converter, content string) (s string) {
	if content == "" {
		return
	}
	txt, err := conv.ConvertString(content)
	if err != nil {
		return
	}
	s = strings.Join(strings.Fields(txt), " ")
	if utf8.RuneCountInString(s) > excerptLenMax {
		s = string([]rune(s)[:excerptLenMax-1]) + "…"
	}
	return
}
