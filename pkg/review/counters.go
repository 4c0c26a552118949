package review

import (
	"strings"
	"unicode/utf8"
)

// ExampleText — демо-текст с намеренными ошибками правописания и грамматики.
const ExampleText = "Teh quick brwn fox jump over the lazy dog. Their going to the park tomorow, " +
	"and they was very exited about it. Me and him has been planing this trip for weeks, " +
	"but the wether dont look good."

// WordCount — число непустых токенов, разделённых пробельными символами.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CharCount — длина текста в символах (кодовых точках), включая пробелы.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
