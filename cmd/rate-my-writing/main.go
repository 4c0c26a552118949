// Rate My Writing - терминальное приложение для разбора текста с помощью LLM.
//
// Использование:
//
//	rate-my-writing                 # интерактивный TUI
//	rate-my-writing review essay.md # одноразовый разбор файла
//	cat essay.md | rate-my-writing review -
//	rate-my-writing check           # какая модель и ключ будут использованы
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
