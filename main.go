package main

import (
	"github.com/shouni/gemini-pose-kit/cmd"
)

func main() {
	cmd.Execute()
}
