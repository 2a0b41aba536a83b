package main

import (
	"os"

	"github.com/Omkolamkar/AiResumeAnalyzer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
