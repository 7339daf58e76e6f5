package main

import (
	"os"

	"github.com/tutumagi/crossaoi/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("aoisim: %v", err)
		os.Exit(1)
	}
}
