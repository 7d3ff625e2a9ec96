package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/misi/cmd/category"
	"fjacquet/misi/cmd/export"
	"fjacquet/misi/cmd/loan"
	"fjacquet/misi/cmd/report"
	"fjacquet/misi/cmd/root"
	"fjacquet/misi/cmd/serve"
	"fjacquet/misi/cmd/streams"
	"fjacquet/misi/cmd/summary"
	"fjacquet/misi/cmd/template"
	"fjacquet/misi/cmd/transaction"
	"fjacquet/misi/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// Environment first so LOG_LEVEL and MISI_* from .env are visible to viper
	config.LoadEnv()
	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(transaction.Cmd)
	root.Cmd.AddCommand(template.Cmd)
	root.Cmd.AddCommand(loan.Cmd)
	root.Cmd.AddCommand(streams.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// configureLogLevel sets the global logrus level from LOG_LEVEL before any
// logger is created
func configureLogLevel() {
	level, err := logrus.ParseLevel(strings.ToLower(config.GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
