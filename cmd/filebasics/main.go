package main

import (
	"github.com/sirupsen/logrus"
)

func main() {
	cmd, err := newRootCmd()
	if err != nil {
		logrus.Panic(err)
	}
	if err := cmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
