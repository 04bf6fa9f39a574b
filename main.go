package main

import (
	"os"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/cmd"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/version"
)

func main() {
	if err := cmd.Execute(version.Get().Version); err != nil {
		os.Exit(1)
	}
}
