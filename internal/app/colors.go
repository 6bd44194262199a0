package app

import "github.com/fatih/color"

// Log highlighting for paths, failures and removals.
var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
)
