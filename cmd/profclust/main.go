// cmd/profclust/main.go
package main

import (
	"profclust/internal/app"
	"profclust/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
