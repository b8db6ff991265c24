package main

import (
	"go.uber.org/fx"

	"seatplan/internal/bootstrap"
	"seatplan/pkg/app"
)

func main() {
	bootstrap.Loadenv()

	fx.New(
		app.Module,
	).Run()
}
