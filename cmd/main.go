package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Globals общие флаги всех команд
type Globals struct {
	Config string `help:"Путь к файлу конфигурации." type:"path" default:"config.toml"`
}

var cli struct {
	Globals

	Serve   ServeCmd   `cmd:"" help:"Запустить HTTP сервер." default:"1"`
	Migrate MigrateCmd `cmd:"" help:"Применить миграции схемы БД."`
	Slots   SlotsCmd   `cmd:"" help:"Показать слоты на дату."`
	HashPIN HashPINCmd `cmd:"" name:"hash-pin" help:"Получить bcrypt хэш PIN для auth.pin_hash."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("party-venue"),
		kong.Description("Бронирование детских праздников по слотам и зонам"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
