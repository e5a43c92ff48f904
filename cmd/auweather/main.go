package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/nshankar/auweather/internal/api"
	"github.com/nshankar/auweather/internal/dataset"
	"github.com/nshankar/auweather/internal/metrics"
	"github.com/nshankar/auweather/internal/source"
)

var cli struct {
	Source  string `help:"Dataset source kind." enum:"csv,http,ftp,sqlite" default:"csv" env:"AUW_SOURCE"`
	CSV     string `help:"Path to the dataset CSV (source=csv)." default:"data/weatherAUS.csv" env:"AUW_CSV"`
	URL     string `help:"Dataset CSV URL (source=http)." env:"AUW_URL"`
	FTPHost string `help:"FTP host:port (source=ftp)." default:"ftp.bom.gov.au:21" env:"AUW_FTP_HOST"`
	FTPPath string `help:"CSV path on the FTP server (source=ftp)." env:"AUW_FTP_PATH"`
	DB      string `help:"SQLite database path (source=sqlite)." default:"data/weather.db" env:"AUW_DB"`
	Table   string `help:"Table holding the raw observations (source=sqlite)." default:"weather_rain_au" env:"AUW_TABLE"`
	Port    string `help:"HTTP server port." default:"8080" env:"AUW_PORT"`
	Dump    bool   `help:"Print the unfiltered dashboard as JSON and exit (for testing)."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("auweather"),
		kong.Description("Analytics dashboard over an Australian weather-observation dataset."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	table, err := loadTable()
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	ds, err := dataset.Build(table)
	if err != nil {
		log.Fatalf("build dataset: %v", err)
	}
	metrics.RowsDroppedTotal.Add(float64(ds.Dropped))
	log.Printf("dataset ready: %d observations, %d rows dropped", len(ds.Observations), ds.Dropped)

	if cli.Dump {
		data := api.BuildDashboard(ds, api.AllSelection())
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			log.Fatalf("encode dashboard: %v", err)
		}
		return
	}

	server := api.NewServer(ds, cli.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func loadTable() (*dataset.Table, error) {
	switch cli.Source {
	case "http":
		return source.NewHTTPClient().Fetch(cli.URL)
	case "ftp":
		return source.NewFTPClient(cli.FTPHost).Fetch(cli.FTPPath)
	case "sqlite":
		db, err := sql.Open("sqlite", cli.DB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return source.NewDB(db).LoadTable(cli.Table)
	default:
		return source.LoadCSVFile(cli.CSV)
	}
}
