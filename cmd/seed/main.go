package main

import (
	"context"
	"log"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/rl1809/shopping-cart/internal/adapter/storage"
	"github.com/rl1809/shopping-cart/internal/core/domain"
)

var cli struct {
	Driver string `help:"Catalog driver." enum:"sqlite,mysql" default:"sqlite"`
	DSN    string `help:"Catalog DSN or file path." default:"catalog.db"`
	File   string `arg:"" type:"existingfile" help:"YAML file with a products list."`
}

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID         int64  `yaml:"id"`
	Name       string `yaml:"name"`
	PriceCents int64  `yaml:"price_cents"`
	ImageURL   string `yaml:"image_url"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("seed"),
		kong.Description("Load products from a YAML file into the catalog database."),
	)

	data, err := os.ReadFile(cli.File)
	if err != nil {
		log.Fatalf("failed to read %s: %v", cli.File, err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("failed to parse %s: %v", cli.File, err)
	}
	if len(seed.Products) == 0 {
		log.Fatalf("no products found in %s", cli.File)
	}

	ctx := context.Background()
	catalog, err := storage.OpenCatalog(ctx, cli.Driver, cli.DSN)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer catalog.Close()

	for _, p := range seed.Products {
		if p.ID <= 0 || p.Name == "" {
			log.Fatalf("invalid product entry: id=%d name=%q", p.ID, p.Name)
		}

		product := domain.Product{
			ID:         p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			ImageURL:   p.ImageURL,
		}
		if err := catalog.UpsertProduct(ctx, product); err != nil {
			log.Fatalf("failed to upsert product %d: %v", p.ID, err)
		}
		log.Printf("seeded product %d: %s", p.ID, p.Name)
	}

	log.Printf("seeded %d products", len(seed.Products))
}
