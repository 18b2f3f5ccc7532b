package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"eklerchik/database"
	"eklerchik/internal/config"
	"eklerchik/internal/content"
	"eklerchik/internal/models"
	"eklerchik/internal/repository"
	"eklerchik/internal/seed"
	"eklerchik/internal/sitemap"
	"eklerchik/internal/wxr"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedFile := seedCmd.String("file", "", "YAML file with articles (default: built-in set)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "WordPress WXR export to import")
	importClean := importCmd.Bool("clean", true, "Run the full HTML cleanup on every post")
	importAd := importCmd.Bool("inject-ad", false, "Insert the promo block after the second paragraph")

	cleanupCmd := flag.NewFlagSet("cleanup", flag.ExitOnError)

	sitemapCmd := flag.NewFlagSet("sitemap", flag.ExitOnError)
	sitemapOut := sitemapCmd.String("out", "sitemap.xml", "Output path")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		repo := connect(cfg)

		articles := seed.Articles()
		if *seedFile != "" {
			loaded, err := seed.LoadFile(*seedFile)
			if err != nil {
				log.Fatalf("Error loading %s: %v", *seedFile, err)
			}
			articles = loaded
		}
		for i := range articles {
			if !models.IsUUID(articles[i].ID) {
				articles[i].ID = ""
			}
		}

		affected, err := repo.UpsertBySlug(articles)
		if err != nil {
			log.Fatalf("Error seeding articles: %v", err)
		}
		log.Printf("Seeded %d articles (%d rows affected)", len(articles), affected)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			log.Fatal("import requires --file")
		}
		repo := connect(cfg)

		f, err := os.Open(*importFile)
		if err != nil {
			log.Fatalf("Error opening %s: %v", *importFile, err)
		}
		defer f.Close()

		articles, err := wxr.Parse(f, wxr.Options{
			Clean:    *importClean,
			InjectAd: *importAd,
			Ad:       content.DefaultAd,
			Now:      time.Now(),
		})
		if err != nil {
			log.Fatalf("Error parsing %s: %v", *importFile, err)
		}

		affected, err := repo.UpsertBySlug(articles)
		if err != nil {
			log.Fatalf("Error importing articles: %v", err)
		}
		log.Printf("Imported %d articles (%d rows affected)", len(articles), affected)

	case "cleanup":
		cleanupCmd.Parse(os.Args[2:])
		repo := connect(cfg)

		articles, err := repo.FindAll()
		if err != nil {
			log.Fatalf("Error loading articles: %v", err)
		}
		var changed []models.Article
		for _, a := range articles {
			if cleaned := content.CleanHTML(a.Content); cleaned != a.Content {
				a.Content = cleaned
				changed = append(changed, a)
			}
		}
		if err := repo.SaveAll(changed); err != nil {
			log.Fatalf("Error saving cleaned articles: %v", err)
		}
		log.Printf("Cleaned %d of %d articles", len(changed), len(articles))

	case "sitemap":
		sitemapCmd.Parse(os.Args[2:])

		articles := seed.Articles()
		if cfg.Database.Configured() {
			stored, err := connect(cfg).FindAll()
			if err != nil {
				log.Fatalf("Error loading articles: %v", err)
			}
			if len(stored) > 0 {
				articles = stored
			}
		}

		entries := make([]sitemap.Entry, 0, len(articles))
		for _, a := range articles {
			entries = append(entries, sitemap.Entry{Slug: a.Slug, Date: a.Date})
		}
		data, err := sitemap.Build(cfg.SiteBaseURL, entries, time.Now())
		if err != nil {
			log.Fatalf("Error building sitemap: %v", err)
		}
		if err := os.WriteFile(*sitemapOut, data, 0o644); err != nil {
			log.Fatalf("Error writing %s: %v", *sitemapOut, err)
		}
		log.Printf("Wrote %s with %d articles", *sitemapOut, len(entries))

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func connect(cfg *config.Config) repository.ArticleRepository {
	if !cfg.Database.Configured() {
		log.Fatal("DB_HOST is not set; this command needs the Postgres database")
	}
	if err := database.ConnectDatabase(cfg.Database); err != nil {
		log.Fatal(err)
	}
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	return repository.NewArticleRepository(database.DB)
}

func printHelp() {
	fmt.Println("Content tool for the Miss Eklerchik blog")
	fmt.Println("\nUsage:")
	fmt.Println("  blog-tool COMMAND [OPTIONS]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed         Upsert the starter articles by slug")
	fmt.Println("               Options:")
	fmt.Println("                 --file=PATH     YAML file with articles (default: built-in set)")
	fmt.Println("")
	fmt.Println("  import       Import a WordPress WXR export")
	fmt.Println("               Options:")
	fmt.Println("                 --file=PATH       Export file (required)")
	fmt.Println("                 --clean=BOOL      Full HTML cleanup (default: true)")
	fmt.Println("                 --inject-ad=BOOL  Insert the promo block (default: false)")
	fmt.Println("")
	fmt.Println("  cleanup      Re-run the HTML cleanup over every stored article")
	fmt.Println("")
	fmt.Println("  sitemap      Write sitemap.xml")
	fmt.Println("               Options:")
	fmt.Println("                 --out=PATH      Output path (default: sitemap.xml)")
	fmt.Println("")
	fmt.Println("  help         Show this help message")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_HOST DB_PORT DB_USER DB_PASSWORD DB_NAME DB_SSLMODE DB_TIMEZONE")
	fmt.Println("  SITE_BASE_URL  Base URL used in sitemap.xml")
}
