package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"chapter-quiz/internal/bankfile"
	"chapter-quiz/internal/config"
	"chapter-quiz/internal/httpapi"
	"chapter-quiz/internal/quiz"
)

func main() {
	cfg := config.FromEnv()

	addr := flag.String("addr", cfg.HTTPAddr, "listen address")
	banks := flag.String("banks", cfg.BankDir, "directory holding the question bank JSON files")
	db := flag.String("db", cfg.ResultsDB, "sqlite path for the run archive (empty disables it)")
	flag.Parse()

	rawMC, rawTF, err := bankfile.LoadBanks(*banks)
	if err != nil {
		log.Fatalf("load question banks: %v", err)
	}

	bankMC := quiz.Normalize(rawMC, quiz.TypeMultipleChoice)
	bankTF := quiz.Normalize(rawTF, quiz.TypeTrueFalse)
	if len(bankMC)+len(bankTF) == 0 {
		log.Fatalf("no questions found after parsing banks in %s", *banks)
	}
	log.Printf("loaded %d multiple choice and %d true/false questions", len(bankMC), len(bankTF))

	var results quiz.ResultRepository
	if *db != "" {
		store, err := quiz.NewSQLiteStore(*db)
		if err != nil {
			log.Fatalf("open results archive: %v", err)
		}
		defer store.Close()
		results = store
		log.Printf("results archive enabled at %s", *db)
	}

	api := httpapi.NewAPI(bankMC, bankTF, results)
	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(api, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("quiz-service listening on %s", *addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
