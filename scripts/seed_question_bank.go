package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/services"
)

// Seeds the question bank with a company questions file for an existing
// interview, useful when question documents arrive outside the upload flow.
//
//	go run scripts/seed_question_bank.go -interview <uuid> -file questions.txt
func main() {
	interviewFlag := flag.String("interview", "", "interview UUID the questions belong to")
	fileFlag := flag.String("file", "", "path to the questions document (txt, pdf, doc, docx)")
	flag.Parse()

	if *interviewFlag == "" || *fileFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	interviewID, err := uuid.Parse(*interviewFlag)
	if err != nil {
		log.Fatalf("❌ Invalid interview id: %v", err)
	}

	log.Println("🚀 Starting question bank seeding...")

	cfg := config.Load()
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is not set; the question bank is disabled")
	}

	credStore := config.NewCredentialStore(cfg.AI)
	if !credStore.Get().Configured() {
		log.Fatal("❌ No AI provider configured; embeddings are unavailable")
	}

	aiService := services.NewAIService(credStore, cfg.AI.RequestTimeout)

	questionBank, err := services.NewQuestionBankService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		aiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize question bank: %v", err)
	}

	if err := questionBank.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	extractor := services.NewTextExtractorService()

	log.Printf("📖 Extracting text from %s...", *fileFlag)
	text, err := extractor.ExtractText(*fileFlag)
	if err != nil {
		log.Fatalf("❌ Failed to extract text: %v", err)
	}
	log.Printf("✅ Extracted %d characters", len(text))

	log.Println("🔄 Chunking, embedding and storing...")
	if err := questionBank.IndexDocument(context.Background(), interviewID, text); err != nil {
		log.Fatalf("❌ Failed to index document: %v", err)
	}

	log.Printf("✅ Question bank seeded for interview %s", interviewID)
}
