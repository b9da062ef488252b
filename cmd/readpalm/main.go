package main

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/luvnft/Palm/internal/application/usecases"
	"github.com/luvnft/Palm/internal/config"
	domainservices "github.com/luvnft/Palm/internal/domain/services"
	"github.com/luvnft/Palm/internal/infrastructure/services"
)

// readpalm sends local image files through the same pipeline as POST /upload
// and prints each reading. Arguments may be files or directories.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: readpalm <image|dir>...")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	aiService, err := services.NewImageTextAIService(cfg)
	if err != nil {
		log.Fatalf("Failed to create AI service: %v", err)
	}
	defer aiService.Close()

	useCase := usecases.NewReadingUseCase(domainservices.NewReadingDomainService(aiService), usecases.ReadingSettings{
		Model:   cfg.Model,
		Prompt:  cfg.Prompt,
		Timeout: cfg.RequestTimeout,
	})

	failed := false
	for _, file := range collectImages(os.Args[1:]) {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("%s: %v", file, err)
			failed = true
			continue
		}

		output, err := useCase.Execute(context.Background(), usecases.ReadingInput{
			ImageData: data,
			MimeType:  mime.TypeByExtension(filepath.Ext(file)),
		})
		if err != nil {
			log.Printf("%s: %v", file, err)
			failed = true
			continue
		}

		fmt.Printf("== %s\n%s\n\n", file, output.Text)
	}

	if failed {
		os.Exit(1)
	}
}

func collectImages(args []string) []string {
	validExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			log.Printf("%s: %v", arg, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if slices.Contains(validExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
				files = append(files, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return files
}
