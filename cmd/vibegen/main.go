// Command vibegen regenerates the tag embedding vocabulary that ships
// inside the catalog. It embeds each vibe's enriched description (a
// descriptive phrase separates close concepts far better than a single
// word) and writes the label-to-vector table as JSON, ready to merge
// into the catalog document.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/citymood/vibescout/internal/logger"
	"github.com/citymood/vibescout/internal/transport/openai"
	"github.com/citymood/vibescout/internal/version"
)

const embedBatchSize = 100

func main() {
	var (
		vocabPath  = flag.String("vocab", "data/vibes.json", "vocabulary JSON: {label: description}")
		outPath    = flag.String("out", "data/tag_embeddings.json", "output JSON: {label: [vector]}")
		model      = flag.String("model", "text-embedding-3-small", "embedding model")
		dimensions = flag.Int("dimensions", 256, "embedding dimensions")
		baseURL    = flag.String("base-url", "", "OpenAI-compatible API base URL (default: OpenAI)")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Printf("vibegen %s (%s)\n", version.Version, version.Commit)
		return
	}

	log, err := logger.NewLogger("local")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is not set")
	}

	vocab, labels, err := loadVocabulary(*vocabPath)
	if err != nil {
		log.Fatal("Failed to load vocabulary", zap.Error(err))
	}
	log.Info("Vocabulary loaded",
		zap.String("path", *vocabPath),
		zap.Int("labels", len(labels)),
		zap.String("model", *model),
		zap.Int("dimensions", *dimensions))

	emb := openai.NewEmbedder(&openai.Config{
		APIKey:     apiKey,
		BaseURL:    *baseURL,
		Model:      *model,
		Dimensions: *dimensions,
		Logger:     log,
	})

	table, err := embedVocabulary(context.Background(), emb, vocab, labels)
	if err != nil {
		log.Fatal("Embedding failed", zap.Error(err))
	}

	if err := writeTable(*outPath, table); err != nil {
		log.Fatal("Failed to write output", zap.Error(err))
	}
	log.Info("Tag embeddings written",
		zap.String("path", *outPath),
		zap.Int("labels", len(table)))
}

// loadVocabulary reads {label: description} and returns it with the
// labels in stable sorted order.
func loadVocabulary(path string) (map[string]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var vocab map[string]string
	if err := json.Unmarshal(data, &vocab); err != nil {
		return nil, nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(vocab) == 0 {
		return nil, nil, fmt.Errorf("vocabulary %s is empty", path)
	}

	labels := make([]string, 0, len(vocab))
	for label, desc := range vocab {
		if desc == "" {
			return nil, nil, fmt.Errorf("label %q has no description", label)
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return vocab, labels, nil
}

type batchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

func embedVocabulary(
	ctx context.Context, emb batchEmbedder,
	vocab map[string]string, labels []string,
) (map[string][]float32, error) {
	table := make(map[string][]float32, len(labels))

	for start := 0; start < len(labels); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(labels) {
			end = len(labels)
		}
		batch := labels[start:end]

		texts := make([]string, len(batch))
		for i, label := range batch {
			texts[i] = vocab[label]
		}

		vecs, err := emb.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch starting at %q: %w", batch[0], err)
		}
		for i, label := range batch {
			table[label] = vecs[i]
		}
	}
	return table, nil
}

func writeTable(path string, table map[string][]float32) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
