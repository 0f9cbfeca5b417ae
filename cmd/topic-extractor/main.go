// Command topic-extractor runs one-shot topic modeling over a document
// corpus on disk: JSON-lines files contribute one document per line
// (objects with a "text" field), markdown files contribute one document
// per file. The topic-to-terms mapping is printed as JSON.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spacesedan/polarity/config"
	"github.com/spacesedan/polarity/internal/logging"
	"github.com/spacesedan/polarity/internal/normalize"
	"github.com/spacesedan/polarity/internal/pipeline"
	"github.com/spacesedan/polarity/internal/topics"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	var (
		algorithm  = flag.String("algorithm", "", "nmf or lda (default: recommended for corpus size)")
		vectorizer = flag.String("vectorizer", "", "count or tfidf (default: pairs with the algorithm)")
		nTopics    = flag.Int("topics", 5, "number of topics to extract")
		topTerms   = flag.Int("terms", 10, "top terms reported per topic")
		minDF      = flag.Int("min-df", 2, "minimum document frequency for vocabulary terms")
		maxIter    = flag.Int("max-iter", 200, "maximum factorization iterations")
		seed       = flag.Int64("seed", 42, "random seed for reproducible runs")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		slog.Error("[TopicExtractor] No input files given")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute*5)
	defer cancel()

	docs, err := loadCorpus(flag.Args())
	if err != nil {
		slog.Error("[TopicExtractor] Failed to load corpus", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[TopicExtractor] Corpus loaded", slog.Int("documents", len(docs)))

	p := pipeline.New()
	corpus := make([]string, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			slog.Error("[TopicExtractor] Canceled while cleaning corpus")
			os.Exit(1)
		}
		cleaned, err := p.Clean(doc)
		if err != nil {
			slog.Error("[TopicExtractor] Failed to clean document", slog.String("error", err.Error()))
			os.Exit(1)
		}
		corpus = append(corpus, cleaned)
	}

	algo := topics.Recommend(len(corpus))
	if *algorithm == "lda" {
		algo = topics.LDA
	} else if *algorithm == "nmf" {
		algo = topics.NMF
	}

	mode := topics.TFIDF
	if algo == topics.LDA {
		mode = topics.Count
	}
	if *vectorizer == "count" {
		mode = topics.Count
	} else if *vectorizer == "tfidf" {
		mode = topics.TFIDF
	}

	dtm, vocab, err := topics.BuildMatrix(corpus, topics.VectorizerOptions{
		Mode:       mode,
		MinDocFreq: *minDF,
	})
	if err != nil {
		slog.Error("[TopicExtractor] Vectorization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result, err := topics.ExtractTopics(dtm, vocab, topics.TopicOptions{
		Algorithm:     algo,
		NumTopics:     *nTopics,
		TopTerms:      *topTerms,
		MaxIterations: *maxIter,
		RandomSeed:    *seed,
	})
	if err != nil {
		slog.Error("[TopicExtractor] Topic extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.Error("[TopicExtractor] Failed to encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
	os.Stdout.Write(append(out, '\n'))

	slog.Info("[TopicExtractor] Topic extraction completed successfully",
		slog.String("algorithm", algo.String()),
		slog.Int("topics", *nTopics))
}

func loadCorpus(paths []string) ([]string, error) {
	var docs []string
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, normalize.StripMarkdown(string(raw)))
		default:
			lines, err := loadJSONLines(path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, lines...)
		}
	}
	return docs, nil
}

func loadJSONLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			slog.Warn("[TopicExtractor] Skipping malformed line", slog.String("file", path))
			continue
		}
		if obj.Text != "" {
			docs = append(docs, obj.Text)
		}
	}
	return docs, scanner.Err()
}
