package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"instagram_copywriter/copywriter"
	"instagram_copywriter/server"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	requestPath := flag.String("request", "", "path to a campaign request JSON file (one-shot mode)")
	outPath := flag.String("out", "", "write the run result JSON here instead of stdout")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	_ = godotenv.Load()

	logger := buildLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := copywriter.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	gen, genErr := buildGenerator(cfg, logger)

	if *serve {
		if genErr != nil {
			logger.Warn("generator unavailable; /api/generate will be disabled", zap.Error(genErr))
		}
		srv, err := server.New(gen, cfg, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		logger.Info("starting web server", zap.String("addr", listen))
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *requestPath == "" {
		fmt.Fprintln(os.Stderr, "--request or --serve is required")
		os.Exit(1)
	}
	if genErr != nil {
		fmt.Fprintln(os.Stderr, genErr)
		os.Exit(1)
	}

	data, err := os.ReadFile(*requestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var req copywriter.RunRequest
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	res, err := gen.Run(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logger.Info("run result written", zap.String("path", *outPath), zap.Int("posts", len(res.Posts)))
		return
	}
	fmt.Println(string(out))
}

func buildLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return logger
}

func buildGenerator(cfg copywriter.Config, logger *zap.Logger) (*copywriter.Generator, error) {
	if cfg.LLM == nil || cfg.LLM.APIKey == "" {
		return nil, errors.New("llm api key missing; set llm.api_key in config or OPENAI_API_KEY")
	}
	switch cfg.LLM.Provider {
	case "", "openai":
	default:
		// Any other provider must expose an OpenAI-compatible endpoint.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider %s requires base_url (OpenAI-compatible endpoint)", cfg.LLM.Provider)
		}
	}
	llm, err := copywriter.NewOpenAILLM(&copywriter.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return copywriter.NewGenerator(llm, logger)
}
