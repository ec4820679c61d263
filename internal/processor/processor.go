package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/flashpage/internal"
	"codeberg.org/snonux/flashpage/internal/archive"
	"codeberg.org/snonux/flashpage/internal/batch"
	"codeberg.org/snonux/flashpage/internal/cards"
	"codeberg.org/snonux/flashpage/internal/cli"
	"codeberg.org/snonux/flashpage/internal/gui"
	"codeberg.org/snonux/flashpage/internal/models"
	"codeberg.org/snonux/flashpage/internal/speech"
	"codeberg.org/snonux/flashpage/internal/translation"
)

// batchConcurrency bounds parallel lookups so the free services are not hammered.
const batchConcurrency = 3

// voiceListTimeout bounds how long --list-voices waits for the catalog.
const voiceListTimeout = 5 * time.Second

// Processor handles the main word processing logic
type Processor struct {
	flags            *cli.Flags
	logger           *slog.Logger
	resolver         *translation.Resolver
	translationCache *translation.TranslationCache

	// newEngine creates the speech engine on first use
	newEngine func() (speech.Engine, error)

	// newLister creates the OpenAI model lister
	newLister func() *models.Lister

	// logTee receives the log panel in GUI mode
	logTee *internal.LogTee
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogTee lets the GUI mirror log output into its log panel.
func WithLogTee(t *internal.LogTee) Option {
	return func(p *Processor) {
		p.logTee = t
	}
}

// NewProcessor creates a new word processor
func NewProcessor(flags *cli.Flags, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	cache := translation.NewTranslationCache()
	p := &Processor{
		flags:            flags,
		logger:           logger,
		translationCache: cache,
		resolver:         newResolver(flags, cache, logger),
	}
	p.newEngine = func() (speech.Engine, error) {
		return speech.NewEngine(p.SpeechConfig(), logger)
	}
	p.newLister = func() *models.Lister {
		return models.NewLister(cli.GetOpenAIKey())
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newResolver(flags *cli.Flags, cache *translation.TranslationCache, logger *slog.Logger) *translation.Resolver {
	breaker := translation.DefaultBreakerConfig()
	primary := translation.NewBreakerProvider(
		translation.NewMyMemoryClient(flags.MyMemoryURL, flags.Timeout), breaker, logger)
	fallback := translation.NewBreakerProvider(
		translation.NewGoogleClient(flags.GoogleURL, flags.Timeout), breaker, logger)

	opts := []translation.Option{
		translation.WithCache(cache),
		translation.WithLogger(logger),
	}
	if flags.NoDictionary {
		opts = append(opts, translation.WithDictionary(nil))
	}
	return translation.NewResolver(primary, fallback, opts...)
}

// SpeechConfig builds the speech engine configuration from the flags.
func (p *Processor) SpeechConfig() *speech.Config {
	cfg := speech.DefaultConfig()
	cfg.Engine = p.flags.Engine
	cfg.OpenAIKey = cli.GetOpenAIKey()
	if p.flags.OpenAIModel != "" {
		cfg.OpenAIModel = p.flags.OpenAIModel
	}
	if p.flags.OpenAIVoice != "" {
		cfg.OpenAIVoice = p.flags.OpenAIVoice
	}
	if p.flags.OpenAIInstruction != "" {
		cfg.OpenAIInstruction = p.flags.OpenAIInstruction
	}
	return cfg
}

// ProcessText resolves a single word or sentence from the command line
// and prints its senses.
func (p *Processor) ProcessText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("nothing to translate")
	}

	fmt.Printf("\nTranslating: %s\n", text)
	senses := p.resolver.Resolve(ctx, text)
	printSenses(senses)

	if p.flags.Speak {
		return p.Speak(ctx, cards.SpeakableText(text, senses))
	}
	return nil
}

// ProcessBatch resolves every entry of the batch file. Entries that come
// with senses are printed as given.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	results := make([][]string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, entry := range entries {
		if !entry.NeedsResolve() {
			results[i] = entry.Senses
			continue
		}
		g.Go(func() error {
			results[i] = p.resolver.Resolve(gctx, entry.Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Track statistics
	resolvedCount := 0
	providedCount := 0
	failedCount := 0

	for i, entry := range entries {
		fmt.Printf("\n%d/%d: %s\n", i+1, len(entries), entry.Text)
		printSenses(results[i])

		switch {
		case !entry.NeedsResolve():
			providedCount++
		case len(results[i]) == 0 || translation.IsUnavailable(results[i]):
			failedCount++
		default:
			resolvedCount++
		}
	}

	// Print summary
	fmt.Printf("\n=== Batch Processing Summary ===\n")
	fmt.Printf("Total entries: %d\n", len(entries))
	fmt.Printf("Resolved: %d\n", resolvedCount)
	fmt.Printf("Provided in file: %d\n", providedCount)
	if failedCount > 0 {
		fmt.Printf("Without translation: %d\n", failedCount)
	}
	fmt.Printf("Cached translations: %d\n", p.translationCache.Len())
	fmt.Printf("================================\n")

	return ctx.Err()
}

// Speak reads text aloud and waits until playback has finished.
func (p *Processor) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		fmt.Println("  Nothing to read aloud")
		return nil
	}

	rate, err := cli.ParseRate(p.flags.Rate)
	if err != nil {
		return err
	}
	engine, err := p.newEngine()
	if err != nil {
		return fmt.Errorf("failed to create speech engine: %w", err)
	}
	if err := engine.IsAvailable(); err != nil {
		return err
	}

	var speakErr error
	session := speech.NewSession(engine, p.logger)
	session.SetCallbacks(nil, func(err error) { speakErr = err })

	fmt.Printf("  Speaking: %s (%s)\n", text, engine.Name())
	session.Speak(text, rate)
	if err := session.Wait(ctx); err != nil {
		session.Stop()
		return err
	}
	return speakErr
}

// ListVoices prints the voices of the configured engine and marks the one
// that would be used.
func (p *Processor) ListVoices(ctx context.Context) error {
	engine, err := p.newEngine()
	if err != nil {
		return fmt.Errorf("failed to create speech engine: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, voiceListTimeout)
	defer cancel()
	voices, err := speech.LoadVoices(ctx, engine.Catalog())
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}

	selected, ok := speech.Select(voices)
	fmt.Printf("Voices of %s (%d):\n", engine.Name(), len(voices))
	for _, v := range voices {
		marker := " "
		if ok && v == selected {
			marker = "*"
		}
		fmt.Printf(" %s %-40s %s\n", marker, v.Name, v.Lang)
	}
	if !ok {
		fmt.Println("No English voice found, the engine default will be used")
	}
	return nil
}

// ListModels prints the OpenAI speech models and marks the configured one.
func (p *Processor) ListModels(ctx context.Context) error {
	return p.newLister().PrintSpeechModels(ctx, os.Stdout, p.SpeechConfig().OpenAIModel)
}

// ArchivePages moves earlier exports out of the output directory.
func (p *Processor) ArchivePages() error {
	path, n, err := archive.ArchivePages(p.flags.OutputDir, time.Now())
	if err != nil {
		return fmt.Errorf("failed to archive pages: %w", err)
	}
	if n == 0 {
		fmt.Printf("No exported pages in %s\n", p.flags.OutputDir)
		return nil
	}
	p.logger.Info("Pages archived", slog.Int("count", n), slog.String("path", path))
	fmt.Printf("Archived %d page(s) to: %s\n", n, path)
	return nil
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{
		OutputDir: p.flags.OutputDir,
		Label:     p.flags.Label,
		Resolver:  p.resolver,
		Logger:    p.logger,
		LogTee:    p.logTee,
	}

	engine, err := p.newEngine()
	if err == nil {
		err = engine.IsAvailable()
	}
	if err != nil {
		// The page still works without speech
		p.logger.Warn("Speech disabled", slog.String("error", err.Error()))
	} else {
		guiConfig.Engine = engine
	}

	if p.flags.BatchFile != "" {
		entries, err := batch.ReadBatchFile(p.flags.BatchFile)
		if err != nil {
			return err
		}
		guiConfig.Entries = entries
	}

	// Create and run GUI application
	app := gui.New(guiConfig)
	app.Run()

	return nil
}

func printSenses(senses []string) {
	switch {
	case len(senses) == 0:
		fmt.Println("  (no senses found)")
	case translation.IsUnavailable(senses):
		fmt.Printf("  %s\n", senses[0])
	default:
		for i, s := range senses {
			fmt.Printf("  %d. %s\n", i+1, s)
		}
	}
}
