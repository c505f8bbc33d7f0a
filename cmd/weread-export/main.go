package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/zhaoyun/weread-exporter/internal/batch"
	"github.com/zhaoyun/weread-exporter/internal/config"
	"github.com/zhaoyun/weread-exporter/internal/export"
	ioutils "github.com/zhaoyun/weread-exporter/internal/io"
	"github.com/zhaoyun/weread-exporter/internal/weread"
)

func main() {
	// Command line flags
	var (
		booksFlag     = flag.String("books", "", "Book id(s) to export (comma-separated)")
		allFlag       = flag.Bool("all", false, "Export every annotated book on the shelf")
		vidFlag       = flag.String("vid", "", "WeRead user vid (overrides config)")
		cookieFlag    = flag.String("cookie", "", "Session cookie (overrides config)")
		formatFlag    = flag.String("format", "", "Combined export format: markdown, json or csv (overrides config)")
		outputFlag    = flag.String("output", "", "Output directory (overrides config)")
		configFlag    = flag.String("config", "", "Path to config file")
		clipboardFlag = flag.Bool("clipboard", false, "Copy the combined export to the clipboard instead of writing a file")
		coversFlag    = flag.Bool("covers", false, "Download and save cover images next to each book")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag    = flag.Bool("dry-run", false, "List the selected books without exporting")
	)

	flag.Parse()

	if *booksFlag == "" && flag.NArg() == 0 && !*allFlag {
		fmt.Println("WeRead Exporter - Export reading notes from WeRead")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  weread-export -books <id,id,...> [options]")
		fmt.Println("  weread-export -all [options]")
		fmt.Println("  weread-export <id> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: weread-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *vidFlag != "" {
		settings.UserVid = *vidFlag
	}
	if *cookieFlag != "" {
		settings.Cookie = *cookieFlag
	}
	if *formatFlag != "" {
		settings.Format = *formatFlag
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *clipboardFlag {
		settings.CopyToClipboard = true
	}
	if *coversFlag {
		settings.SaveCovers = true
	}

	format, err := export.ParseFormat(settings.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	client := weread.NewClient()
	if settings.BaseURL != "" {
		client = weread.NewClientWithBaseURL(settings.BaseURL)
	}
	if settings.Cookie != "" {
		client.SetCookie(settings.Cookie)
	}

	bookIDs, err := resolveBookIDs(ctx, client, *booksFlag, *allFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📚 WeRead Exporter — %d book(s) selected\n\n", len(bookIDs))

	if *dryRunFlag {
		for _, id := range bookIDs {
			fmt.Println("  " + id)
		}
		fmt.Println("\n[Dry run - not exporting]")
		return
	}

	manager := batch.NewManager(settings, weread.NewExporter(client), func(event batch.ProgressEvent) {
		if event.Level == batch.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := "   "
		switch event.Level {
		case batch.LevelError:
			prefix = "❌ "
		case batch.LevelWarning:
			prefix = "⚠️  "
		case batch.LevelSuccess:
			prefix = "✅ "
		case batch.LevelInfo:
			prefix = "ℹ️  "
		}

		fmt.Println(prefix + event.Message)
	})

	result, err := manager.RunBatch(ctx, bookIDs)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExport cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during export: %v\n", err)
		os.Exit(1)
	}

	printSummary(result)

	if len(result.Succeeded) == 0 {
		os.Exit(1)
	}

	if err := writeCombined(ctx, settings, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		os.Exit(1)
	}
}

// resolveBookIDs turns the flags into the id list: either the explicit
// comma-separated ids or the whole annotated shelf.
func resolveBookIDs(ctx context.Context, client *weread.Client, booksFlag string, all bool) ([]string, error) {
	if all {
		entries, err := client.ListNotebooks(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.BookID)
		}
		return ids, nil
	}

	raw := booksFlag
	if raw == "" && flag.NArg() > 0 {
		raw = strings.Join(flag.Args(), ",")
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no book ids given")
	}
	return ids, nil
}

// printSummary renders the final per-book outcome table.
func printSummary(result *batch.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Book", "Notes", "Status"})

	for _, book := range result.Succeeded {
		t.AppendRow(table.Row{book.Title, len(book.Notes), "exported"})
	}
	for _, id := range result.PermanentlyFailed {
		t.AppendRow(table.Row{id, "-", "failed"})
	}

	fmt.Println()
	t.Render()
	fmt.Println()
}

// writeCombined builds the combined export and hands it to the selected
// sink: clipboard or a file in the output directory.
func writeCombined(ctx context.Context, settings *config.Settings, result *batch.Result, format export.Format) error {
	file, err := export.BuildCombinedExport(result.Succeeded, format)
	if err != nil {
		return err
	}

	if settings.CopyToClipboard {
		if err := ioutils.WriteClipboard(file.Content); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		fmt.Println("📋 Combined export copied to clipboard")
		return nil
	}

	if err := ioutils.EnsureDir(settings.OutputDir); err != nil {
		return err
	}
	path := filepath.Join(settings.OutputDir, file.Name)
	if err := ioutils.WriteFile(ctx, path, []byte(file.Content)); err != nil {
		return err
	}
	fmt.Printf("✨ Combined export written to %s\n", path)
	return nil
}
