package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmolenaar/thumbcfg/internal/catalog"
	"github.com/jmolenaar/thumbcfg/internal/discovery"
	"github.com/jmolenaar/thumbcfg/internal/gcode"
	"github.com/jmolenaar/thumbcfg/internal/preview"
	"github.com/jmolenaar/thumbcfg/internal/session"
	"github.com/jmolenaar/thumbcfg/internal/settings"
	"github.com/jmolenaar/thumbcfg/internal/stats"
	"github.com/jmolenaar/thumbcfg/internal/store"
	"github.com/jmolenaar/thumbcfg/internal/ui"
	"github.com/jmolenaar/thumbcfg/internal/version"
)

// Command flags
var (
	configPath   string
	autoDetect   bool
	outputFormat string
	outputPath   string
	scanTimeout  int
)

func init() {
	// Common flags (persistent on root)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Preferences file path (default: per-user config dir)")
	rootCmd.PersistentFlags().BoolVar(&autoDetect, "detect", false, "Detect the active printer via mDNS on first load")

	// --listen is read via cmd.Flags() per invocation: each command gets
	// its own flag instance so defaults never bleed between commands.
	rootCmd.Flags().String("listen", "", "Also serve a live preview feed on this address (e.g. 127.0.0.1:8845)")

	// Add subcommands directly to root
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(serveCmd)
}

// newManager builds the settings manager over the preferences file store.
func newManager() (*settings.Manager, error) {
	var detector store.Detector
	if autoDetect {
		detector = func() string {
			return discovery.DetectPrinter(discovery.DefaultScanTimeout)
		}
	}

	var fileStore *store.FileStore
	if configPath != "" {
		fileStore = store.NewFileStoreAt(configPath, detector)
	} else {
		var err error
		fileStore, err = store.NewFileStore(detector)
		if err != nil {
			return nil, fmt.Errorf("failed to locate preferences file: %w", err)
		}
	}

	desc := settings.Descriptor{
		Name:    version.Name,
		Version: version.Version,
	}
	return settings.NewManager(fileStore, desc), nil
}

// editCmd launches the interactive settings editor
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Launch the interactive settings editor",
	Long: `Launch an interactive TUI for editing thumbnail overlay settings.

The editor provides:
- Per-corner content option selection with a live preview
- Printer model selection
- Statistics and preview-source toggles

Changes are held in memory until saved with 's'; quitting without
saving discards them.`,
	Example: `  # Launch the editor
  thumbcfg edit
  # Or simply (edit is default):
  thumbcfg

  # Edit and publish a live preview feed for external renderers
  thumbcfg edit --listen 127.0.0.1:8845`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("listen", "", "Also serve a live preview feed on this address (e.g. 127.0.0.1:8845)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the editor requires an interactive terminal; use 'thumbcfg show' for scripted access")
	}

	listenAddr, err := cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}

	manager, err := newManager()
	if err != nil {
		return err
	}

	var extra []session.Renderer
	if listenAddr != "" {
		broadcaster := preview.NewBroadcaster(func() preview.Preview {
			return preview.Generate(manager.Get(), preview.SampleSliceData())
		})
		defer broadcaster.Close()
		extra = append(extra, broadcaster)

		mux := http.NewServeMux()
		mux.Handle("/preview", broadcaster)
		go func() {
			if err := http.ListenAndServe(listenAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "preview feed stopped: %v\n", err)
			}
		}()
	}

	if err := ui.Run(manager, extra...); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}
	return nil
}

// showCmd displays the current settings
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Long: `Display the persisted thumbnail overlay settings.

Shows the printer model, the content option assigned to each corner,
the toggles, and the effective option set that would be rendered.`,
	Example: `  # Human-readable output
  thumbcfg show

  # JSON output for scripting
  thumbcfg show --format json`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	manager, err := newManager()
	if err != nil {
		return err
	}
	cfg := manager.Get()

	switch outputFormat {
	case "json":
		doc := preview.Generate(cfg, preview.SampleSliceData())
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))

	case "detailed":
		fallthrough
	default:
		optionLabels := catalog.OptionLabels()
		modelLabels := catalog.PrinterModelLabels()

		fmt.Printf("Thumbnails:       %s\n", formatToggle(cfg.ThumbnailsEnabled))
		if cfg.PrinterModel >= 0 && cfg.PrinterModel < len(modelLabels) {
			fmt.Printf("Printer model:    %s (%s)\n", modelLabels[cfg.PrinterModel], cfg.PrinterModelID())
		}
		for i, opt := range cfg.CornerOptions {
			label := ""
			if opt >= 0 && opt < len(optionLabels) {
				label = optionLabels[opt]
			}
			fmt.Printf("Corner %d:         %s\n", i+1, label)
		}
		fmt.Printf("Statistics:       %s\n", formatToggle(cfg.StatisticsEnabled))
		fmt.Printf("Use current model: %s\n", formatToggle(cfg.UseCurrentModel))
		fmt.Printf("Effective options: %s\n", strings.Join(cfg.CornerOptionIDs(), ", "))
	}

	return nil
}

// embedCmd embeds the overlay into a sliced G-code file
var embedCmd = &cobra.Command{
	Use:   "embed <gcode-file>",
	Short: "Embed the overlay into a G-code file",
	Long: `Embed the thumbnail overlay into a sliced G-code file.

Reads slicer parameters from the file's comment header, strips any
pre-existing thumbnail blocks, and prepends the overlay rendered from
the current settings. When thumbnails are disabled only the stripping
happens.

When statistics are enabled, an anonymous usage report is sent after a
successful embed.`,
	Example: `  # Rewrite a file in place
  thumbcfg embed print.gcode

  # Write to a different file
  thumbcfg embed print.gcode --output print-overlay.gcode`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: rewrite in place)")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	manager, err := newManager()
	if err != nil {
		return err
	}
	cfg := manager.Get()

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read G-code file: %w", err)
	}

	params := gcode.ExtractParams(string(src))
	data := gcode.ParseSliceData(params)

	embedder := gcode.NewEmbedder(preview.CommentEncoder{})
	result, err := embedder.Embed(string(src), cfg, data)
	if err != nil {
		return fmt.Errorf("failed to embed overlay: %w", err)
	}

	target := outputPath
	if target == "" {
		target = args[0]
	}
	if err := os.WriteFile(target, []byte(result), 0644); err != nil {
		return fmt.Errorf("failed to write G-code file: %w", err)
	}

	if cfg.ThumbnailsEnabled {
		fmt.Printf("✓ Embedded overlay into %s (%s)\n", target, cfg.PrinterModelID())
	} else {
		fmt.Printf("✓ Stripped thumbnails from %s (thumbnails disabled)\n", target)
	}

	stats.NewReporter().SendBestEffort(cfg)

	return nil
}

// detectCmd scans the network for printers
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan for Neptune printers on the network",
	Long: `Scan for Elegoo Neptune printers using mDNS discovery.

Displays all discovered printers with their canonical model identifier,
hostname, and address. The model identifier can be pinned via the
preferences file or the THUMBCFG_PRINTER environment variable.`,
	Example: `  # Scan for 5 seconds (default)
  thumbcfg detect

  # Longer scan for slow networks
  thumbcfg detect --timeout 15`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runDetect(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Neptune printers (timeout: %ds)...\n\n", scanTimeout)

	printers, err := discovery.ScanForPrinters(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(printers) == 0 {
		fmt.Println("No printers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the printer is powered on and connected to WiFi")
		fmt.Println("  - Verify your computer is on the same network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Set THUMBCFG_PRINTER to pin the model manually")
		return nil
	}

	fmt.Printf("Found %d printer(s):\n\n", len(printers))

	for i, printer := range printers {
		fmt.Printf("%d. %s\n", i+1, printer.ModelID)
		fmt.Printf("   Hostname: %s\n", printer.Hostname)
		fmt.Printf("   Address:  %s:%d\n", printer.IP, printer.Port)
		if len(printer.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", printer.Metadata)
		}
		fmt.Println()
	}

	return nil
}

// serveCmd runs the preview feed without the editor
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the preview feed",
	Long: `Serve the overlay preview as a WebSocket feed.

Clients connecting to /preview receive the preview rendered from the
persisted settings as a JSON document. This is intended for external
renderers that draw the actual thumbnail image.`,
	Example: `  # Serve on the default address
  thumbcfg serve

  # Serve on a custom address
  thumbcfg serve --listen 0.0.0.0:8845`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "127.0.0.1:8845", "Listen address for the preview feed")
}

func runServe(cmd *cobra.Command, args []string) error {
	listenAddr, err := cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}

	manager, err := newManager()
	if err != nil {
		return err
	}

	broadcaster := preview.NewBroadcaster(func() preview.Preview {
		return preview.Generate(manager.Get(), preview.SampleSliceData())
	})
	defer broadcaster.Close()

	mux := http.NewServeMux()
	mux.Handle("/preview", broadcaster)

	fmt.Printf("Serving preview feed on ws://%s/preview\n", listenAddr)
	return http.ListenAndServe(listenAddr, mux)
}

// formatToggle formats a boolean toggle for display
func formatToggle(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
