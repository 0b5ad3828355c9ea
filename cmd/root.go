package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yorsh1111/lufs-normalizer/internal/audio"
	"github.com/yorsh1111/lufs-normalizer/internal/cli"
	"github.com/yorsh1111/lufs-normalizer/internal/config"
	"github.com/yorsh1111/lufs-normalizer/internal/normalize"

	"github.com/spf13/cobra"
)

var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lufs-normalizer [OPTIONS] <input>",
	Short: "Loudness normalization tool for audio distribution",
	Long: `lufs-normalizer measures the integrated loudness of an audio file per
ITU-R BS.1770 and normalizes it to a target level in LUFS, keeping the true
peak under a configurable ceiling. Input formats: WAV, MP3 and FLAC; output
is written as WAV.

Common loudness targets:
  Spotify / YouTube      -14 LUFS, -1.0 dBTP
  Apple Podcasts         -16 LUFS, -1.0 dBTP
  EBU R128 (broadcast)   -23 LUFS, -1.0 dBTP
  Club / festival        -11 LUFS, -0.5 dBTP

Examples:
  lufs-normalizer track.wav
  lufs-normalizer -l -16.0 podcast.mp3
  lufs-normalizer -l -14.0 -p -1.0 -o out/track.wav track.flac
  lufs-normalizer -m 3 --tolerance 0.3 master.flac`,
	Args:          cobra.ExactArgs(1),
	RunE:          runNormalizer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func init() {
	cfg = config.DefaultConfig()

	// Add flags based on CLI specification
	rootCmd.Flags().Float64VarP(&cfg.TargetLoudness, "target-loudness", "l", cfg.TargetLoudness,
		"Target loudness value in LUFS")
	rootCmd.Flags().Float64VarP(&cfg.TruePeakCeiling, "true-peak", "p", cfg.TruePeakCeiling,
		"Maximum true peak level in dBTP")
	rootCmd.Flags().Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance,
		"Accepted deviation from the target in LU")
	rootCmd.Flags().IntVarP(&cfg.MaxAttempts, "max-attempts", "m", cfg.MaxAttempts,
		"Maximum number of normalization attempts")
	rootCmd.Flags().StringVarP(&cfg.OutputFile, "output", "o", "",
		"Output file path (default: output/<input-name>.wav next to the input)")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false,
		"Show informational decoder output")

	// Add debug mode flag
	rootCmd.Flags().Bool("debug-info", false,
		"Show detailed debug information about the input file")
}

func runNormalizer(cmd *cobra.Command, args []string) error {
	cfg.InputFile = args[0]

	if cfg.OutputFile == "" {
		cfg.OutputFile = defaultOutputPath(cfg.InputFile)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Validate the input file exists and is a supported format
	if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", cfg.InputFile)
	}

	if !audio.IsSupportedFormat(cfg.InputFile) {
		return fmt.Errorf("input file must be one of %s: %s", audio.SupportedFormats(), cfg.InputFile)
	}

	fmt.Printf("Configuration:\n")
	fmt.Printf("  Input: %s\n", cfg.InputFile)
	fmt.Printf("  Output: %s\n", cfg.OutputFile)
	fmt.Printf("  Target Loudness: %.1f LUFS\n", cfg.TargetLoudness)
	fmt.Printf("  True Peak Ceiling: %.1f dBTP\n", cfg.TruePeakCeiling)
	fmt.Printf("  Tolerance: %.1f LU\n", cfg.Tolerance)
	fmt.Printf("  Max Attempts: %d\n", cfg.MaxAttempts)
	fmt.Println()

	// Show debug information if requested
	debugInfo, _ := cmd.Flags().GetBool("debug-info")
	if debugInfo {
		buf, err := audio.NewDecoder(cfg.Verbose).Decode(cfg.InputFile)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.InputFile, err)
		}
		buf.AnalyzeContent()
		fmt.Println()
	}

	fmt.Printf("Processing: %s\n", cfg.InputFile)

	result, succeeded, err := normalize.NormalizeWithConvergence(cfg.InputFile, cfg.OutputFile, cfg)
	if err != nil {
		return fmt.Errorf("failed to normalize %s: %w", cfg.InputFile, err)
	}

	fmt.Println()
	result.Print()

	if !succeeded {
		fmt.Println()
		cli.PrintWarning(fmt.Sprintf("result %.1f LUFS is outside %.1f ± %.1f LU after %d attempt(s)",
			result.NormalizedLoudness, cfg.TargetLoudness, cfg.Tolerance, cfg.MaxAttempts))
	}

	fmt.Printf("\n✅ Output written to %s\n", cfg.OutputFile)
	return nil
}

// defaultOutputPath places the output next to the input in an output/
// directory, always as WAV
func defaultOutputPath(inputFile string) string {
	dir := filepath.Dir(inputFile)
	basename := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	return filepath.Join(dir, "output", basename+".wav")
}
