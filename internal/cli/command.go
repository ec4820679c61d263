package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/flashpage/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flashpage [text]",
		Short: "English-Korean flashcard page maker",
		Long: `flashpage builds a page of five English-Korean flashcards for young
learners. Each word is looked up with free online translation services,
can be read aloud by a friendly English voice, and the finished page is
saved as a PNG picture.

Examples:
  flashpage                       # Launch interactive GUI (default)
  flashpage run                   # Print Korean senses of "run"
  flashpage 사과 --speak          # Translate to English and read it aloud
  flashpage --batch words.txt     # Translate every line of a file
  flashpage --batch words.txt --gui  # Open the first five lines as cards
  flashpage --list-voices         # Show voices and the one that would be used
  flashpage --archive             # Move old pages out of the output directory`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultOutputDir is where exported pages go unless configured otherwise.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures", "flashpage")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.flashpage.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", DefaultOutputDir(), "Directory for exported pages")
	cmd.Flags().StringVar(&flags.Label, "label", "", "Learner name printed on the page and used in the file name")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process words from file (one per line)")
	cmd.Flags().BoolVar(&flags.GUIMode, "gui", false, "Open the GUI, pre-filled from --batch when given")
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List available voices and show which one is selected")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI speech models available to your API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move exported pages into a timestamped archive folder")

	// Translation flags
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for each translation request")
	cmd.Flags().StringVar(&flags.MyMemoryURL, "mymemory-url", flags.MyMemoryURL, "MyMemory translation API base URL")
	cmd.Flags().StringVar(&flags.GoogleURL, "google-url", flags.GoogleURL, "Google translation API base URL")
	cmd.Flags().BoolVar(&flags.NoDictionary, "no-dictionary", false, "Do not add senses from the built-in dictionary")

	// Speech flags
	cmd.Flags().BoolVar(&flags.Speak, "speak", false, "Read the English text aloud")
	cmd.Flags().StringVar(&flags.Rate, "rate", flags.Rate, "Speech rate: slow, normal, fast or a number (1.0 is normal)")
	cmd.Flags().StringVar(&flags.Engine, "engine", flags.Engine, "Speech engine: auto, espeak, say, openai")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", "", "OpenAI voice used when no preferred voice is found (default: nova)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.label", cmd.Flags().Lookup("label"))
	viper.BindPFlag("translation.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("translation.mymemory_url", cmd.Flags().Lookup("mymemory-url"))
	viper.BindPFlag("translation.google_url", cmd.Flags().Lookup("google-url"))
	viper.BindPFlag("translation.no_dictionary", cmd.Flags().Lookup("no-dictionary"))
	viper.BindPFlag("speech.engine", cmd.Flags().Lookup("engine"))
	viper.BindPFlag("speech.rate", cmd.Flags().Lookup("rate"))
	viper.BindPFlag("speech.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".flashpage" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flashpage")
	}

	// Environment variables
	viper.SetEnvPrefix("FLASHPAGE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies values from the config file and environment into
// flags. Flags given on the command line take precedence.
func ApplyConfig(flags *Flags) {
	if viper.IsSet("output.directory") {
		flags.OutputDir = viper.GetString("output.directory")
	}
	if viper.IsSet("output.label") {
		flags.Label = viper.GetString("output.label")
	}
	if viper.IsSet("translation.timeout") {
		flags.Timeout = viper.GetDuration("translation.timeout")
	}
	if viper.IsSet("translation.mymemory_url") {
		flags.MyMemoryURL = viper.GetString("translation.mymemory_url")
	}
	if viper.IsSet("translation.google_url") {
		flags.GoogleURL = viper.GetString("translation.google_url")
	}
	if viper.IsSet("translation.no_dictionary") {
		flags.NoDictionary = viper.GetBool("translation.no_dictionary")
	}
	if viper.IsSet("speech.engine") {
		flags.Engine = viper.GetString("speech.engine")
	}
	if viper.IsSet("speech.rate") {
		flags.Rate = viper.GetString("speech.rate")
	}
	if viper.IsSet("speech.openai_model") {
		flags.OpenAIModel = viper.GetString("speech.openai_model")
	}
	if viper.IsSet("speech.openai_voice") {
		flags.OpenAIVoice = viper.GetString("speech.openai_voice")
	}
	if viper.IsSet("speech.openai_instruction") {
		flags.OpenAIInstruction = viper.GetString("speech.openai_instruction")
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("speech.openai_key")
}
