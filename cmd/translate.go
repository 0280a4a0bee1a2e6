/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/vieng/internal/translator"
)

var (
	inputFile  string
	outputFile string
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate a Vietnamese sentence into English",
	Long: `Translate Vietnamese text into English with the configured backend.

The text is taken from the arguments, from --input, or from stdin when
neither is given. Blank input prints nothing.

Backends (--backend):
  - marian     Helsinki-NLP/opus-mt-vi-en via an inference endpoint (default)
  - google     Google Cloud Translation (requires credentials)
  - ollama     Ollama LLM (self-hosted)
  - mymemory   MyMemory (free, 5000 chars/day)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		adapter, closer, err := newAdapter(cfg, logger)
		if err != nil {
			return err
		}
		defer closer.Close()

		out, err := adapter.Translate(cmd.Context(), text)
		if errors.Is(err, translator.ErrEmptyInput) {
			return nil
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), out)
	},
}

func readInput(stdin io.Reader, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

func writeOutput(stdout io.Writer, text string) error {
	if outputFile == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if inputFile != "" && inputFile == outputFile {
		return fmt.Errorf("input file and output file cannot be the same")
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// translatorFlags registers the backend flags shared by translate and serve.
func translatorFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("backend", defaultBackend, "Translation backend: marian, google, ollama, mymemory")
	f.String("model", "", "Model name (backend default when empty)")
	f.String("base-url", "", "Backend endpoint (backend default when empty)")
	f.String("api-key", "", "API key or bearer token (MyMemory: contact email)")
	f.String("credentials", "", "Google credentials JSON file")
	f.String("project-id", "", "Google Cloud project ID")
	f.Duration("timeout", 0, "Per-call timeout for the translation backend")
}

func parserFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("parser-url", "", "UDPipe service base URL")
	f.String("parser-model", "", "UDPipe model name")
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file path")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (stdout when empty)")
	translatorFlags(translateCmd)
}
