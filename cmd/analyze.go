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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/vieng/internal/annotate"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [english text]",
	Short: "Show parts of speech and tenses of an English sentence",
	Long: `Parse English text and print each word with its part-of-speech tag,
followed by the detected tenses.

The text is taken from the arguments, from --input, or from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return nil
		}

		analysis, err := newAnnotator(cfg, logger).Annotate(cmd.Context(), strings.TrimSpace(text))
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		}
		return printAnalysis(cmd.OutOrStdout(), analysis)
	},
}

func printAnalysis(out io.Writer, a *annotate.Analysis) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORD\tPOS\tLEMMA\tDEP\tFEATS")
	for _, tok := range a.Tokens {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", tok.Text, tok.POS, tok.Lemma, tok.DepRel, tok.Feats)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Detected tenses:")
	if len(a.Tenses) == 0 {
		fmt.Fprintln(out, "  "+annotate.NoTenseMessage)
		return nil
	}
	for _, name := range a.TenseNames() {
		fmt.Fprintln(out, "  "+name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file path")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")
	parserFlags(analyzeCmd)
}
