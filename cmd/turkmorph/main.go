// Command turkmorph analyzes and generates Turkish words from the command
// line.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turkmorph/turkmorph"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "turkmorph",
		Short: "Turkish morphological analyzer",
		Long: `turkmorph compiles a Turkish root dictionary against a suffix catalog
and analyzes words into a root and an ordered chain of suffixes.

The lexicon comes from the *.dict files of --data, from the files of a
--config, or from a binary --snapshot.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("data", "", "dictionary directory (default \"data\" or $"+turkmorph.EnvDataDir+")")
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("snapshot", "", "binary lexicon snapshot to load instead of dictionaries")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <word>...",
		Short: "Print every analysis of the given words",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Bool("json", false, "print analyses as JSON")
	analyzeCmd.Flags().Bool("lexical", false, "print analyses without surfaces")
	analyzeCmd.Flags().Bool("trace", false, "print the stems and paths tried")

	generateCmd := &cobra.Command{
		Use:   "generate <item-id> [suffix]...",
		Short: "Generate the words of an item with the given suffixes",
		Long: `Generate builds the surface forms of a dictionary item followed by the
given morphemes, e.g. "turkmorph generate kitap_Noun A3pl Dat". Without
suffixes it prints the inflection table of the item.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGenerate,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the compiled graph",
		Args:  cobra.NoArgs,
		RunE:  runDump,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write the lexicon as a binary snapshot",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringP("output", "o", "", "output file")
	_ = snapshotCmd.MarkFlagRequired("output")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print lexicon and graph sizes",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	rootCmd.AddCommand(
		analyzeCmd,
		generateCmd,
		dumpCmd,
		snapshotCmd,
		statsCmd,
	)
	return rootCmd
}

// load builds the analyzer from the global flags.
func load(cmd *cobra.Command) (*turkmorph.Morphology, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := turkmorph.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if dir, _ := flags.GetString("data"); dir != "" {
		cfg.DataDir = dir
	}
	if snap, _ := flags.GetString("snapshot"); snap != "" {
		cfg.Snapshot = snap
	}
	// One-shot commands gain nothing from the cache.
	cfg.Cache.Disabled = true
	return turkmorph.Load(cfg)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	m, err := load(cmd)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	lexical, _ := cmd.Flags().GetBool("lexical")
	trace, _ := cmd.Flags().GetBool("trace")

	out := cmd.OutOrStdout()
	if asJSON {
		results, err := m.AnalyzeList(cmd.Context(), args)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, word := range args {
		if trace {
			m.DebugTrace(out, word)
		}
		fmt.Fprintf(out, "%s\n", word)
		for _, a := range m.Analyze(word) {
			if lexical {
				fmt.Fprintf(out, "  %s\n", a.FormatLexical())
			} else {
				fmt.Fprintf(out, "  %s\n", a)
			}
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	m, err := load(cmd)
	if err != nil {
		return err
	}
	id, suffixes := args[0], args[1:]
	out := cmd.OutOrStdout()
	if len(suffixes) == 0 {
		table, err := m.InflectionTable(id)
		if err != nil {
			return err
		}
		for _, key := range sortedKeys(table.Cells) {
			fmt.Fprintf(out, "%-12s %s\n", key, strings.Join(table.Cells[key], ", "))
		}
		return nil
	}
	words, err := m.Generate(id, suffixes...)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("%s cannot take %s", id, strings.Join(suffixes, "+"))
	}
	for _, w := range words {
		fmt.Fprintln(out, w)
	}
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	m, err := load(cmd)
	if err != nil {
		return err
	}
	m.Dump(cmd.OutOrStdout())
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	m, err := load(cmd)
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteSnapshot(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %d items to %s", m.Stats().Items, path)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	m, err := load(cmd)
	if err != nil {
		return err
	}
	st := m.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "items          %d\n", st.Items)
	fmt.Fprintf(out, "stems          %d\n", st.Graph.Stems)
	fmt.Fprintf(out, "root nodes     %d\n", st.Graph.RootNodes)
	fmt.Fprintf(out, "surface nodes  %d\n", st.Graph.SurfaceNodes)
	fmt.Fprintf(out, "suffix forms   %d\n", st.Graph.SuffixForms)
	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
